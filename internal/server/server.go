// Package server assembles the HTTP server: storage, the library, the
// Connect services and the operational endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/config"
	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/metrics"
	"github.com/mmynk/biblioteca/internal/service"
	"github.com/mmynk/biblioteca/internal/storage/sqlite"
)

// Server is a configured, not yet listening, biblioteca server.
type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *sqlite.SQLiteStore
	handler http.Handler
}

// New opens the store and wires every service.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	authn := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	lib := library.New(store, authn,
		library.WithMetrics(m),
		library.WithLogger(logger),
		library.WithPageSize(cfg.PageSize),
	)

	mux := http.NewServeMux()
	service.Register(mux, service.Deps{
		Library:       lib,
		Authenticator: authn,
		JWT:           jwtManager,
		Users:         store,
		Metrics:       m,
		Logger:        logger,
	})
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", healthz(store))

	return &Server{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		handler: loggingMiddleware(logger, corsMiddleware(mux)),
	}, nil
}

// Handler returns the root handler, without h2c.
func (s *Server) Handler() http.Handler { return s.handler }

// Close releases the store.
func (s *Server) Close() error { return s.store.Close() }

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// h2c serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
	srv := &http.Server{
		Handler:           h2c.NewHandler(s.handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Connect server starting", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down", "timeout", s.cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func healthz(store *sqlite.SQLiteStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
