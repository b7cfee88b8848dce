package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/metrics"
	"github.com/mmynk/biblioteca/internal/middleware"
	"github.com/mmynk/biblioteca/pkg/api/apiconnect"
)

// Deps are the collaborators the Connect services are built from.
type Deps struct {
	Library       *library.Library
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Users         middleware.UserLookup
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// Register mounts every biblioteca.v1 service on mux. Catalog and auth
// services admit anonymous callers and leave the decision to the policy;
// loans and accounts require a token up front.
func Register(mux *http.ServeMux, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := []connect.Interceptor{
		middleware.MetricsInterceptor(d.Metrics),
		middleware.ResolveActor(d.JWT, d.Users),
		middleware.LoggingInterceptor(logger),
	}
	open := connect.WithInterceptors(base...)
	authed := connect.WithInterceptors(append(base, middleware.RequireAuth())...)

	mux.Handle(apiconnect.NewBookServiceHandler(NewBookService(d.Library, logger), open))
	mux.Handle(apiconnect.NewCategoryServiceHandler(NewCategoryService(d.Library, logger), open))
	mux.Handle(apiconnect.NewAuthorServiceHandler(NewAuthorService(d.Library, logger), open))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(d.Authenticator, d.JWT, d.Users, logger), open))
	mux.Handle(apiconnect.NewLoanServiceHandler(NewLoanService(d.Library, logger), authed))
	mux.Handle(apiconnect.NewAccountServiceHandler(NewAccountService(d.Library, logger), authed))
}
