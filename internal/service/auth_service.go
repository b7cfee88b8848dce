package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/middleware"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/pkg/api"
	"github.com/mmynk/biblioteca/pkg/api/apiconnect"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         middleware.UserLookup
	logger        *slog.Logger
}

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users middleware.UserLookup, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a regular (non-staff) account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	user, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.DisplayName, req.Msg.Password, false)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, fail(s.logger, "Register", err)
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(resp), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(resp), nil
}

// GetCurrentUser returns the stored record of the caller.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fail(s.logger, "GetCurrentUser", err)
	}
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

// VerifyToken reports whether a token is valid and names an existing user.
func (s *AuthService) VerifyToken(ctx context.Context, req *connect.Request[api.VerifyTokenRequest]) (*connect.Response[api.VerifyTokenResponse], error) {
	claims, err := s.jwtManager.Validate(req.Msg.Token)
	if err != nil {
		return connect.NewResponse(&api.VerifyTokenResponse{Valid: false}), nil
	}
	if _, err := s.users.GetUserByID(ctx, claims.UserID); err != nil {
		return connect.NewResponse(&api.VerifyTokenResponse{Valid: false}), nil
	}
	return connect.NewResponse(&api.VerifyTokenResponse{Valid: true}), nil
}

func (s *AuthService) issue(user *models.User) (*api.AuthResponse, error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, clientError(connect.CodeInternal, msgInternal)
	}
	return &api.AuthResponse{
		User:      userToAPI(user),
		Token:     token,
		ExpiresAt: time.Now().Add(s.jwtManager.TokenDuration()).Unix(),
	}, nil
}
