package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/middleware"
	"github.com/mmynk/biblioteca/pkg/api"
	"github.com/mmynk/biblioteca/pkg/api/apiconnect"
)

// AccountService manages staff accounts.
type AccountService struct {
	lib    *library.Library
	logger *slog.Logger
}

var _ apiconnect.AccountServiceHandler = (*AccountService)(nil)

// NewAccountService creates a new AccountService over the library.
func NewAccountService(lib *library.Library, logger *slog.Logger) *AccountService {
	return &AccountService{lib: lib, logger: logger}
}

// CreateSuperuser provisions another staff account.
func (s *AccountService) CreateSuperuser(ctx context.Context, req *connect.Request[api.CreateSuperuserRequest]) (*connect.Response[api.UserResponse], error) {
	in := library.AccountInput{
		Username:    req.Msg.Username,
		DisplayName: req.Msg.DisplayName,
		Password:    req.Msg.Password,
	}
	user, err := s.lib.CreateSuperuser(ctx, middleware.ActorFrom(ctx), in)
	if err != nil {
		return nil, fail(s.logger, "CreateSuperuser", err)
	}

	s.logger.Info("Superuser created", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

func (s *AccountService) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.UserResponse], error) {
	user, err := s.lib.GetAccount(ctx, middleware.ActorFrom(ctx), req.Msg.ID)
	if err != nil {
		return nil, fail(s.logger, "GetAccount", err)
	}
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

// UpdateAccount changes the caller's own display name or password.
func (s *AccountService) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UserResponse], error) {
	patch := library.AccountPatch{DisplayName: req.Msg.DisplayName, Password: req.Msg.Password}
	user, err := s.lib.UpdateAccount(ctx, middleware.ActorFrom(ctx), req.Msg.ID, patch)
	if err != nil {
		return nil, fail(s.logger, "UpdateAccount", err)
	}

	s.logger.Info("Account updated", "user_id", user.ID)
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}
