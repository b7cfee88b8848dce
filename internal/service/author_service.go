package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/middleware"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/pkg/api"
	"github.com/mmynk/biblioteca/pkg/api/apiconnect"
)

// AuthorService implements the Connect AuthorService.
type AuthorService struct {
	lib    *library.Library
	logger *slog.Logger
}

var _ apiconnect.AuthorServiceHandler = (*AuthorService)(nil)

// NewAuthorService creates a new AuthorService over the library.
func NewAuthorService(lib *library.Library, logger *slog.Logger) *AuthorService {
	return &AuthorService{lib: lib, logger: logger}
}

func (s *AuthorService) ListAuthors(ctx context.Context, req *connect.Request[api.ListAuthorsRequest]) (*connect.Response[api.ListAuthorsResponse], error) {
	filter := query.AuthorFilter{Name: req.Msg.Name}
	listing, err := s.lib.ListAuthors(ctx, middleware.ActorFrom(ctx), filter, s.lib.Page(req.Msg.Page, req.Msg.PageSize))
	if err != nil {
		return nil, fail(s.logger, "ListAuthors", err)
	}
	return connect.NewResponse(&api.ListAuthorsResponse{
		Count:   listing.Total,
		HasNext: listing.HasNext(),
		Results: mapSlice(listing.Items, authorToAPI),
	}), nil
}

func (s *AuthorService) GetAuthor(ctx context.Context, req *connect.Request[api.GetAuthorRequest]) (*connect.Response[api.AuthorResponse], error) {
	a, err := s.lib.GetAuthor(ctx, middleware.ActorFrom(ctx), req.Msg.ID)
	if err != nil {
		return nil, fail(s.logger, "GetAuthor", err)
	}
	return connect.NewResponse(&api.AuthorResponse{Author: authorToAPI(a)}), nil
}

func (s *AuthorService) CreateAuthor(ctx context.Context, req *connect.Request[api.CreateAuthorRequest]) (*connect.Response[api.AuthorResponse], error) {
	in := library.AuthorInput{Name: req.Msg.Name, Biography: req.Msg.Biography}
	a, err := s.lib.CreateAuthor(ctx, middleware.ActorFrom(ctx), in)
	if err != nil {
		return nil, fail(s.logger, "CreateAuthor", err)
	}
	s.logger.Info("Author created", "author_id", a.ID)
	return connect.NewResponse(&api.AuthorResponse{Author: authorToAPI(a)}), nil
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, req *connect.Request[api.UpdateAuthorRequest]) (*connect.Response[api.AuthorResponse], error) {
	in := library.AuthorInput{Name: req.Msg.Name, Biography: req.Msg.Biography}
	a, err := s.lib.UpdateAuthor(ctx, middleware.ActorFrom(ctx), req.Msg.ID, in)
	if err != nil {
		return nil, fail(s.logger, "UpdateAuthor", err)
	}
	s.logger.Info("Author updated", "author_id", a.ID)
	return connect.NewResponse(&api.AuthorResponse{Author: authorToAPI(a)}), nil
}

func (s *AuthorService) DeleteAuthor(ctx context.Context, req *connect.Request[api.DeleteAuthorRequest]) (*connect.Response[api.Empty], error) {
	if err := s.lib.DeleteAuthor(ctx, middleware.ActorFrom(ctx), req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteAuthor", err)
	}
	s.logger.Info("Author deleted", "author_id", req.Msg.ID)
	return connect.NewResponse(&api.Empty{}), nil
}
