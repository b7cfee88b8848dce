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

// CategoryService implements the Connect CategoryService.
type CategoryService struct {
	lib    *library.Library
	logger *slog.Logger
}

var _ apiconnect.CategoryServiceHandler = (*CategoryService)(nil)

// NewCategoryService creates a new CategoryService over the library.
func NewCategoryService(lib *library.Library, logger *slog.Logger) *CategoryService {
	return &CategoryService{lib: lib, logger: logger}
}

func (s *CategoryService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	filter := query.CategoryFilter{Name: req.Msg.Name}
	listing, err := s.lib.ListCategories(ctx, middleware.ActorFrom(ctx), filter, s.lib.Page(req.Msg.Page, req.Msg.PageSize))
	if err != nil {
		return nil, fail(s.logger, "ListCategories", err)
	}
	return connect.NewResponse(&api.ListCategoriesResponse{
		Count:   listing.Total,
		HasNext: listing.HasNext(),
		Results: mapSlice(listing.Items, categoryToAPI),
	}), nil
}

// GetCategory answers "Categoria não encontrada." for unknown IDs.
func (s *CategoryService) GetCategory(ctx context.Context, req *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	c, err := s.lib.GetCategory(ctx, middleware.ActorFrom(ctx), req.Msg.ID)
	if err != nil {
		return nil, fail(s.logger, "GetCategory", err)
	}
	return connect.NewResponse(&api.CategoryResponse{Category: categoryToAPI(c)}), nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	c, err := s.lib.CreateCategory(ctx, middleware.ActorFrom(ctx), library.CategoryInput{Name: req.Msg.Name})
	if err != nil {
		return nil, fail(s.logger, "CreateCategory", err)
	}
	s.logger.Info("Category created", "category_id", c.ID, "nome", c.Name)
	return connect.NewResponse(&api.CategoryResponse{Category: categoryToAPI(c)}), nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	c, err := s.lib.UpdateCategory(ctx, middleware.ActorFrom(ctx), req.Msg.ID, library.CategoryInput{Name: req.Msg.Name})
	if err != nil {
		return nil, fail(s.logger, "UpdateCategory", err)
	}
	s.logger.Info("Category updated", "category_id", c.ID)
	return connect.NewResponse(&api.CategoryResponse{Category: categoryToAPI(c)}), nil
}

// DeleteCategory removes a category and, with it, its books.
func (s *CategoryService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.Empty], error) {
	if err := s.lib.DeleteCategory(ctx, middleware.ActorFrom(ctx), req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteCategory", err)
	}
	s.logger.Info("Category deleted", "category_id", req.Msg.ID)
	return connect.NewResponse(&api.Empty{}), nil
}
