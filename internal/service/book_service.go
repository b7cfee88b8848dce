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

// BookService implements the Connect BookService.
type BookService struct {
	lib    *library.Library
	logger *slog.Logger
}

var _ apiconnect.BookServiceHandler = (*BookService)(nil)

// NewBookService creates a new BookService over the library.
func NewBookService(lib *library.Library, logger *slog.Logger) *BookService {
	return &BookService{lib: lib, logger: logger}
}

// ListBooks returns a page of books, newest first, filtered by title,
// category name and author name.
func (s *BookService) ListBooks(ctx context.Context, req *connect.Request[api.ListBooksRequest]) (*connect.Response[api.ListBooksResponse], error) {
	s.logger.Debug("ListBooks request received",
		"titulo", req.Msg.Title,
		"categoria", req.Msg.Category,
		"autor", req.Msg.Author,
		"page", req.Msg.Page,
	)

	filter := query.BookFilter{Title: req.Msg.Title, Category: req.Msg.Category, Author: req.Msg.Author}
	listing, err := s.lib.ListBooks(ctx, middleware.ActorFrom(ctx), filter, s.lib.Page(req.Msg.Page, req.Msg.PageSize))
	if err != nil {
		return nil, fail(s.logger, "ListBooks", err)
	}

	return connect.NewResponse(&api.ListBooksResponse{
		Count:   listing.Total,
		HasNext: listing.HasNext(),
		Results: mapSlice(listing.Items, bookToAPI),
	}), nil
}

// GetBook retrieves a book by ID.
func (s *BookService) GetBook(ctx context.Context, req *connect.Request[api.GetBookRequest]) (*connect.Response[api.BookResponse], error) {
	book, err := s.lib.GetBook(ctx, middleware.ActorFrom(ctx), req.Msg.ID)
	if err != nil {
		return nil, fail(s.logger, "GetBook", err)
	}
	return connect.NewResponse(&api.BookResponse{Book: bookToAPI(book)}), nil
}

// CreateBook adds a book owned by the caller.
func (s *BookService) CreateBook(ctx context.Context, req *connect.Request[api.CreateBookRequest]) (*connect.Response[api.BookResponse], error) {
	book, err := s.lib.CreateBook(ctx, middleware.ActorFrom(ctx), bookInput(req.Msg.BookFields))
	if err != nil {
		return nil, fail(s.logger, "CreateBook", err)
	}

	s.logger.Info("Book created", "book_id", book.ID, "titulo", book.Title)
	return connect.NewResponse(&api.BookResponse{Book: bookToAPI(book)}), nil
}

// UpdateBook applies a partial update: omitted fields keep their values.
func (s *BookService) UpdateBook(ctx context.Context, req *connect.Request[api.UpdateBookRequest]) (*connect.Response[api.BookResponse], error) {
	book, err := s.lib.UpdateBook(ctx, middleware.ActorFrom(ctx), req.Msg.ID, bookInput(req.Msg.BookFields))
	if err != nil {
		return nil, fail(s.logger, "UpdateBook", err)
	}

	s.logger.Info("Book updated", "book_id", book.ID)
	return connect.NewResponse(&api.BookResponse{Book: bookToAPI(book)}), nil
}

// DeleteBook removes a book and its loans.
func (s *BookService) DeleteBook(ctx context.Context, req *connect.Request[api.DeleteBookRequest]) (*connect.Response[api.Empty], error) {
	if err := s.lib.DeleteBook(ctx, middleware.ActorFrom(ctx), req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteBook", err)
	}

	s.logger.Info("Book deleted", "book_id", req.Msg.ID)
	return connect.NewResponse(&api.Empty{}), nil
}
