// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
)

var (
	// ErrNotFound is returned when a record with the requested ID does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write breaks a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// Store defines the interface for catalog, circulation and account storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the coordination layer.
type Store interface {
	CategoryStore
	AuthorStore
	BookStore
	LoanStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// CategoryStore persists categories.
type CategoryStore interface {
	// CreateCategory inserts the category and populates its ID.
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, f query.CategoryFilter, p query.Page) ([]*models.Category, int, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	// DeleteCategory removes the category and, by cascade, its books.
	DeleteCategory(ctx context.Context, id int64) error
}

// AuthorStore persists authors.
type AuthorStore interface {
	CreateAuthor(ctx context.Context, a *models.Author) error
	GetAuthor(ctx context.Context, id int64) (*models.Author, error)
	ListAuthors(ctx context.Context, f query.AuthorFilter, p query.Page) ([]*models.Author, int, error)
	UpdateAuthor(ctx context.Context, a *models.Author) error
	// DeleteAuthor removes the author and, by cascade, its books.
	DeleteAuthor(ctx context.Context, id int64) error
}

// BookStore persists books.
type BookStore interface {
	// CreateBook inserts the book and populates its ID. A duplicate title
	// yields ErrConflict.
	CreateBook(ctx context.Context, b *models.Book) error
	GetBook(ctx context.Context, id int64) (*models.BookView, error)
	// ListBooks returns a page of books, newest first, and the total number
	// of books matching the filter.
	ListBooks(ctx context.Context, f query.BookFilter, p query.Page) ([]*models.BookView, int, error)
	UpdateBook(ctx context.Context, b *models.Book) error
	// DeleteBook removes the book and, by cascade, its loans.
	DeleteBook(ctx context.Context, id int64) error

	// BookTitleExists reports whether a book other than excludeID has exactly
	// this title. Pass 0 to exclude nothing.
	BookTitleExists(ctx context.Context, title string, excludeID int64) (bool, error)
	// CountBooksInCategory counts the books linked to a category, not
	// counting excludeID.
	CountBooksInCategory(ctx context.Context, categoryID, excludeID int64) (int, error)
}

// LoanStore persists loans.
type LoanStore interface {
	CreateLoan(ctx context.Context, l *models.Loan) error
	GetLoan(ctx context.Context, id int64) (*models.Loan, error)
	ListLoans(ctx context.Context, f query.LoanFilter, p query.Page) ([]*models.Loan, int, error)
	UpdateLoan(ctx context.Context, l *models.Loan) error
	DeleteLoan(ctx context.Context, id int64) error

	// CountActiveLoans counts the borrower's non-returned loans.
	CountActiveLoans(ctx context.Context, borrowerID string) (int, error)
}

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts the user. A duplicate username yields ErrConflict.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}
