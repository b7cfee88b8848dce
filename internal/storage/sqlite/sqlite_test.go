package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, username string, staff bool) *models.User {
	t.Helper()
	user := models.NewUser(username, "User "+username, "hash", staff)
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func strPtr(s string) *string { return &s }

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createUser(t, store, "ada", true)

	category := &models.Category{Name: "Ciência"}
	if err := store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	author := &models.Author{Name: "Stephen Hawking", Biography: "Physicist."}
	if err := store.CreateAuthor(ctx, author); err != nil {
		t.Fatalf("CreateAuthor failed: %v", err)
	}

	t.Run("CreateBook assigns ID and GetBook joins names", func(t *testing.T) {
		book := &models.Book{
			Title:           "A Brief History of Time",
			Description:     strPtr("From the big bang to black holes."),
			PublicationDate: models.NewDate(1988, time.April, 1).Ptr(),
			CategoryID:      &category.ID,
			AuthorID:        &author.ID,
			CreatorID:       creator.ID,
		}
		if err := store.CreateBook(ctx, book); err != nil {
			t.Fatalf("CreateBook failed: %v", err)
		}
		if book.ID == 0 {
			t.Fatal("Expected book ID to be assigned")
		}

		got, err := store.GetBook(ctx, book.ID)
		if err != nil {
			t.Fatalf("GetBook failed: %v", err)
		}
		if got.Title != book.Title {
			t.Errorf("Title mismatch: got %s, want %s", got.Title, book.Title)
		}
		if got.PublicationDate == nil || got.PublicationDate.String() != "1988-04-01" {
			t.Errorf("PublicationDate mismatch: got %v", got.PublicationDate)
		}
		if got.CategoryName == nil || *got.CategoryName != "Ciência" {
			t.Errorf("CategoryName mismatch: got %v", got.CategoryName)
		}
		if got.AuthorName == nil || *got.AuthorName != "Stephen Hawking" {
			t.Errorf("AuthorName mismatch: got %v", got.AuthorName)
		}
		if got.CreatorLabel != "User ada (ada)" {
			t.Errorf("CreatorLabel mismatch: got %q", got.CreatorLabel)
		}
	})

	t.Run("Duplicate title is a conflict", func(t *testing.T) {
		book := &models.Book{Title: "A Brief History of Time", CreatorID: creator.ID}
		err := store.CreateBook(ctx, book)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("Title lookup is exact and honors exclusion", func(t *testing.T) {
		exists, err := store.BookTitleExists(ctx, "A Brief History of Time", 0)
		if err != nil || !exists {
			t.Fatalf("Expected title to exist, got %v, %v", exists, err)
		}
		exists, _ = store.BookTitleExists(ctx, "a brief history of time", 0)
		if exists {
			t.Error("Title match must be case-sensitive")
		}
		books, _, _ := store.ListBooks(ctx, query.BookFilter{Title: "Brief History"}, query.Page{})
		exists, _ = store.BookTitleExists(ctx, "A Brief History of Time", books[0].ID)
		if exists {
			t.Error("Expected the book itself to be excluded")
		}
	})

	t.Run("GetBook returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetBook(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBook keeps creator", func(t *testing.T) {
		books, _, err := store.ListBooks(ctx, query.BookFilter{}, query.Page{})
		if err != nil || len(books) == 0 {
			t.Fatalf("ListBooks failed: %v", err)
		}
		book := books[0].Book
		book.Description = strPtr("An updated description for the book.")
		book.CreatorID = "someone-else"
		if err := store.UpdateBook(ctx, &book); err != nil {
			t.Fatalf("UpdateBook failed: %v", err)
		}
		got, _ := store.GetBook(ctx, book.ID)
		if got.CreatorID != creator.ID {
			t.Errorf("Creator changed: got %s, want %s", got.CreatorID, creator.ID)
		}
		if *got.Description != "An updated description for the book." {
			t.Errorf("Description not updated: %s", *got.Description)
		}
	})
}

func TestListBooksFiltersAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createUser(t, store, "ada", true)

	fiction := &models.Category{Name: "Ficção"}
	science := &models.Category{Name: "Science"}
	store.CreateCategory(ctx, fiction)
	store.CreateCategory(ctx, science)

	for i, c := range []*models.Category{fiction, science, fiction} {
		book := &models.Book{Title: fmt.Sprintf("Book number %d", i+1), CategoryID: &c.ID, CreatorID: creator.ID}
		if err := store.CreateBook(ctx, book); err != nil {
			t.Fatalf("CreateBook failed: %v", err)
		}
	}

	books, total, err := store.ListBooks(ctx, query.BookFilter{}, query.Page{})
	if err != nil {
		t.Fatalf("ListBooks failed: %v", err)
	}
	if total != 3 || len(books) != 3 {
		t.Fatalf("Expected 3 books, got %d (total %d)", len(books), total)
	}
	if books[0].Title != "Book number 3" {
		t.Errorf("Expected newest first, got %s", books[0].Title)
	}

	books, total, _ = store.ListBooks(ctx, query.BookFilter{Category: "SCIENCE"}, query.Page{})
	if total != 1 || books[0].Title != "Book number 2" {
		t.Errorf("Category filter mismatch: total %d", total)
	}

	books, total, _ = store.ListBooks(ctx, query.BookFilter{Title: "number", Category: "Fic"}, query.NewPage(1, 1, 50))
	if total != 2 || len(books) != 1 {
		t.Errorf("Expected 1 of 2 books, got %d of %d", len(books), total)
	}

	n, err := store.CountBooksInCategory(ctx, fiction.ID, 0)
	if err != nil || n != 2 {
		t.Errorf("CountBooksInCategory = %d, %v; want 2", n, err)
	}
}

func TestCascadeDeletes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createUser(t, store, "ada", true)
	reader := createUser(t, store, "bob", false)

	category := &models.Category{Name: "Poesia"}
	store.CreateCategory(ctx, category)
	book := &models.Book{Title: "Sonetos Completos", CategoryID: &category.ID, CreatorID: creator.ID}
	if err := store.CreateBook(ctx, book); err != nil {
		t.Fatalf("CreateBook failed: %v", err)
	}
	today := models.Today()
	loan := &models.Loan{BookID: book.ID, BorrowerID: reader.ID, StartDate: today, DueDate: today.AddDays(7)}
	if err := store.CreateLoan(ctx, loan); err != nil {
		t.Fatalf("CreateLoan failed: %v", err)
	}

	if err := store.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if _, err := store.GetBook(ctx, book.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected book to be deleted with its category, got %v", err)
	}
	if _, err := store.GetLoan(ctx, loan.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected loan to be deleted with its book, got %v", err)
	}
}

func TestLoans(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := createUser(t, store, "ada", true)
	reader := createUser(t, store, "bob", false)

	book := &models.Book{Title: "Dom Casmurro", CreatorID: creator.ID}
	store.CreateBook(ctx, book)

	today := models.Today()
	for i := 0; i < 3; i++ {
		loan := &models.Loan{BookID: book.ID, BorrowerID: reader.ID, StartDate: today, DueDate: today.AddDays(i + 1)}
		if err := store.CreateLoan(ctx, loan); err != nil {
			t.Fatalf("CreateLoan failed: %v", err)
		}
	}

	n, err := store.CountActiveLoans(ctx, reader.ID)
	if err != nil || n != 3 {
		t.Fatalf("CountActiveLoans = %d, %v; want 3", n, err)
	}

	loans, _, _ := store.ListLoans(ctx, query.LoanFilter{BorrowerID: reader.ID}, query.Page{})
	loans[0].Returned = true
	if err := store.UpdateLoan(ctx, loans[0]); err != nil {
		t.Fatalf("UpdateLoan failed: %v", err)
	}

	n, _ = store.CountActiveLoans(ctx, reader.ID)
	if n != 2 {
		t.Errorf("CountActiveLoans after return = %d, want 2", n)
	}

	got, err := store.GetLoan(ctx, loans[0].ID)
	if err != nil {
		t.Fatalf("GetLoan failed: %v", err)
	}
	if !got.Returned || !got.StartDate.Equal(today) {
		t.Errorf("Unexpected loan state: %+v", got)
	}

	if err := store.UpdateLoan(ctx, &models.Loan{ID: 9999, DueDate: today}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createUser(t, store, "ada", true)

	if err := store.CreateUser(ctx, models.NewUser("ada", "Other", "hash", false)); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate username, got %v", err)
	}

	got, err := store.GetUserByUsername(ctx, "ada")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if !got.Staff || got.ID != user.ID {
		t.Errorf("Unexpected user: %+v", got)
	}

	if _, err := store.GetUserByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	got.DisplayName = "Ada Lovelace"
	if err := store.UpdateUser(ctx, got); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	got, _ = store.GetUserByID(ctx, user.ID)
	if got.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName not updated: %s", got.DisplayName)
	}
}
