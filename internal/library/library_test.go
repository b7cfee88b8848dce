package library

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/metrics"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/internal/storage"
	"github.com/mmynk/biblioteca/internal/storage/sqlite"
	"github.com/mmynk/biblioteca/internal/validation"
)

var today = models.NewDate(2024, time.June, 15)

type fixture struct {
	lib     *Library
	store   *sqlite.SQLiteStore
	metrics *metrics.Metrics

	admin   models.Actor
	admin2  models.Actor
	reader  models.Actor
	reader2 models.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := metrics.New()
	authn := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	lib := New(store, authn, WithClock(func() models.Date { return today }), WithMetrics(m))

	f := &fixture{lib: lib, store: store, metrics: m}
	f.admin = f.user(t, "admin", true)
	f.admin2 = f.user(t, "admin2", true)
	f.reader = f.user(t, "reader", false)
	f.reader2 = f.user(t, "reader2", false)
	return f
}

func (f *fixture) user(t *testing.T, username string, staff bool) models.Actor {
	t.Helper()
	u := models.NewUser(username, "Name "+username, "x", staff)
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return models.ActorFor(u)
}

func ptr[T any](v T) *T { return &v }

func validBook(title string) BookInput {
	return BookInput{
		Title:           ptr(title),
		Description:     ptr("A detailed twenty-plus char description."),
		PublicationDate: ptr("2020-01-01"),
	}
}

func requireViolation(t *testing.T, err error, code validation.Code) {
	t.Helper()
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has(code), "expected %s in %v", code, verrs.Messages())
}

func TestCreateBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("A Brief History"))
	require.NoError(t, err)
	assert.Equal(t, f.admin.UserID, book.CreatorID)
	assert.Equal(t, "Name admin (admin)", book.CreatorLabel)
	assert.Equal(t, "2020-01-01", book.PublicationDate.String())

	_, err = f.lib.CreateBook(ctx, f.admin, validBook("A Brief History"))
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Mutations.WithLabelValues("book", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Rejections.WithLabelValues("book", metrics.RejectDuplicate)))
}

func TestCreateBookValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   BookInput
		want []validation.Code
	}{
		{
			name: "missing everything",
			in:   BookInput{},
			want: []validation.Code{validation.MissingFields},
		},
		{
			name: "short title and description",
			in: BookInput{
				Title:           ptr("Abc"),
				Description:     ptr("too short"),
				PublicationDate: ptr("2020-01-01"),
			},
			want: []validation.Code{validation.TitleTooShort, validation.DescriptionTooShort},
		},
		{
			name: "future date",
			in: BookInput{
				Title:           ptr("Tomorrow's news"),
				Description:     ptr("A detailed twenty-plus char description."),
				PublicationDate: ptr("2024-06-16"),
			},
			want: []validation.Code{validation.FuturePublicationDate},
		},
		{
			name: "malformed date",
			in: BookInput{
				Title:           ptr("Bad dates"),
				Description:     ptr("A detailed twenty-plus char description."),
				PublicationDate: ptr("15/06/2024"),
			},
			want: []validation.Code{validation.InvalidDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.lib.CreateBook(ctx, f.admin, tt.in)
			require.Error(t, err)
			for _, code := range tt.want {
				requireViolation(t, err, code)
			}
		})
	}

	books, err := f.lib.ListBooks(ctx, models.Anonymous(), query.BookFilter{}, query.Page{})
	require.NoError(t, err)
	assert.Zero(t, books.Total, "rejected creates must not write")
}

func TestCreateBookAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("anonymous can list", func(t *testing.T) {
		books, err := f.lib.ListBooks(ctx, models.Anonymous(), query.BookFilter{}, query.Page{})
		require.NoError(t, err)
		assert.Empty(t, books.Items)
	})

	t.Run("anonymous cannot create even an invalid book", func(t *testing.T) {
		_, err := f.lib.CreateBook(ctx, models.Anonymous(), BookInput{Title: ptr("x")})
		var denial *authz.Denial
		require.ErrorAs(t, err, &denial)
		assert.True(t, denial.Anonymous)
		assert.NotErrorIs(t, err, validation.ErrInvalid)
	})

	t.Run("reader cannot create", func(t *testing.T) {
		_, err := f.lib.CreateBook(ctx, f.reader, validBook("Reader's book"))
		assert.ErrorIs(t, err, authz.ErrDenied)
	})
}

func TestCreateBookReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validBook("Dangling category")
	in.CategoryID = ptr(int64(42))
	_, err := f.lib.CreateBook(ctx, f.admin, in)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.EqualError(t, err, "Categoria não encontrada.")

	in = validBook("Dangling author")
	in.AuthorID = ptr(int64(7))
	_, err = f.lib.CreateBook(ctx, f.admin, in)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCategoryCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.lib.CreateCategory(ctx, f.admin, CategoryInput{Name: ptr("Romance")})
	require.NoError(t, err)

	for i := 0; i < models.MaxBooksPerCategory-1; i++ {
		b := &models.Book{Title: fmt.Sprintf("Filler %03d", i), CreatorID: f.admin.UserID, CategoryID: &cat.ID}
		require.NoError(t, f.store.CreateBook(ctx, b))
	}

	in := validBook("The hundredth book")
	in.CategoryID = &cat.ID
	hundredth, err := f.lib.CreateBook(ctx, f.admin, in)
	require.NoError(t, err, "the 100th book fits")

	in = validBook("One book too many")
	in.CategoryID = &cat.ID
	_, err = f.lib.CreateBook(ctx, f.admin, in)
	requireViolation(t, err, validation.CategoryOverCapacity)

	// A book already in the full category can still be edited.
	_, err = f.lib.UpdateBook(ctx, f.admin, hundredth.ID, BookInput{Description: ptr("Still fits in the full category shelf.")})
	assert.NoError(t, err)

	// Moving another book into it cannot.
	other, err := f.lib.CreateBook(ctx, f.admin, validBook("Uncategorized"))
	require.NoError(t, err)
	_, err = f.lib.UpdateBook(ctx, f.admin, other.ID, BookInput{CategoryID: &cat.ID})
	requireViolation(t, err, validation.CategoryOverCapacity)
}

func TestUpdateBook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.lib.CreateCategory(ctx, f.admin, CategoryInput{Name: ptr("Ciência")})
	require.NoError(t, err)
	author, err := f.lib.CreateAuthor(ctx, f.admin, AuthorInput{Name: ptr("Carl Sagan"), Biography: ptr("Astronomer.")})
	require.NoError(t, err)

	in := validBook("Cosmos")
	in.CategoryID = &cat.ID
	in.AuthorID = &author.ID
	book, err := f.lib.CreateBook(ctx, f.admin, in)
	require.NoError(t, err)
	_, err = f.lib.CreateBook(ctx, f.admin, validBook("Pale Blue Dot"))
	require.NoError(t, err)

	t.Run("partial update keeps the other fields", func(t *testing.T) {
		got, err := f.lib.UpdateBook(ctx, f.admin, book.ID, BookInput{Description: ptr("A personal voyage through the universe.")})
		require.NoError(t, err)
		assert.Equal(t, "Cosmos", got.Title)
		assert.Equal(t, "A personal voyage through the universe.", *got.Description)
		assert.Equal(t, "2020-01-01", got.PublicationDate.String())
		assert.Equal(t, cat.ID, *got.CategoryID)
		assert.Equal(t, author.ID, *got.AuthorID)
		assert.Equal(t, f.admin.UserID, got.CreatorID)
	})

	t.Run("keeping the same title is not a duplicate", func(t *testing.T) {
		_, err := f.lib.UpdateBook(ctx, f.admin, book.ID, BookInput{Title: ptr("Cosmos")})
		assert.NoError(t, err)
	})

	t.Run("renaming to a taken title", func(t *testing.T) {
		_, err := f.lib.UpdateBook(ctx, f.admin, book.ID, BookInput{Title: ptr("Pale Blue Dot")})
		assert.ErrorIs(t, err, ErrDuplicateTitle)
	})

	t.Run("only the owner may update", func(t *testing.T) {
		_, err := f.lib.UpdateBook(ctx, f.admin2, book.ID, BookInput{Title: ptr("Hijacked")})
		assert.ErrorIs(t, err, authz.ErrDenied)
		_, err = f.lib.UpdateBook(ctx, models.Anonymous(), book.ID, BookInput{})
		assert.ErrorIs(t, err, authz.ErrDenied)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := f.lib.UpdateBook(ctx, f.admin, 9999, BookInput{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("only the owner may delete", func(t *testing.T) {
		assert.ErrorIs(t, f.lib.DeleteBook(ctx, f.admin2, book.ID), authz.ErrDenied)
		require.NoError(t, f.lib.DeleteBook(ctx, f.admin, book.ID))
		_, err := f.lib.GetBook(ctx, models.Anonymous(), book.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestConcurrentDuplicateTitles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.lib.CreateBook(ctx, f.admin, validBook("Only One Wins"))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateTitle)
	}
	assert.Equal(t, 1, created)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lib.CreateCategory(ctx, f.reader, CategoryInput{Name: ptr("Poesia")})
	assert.ErrorIs(t, err, authz.ErrDenied)

	_, err = f.lib.CreateCategory(ctx, f.admin, CategoryInput{Name: ptr("  ")})
	requireViolation(t, err, validation.EmptyName)

	_, err = f.lib.CreateCategory(ctx, f.admin, CategoryInput{Name: ptr("12")})
	requireViolation(t, err, validation.NumericName)
	requireViolation(t, err, validation.NameTooShort)

	cat, err := f.lib.CreateCategory(ctx, f.admin, CategoryInput{Name: ptr("  Poesia ")})
	require.NoError(t, err)
	assert.Equal(t, "Poesia", cat.Name)

	got, err := f.lib.UpdateCategory(ctx, f.admin, cat.ID, CategoryInput{Name: ptr("Poesia Moderna")})
	require.NoError(t, err)
	assert.Equal(t, "Poesia Moderna", got.Name)

	_, err = f.lib.GetCategory(ctx, models.Anonymous(), 404)
	assert.EqualError(t, err, "Categoria não encontrada.")

	in := validBook("Lira dos Vinte Anos")
	in.CategoryID = &cat.ID
	book, err := f.lib.CreateBook(ctx, f.admin, in)
	require.NoError(t, err)

	require.NoError(t, f.lib.DeleteCategory(ctx, f.admin, cat.ID))
	_, err = f.lib.GetBook(ctx, models.Anonymous(), book.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound, "books go with their category")
}

func TestAuthors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lib.CreateAuthor(ctx, f.reader, AuthorInput{Name: ptr("Machado"), Biography: ptr("Escritor.")})
	assert.ErrorIs(t, err, authz.ErrDenied)

	_, err = f.lib.CreateAuthor(ctx, f.admin, AuthorInput{Name: ptr("R2D2"), Biography: ptr("1234")})
	requireViolation(t, err, validation.NameContainsDigits)
	requireViolation(t, err, validation.NumericBiography)

	a, err := f.lib.CreateAuthor(ctx, f.admin, AuthorInput{Name: ptr("Machado de Assis"), Biography: ptr(" Escritor brasileiro. ")})
	require.NoError(t, err)
	assert.Equal(t, "Escritor brasileiro.", a.Biography)

	got, err := f.lib.UpdateAuthor(ctx, f.admin, a.ID, AuthorInput{Biography: ptr("Fundador da Academia Brasileira de Letras.")})
	require.NoError(t, err)
	assert.Equal(t, "Machado de Assis", got.Name)

	listing, err := f.lib.ListAuthors(ctx, models.Anonymous(), query.AuthorFilter{Name: "machado"}, query.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Total)

	require.NoError(t, f.lib.DeleteAuthor(ctx, f.admin, a.ID))
	_, err = f.lib.GetAuthor(ctx, models.Anonymous(), a.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoanLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("Dom Casmurro"))
	require.NoError(t, err)

	loan := LoanInput{BookID: &book.ID, DueDate: ptr("2024-06-30")}
	var first *models.Loan
	for i := 0; i < models.MaxActiveLoans; i++ {
		l, err := f.lib.CreateLoan(ctx, f.reader, loan)
		require.NoError(t, err, "loan %d", i+1)
		if first == nil {
			first = l
		}
	}

	_, err = f.lib.CreateLoan(ctx, f.reader, loan)
	requireViolation(t, err, validation.LoanLimitExceeded)

	// Returning a book at the cap always works.
	returned, err := f.lib.UpdateLoan(ctx, f.reader, first.ID, LoanPatch{Returned: ptr(true)})
	require.NoError(t, err)
	assert.True(t, returned.Returned)

	_, err = f.lib.CreateLoan(ctx, f.reader, loan)
	assert.NoError(t, err, "a slot is free again")

	// Other borrowers are unaffected.
	_, err = f.lib.CreateLoan(ctx, f.reader2, loan)
	assert.NoError(t, err)
}

func TestCreateLoan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("Memórias Póstumas"))
	require.NoError(t, err)

	t.Run("start date is today and borrower is the actor", func(t *testing.T) {
		l, err := f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: &book.ID, DueDate: ptr("2024-07-01")})
		require.NoError(t, err)
		assert.True(t, l.StartDate.Equal(today))
		assert.Equal(t, f.reader.UserID, l.BorrowerID)
		assert.False(t, l.Returned)
	})

	t.Run("due today is rejected", func(t *testing.T) {
		_, err := f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: &book.ID, DueDate: ptr(today.String())})
		requireViolation(t, err, validation.DueDateNotAfterStart)
	})

	t.Run("missing due date", func(t *testing.T) {
		_, err := f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: &book.ID})
		requireViolation(t, err, validation.MissingDueDate)
	})

	t.Run("missing book", func(t *testing.T) {
		_, err := f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: ptr(int64(999)), DueDate: ptr("2024-07-01")})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.lib.CreateLoan(ctx, models.Anonymous(), LoanInput{BookID: &book.ID, DueDate: ptr("2024-07-01")})
		assert.ErrorIs(t, err, authz.ErrDenied)
	})

	t.Run("on behalf of someone else", func(t *testing.T) {
		in := LoanInput{BookID: &book.ID, BorrowerID: &f.reader2.UserID, DueDate: ptr("2024-07-01")}
		_, err := f.lib.CreateLoan(ctx, f.reader, in)
		assert.ErrorIs(t, err, authz.ErrDenied)

		l, err := f.lib.CreateLoan(ctx, f.admin, in)
		require.NoError(t, err)
		assert.Equal(t, f.reader2.UserID, l.BorrowerID)
	})
}

func TestLoanVisibilityAndUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("Quincas Borba"))
	require.NoError(t, err)
	mine, err := f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: &book.ID, DueDate: ptr("2024-07-01")})
	require.NoError(t, err)
	_, err = f.lib.CreateLoan(ctx, f.reader2, LoanInput{BookID: &book.ID, DueDate: ptr("2024-07-01")})
	require.NoError(t, err)

	listing, err := f.lib.ListLoans(ctx, f.reader, query.LoanFilter{BorrowerID: f.reader2.UserID}, query.Page{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, f.reader.UserID, listing.Items[0].BorrowerID)

	listing, err = f.lib.ListLoans(ctx, f.admin, query.LoanFilter{}, query.Page{})
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Total)

	_, err = f.lib.GetLoan(ctx, f.reader2, mine.ID)
	assert.ErrorIs(t, err, authz.ErrDenied)
	_, err = f.lib.ListLoans(ctx, models.Anonymous(), query.LoanFilter{}, query.Page{})
	assert.ErrorIs(t, err, authz.ErrDenied)

	_, err = f.lib.UpdateLoan(ctx, f.reader2, mine.ID, LoanPatch{Returned: ptr(true)})
	assert.ErrorIs(t, err, authz.ErrDenied)

	_, err = f.lib.UpdateLoan(ctx, f.reader, mine.ID, LoanPatch{DueDate: ptr("2024-06-10")})
	requireViolation(t, err, validation.DueDateNotAfterStart)

	updated, err := f.lib.UpdateLoan(ctx, f.admin, mine.ID, LoanPatch{DueDate: ptr("2024-07-15")})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-15", updated.DueDate.String())
	assert.True(t, updated.StartDate.Equal(today))

	assert.ErrorIs(t, f.lib.DeleteLoan(ctx, f.reader, mine.ID), authz.ErrDenied)
	require.NoError(t, f.lib.DeleteLoan(ctx, f.admin, mine.ID))
}

func TestAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.lib.CreateSuperuser(ctx, f.reader, AccountInput{Username: "eve", Password: "password123"})
	assert.ErrorIs(t, err, authz.ErrDenied)

	user, err := f.lib.CreateSuperuser(ctx, f.admin, AccountInput{Username: "root", DisplayName: "Root", Password: "password123"})
	require.NoError(t, err)
	assert.True(t, user.Staff)

	_, err = f.lib.CreateSuperuser(ctx, f.admin, AccountInput{Username: "root", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrUsernameExists)

	got, err := f.lib.GetAccount(ctx, f.admin, f.admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	_, err = f.lib.GetAccount(ctx, f.admin, f.admin2.UserID)
	assert.ErrorIs(t, err, authz.ErrDenied, "staff may only see their own account")

	_, err = f.lib.UpdateAccount(ctx, f.admin, f.admin2.UserID, AccountPatch{DisplayName: ptr("Mallory")})
	assert.ErrorIs(t, err, authz.ErrDenied)

	_, err = f.lib.UpdateAccount(ctx, f.reader, f.reader.UserID, AccountPatch{DisplayName: ptr("Reader")})
	assert.ErrorIs(t, err, authz.ErrDenied, "non-staff accounts are not managed here")

	updated, err := f.lib.UpdateAccount(ctx, f.admin, f.admin.UserID, AccountPatch{DisplayName: ptr("Administrator")})
	require.NoError(t, err)
	assert.Equal(t, "Administrator", updated.DisplayName)

	_, err = f.lib.UpdateAccount(ctx, f.admin, f.admin.UserID, AccountPatch{Password: ptr("short")})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestKeyedMutex(t *testing.T) {
	k := newKeyedMutex()

	unlock := k.Lock("b", "a", "a", "")
	done := make(chan struct{})
	go func() {
		defer close(done)
		release := k.Lock("a")
		release()
	}()

	select {
	case <-done:
		t.Fatal("second Lock on a held key returned early")
	case <-time.After(20 * time.Millisecond):
	}
	unlock()
	<-done

	// Unrelated keys never block.
	release := k.Lock("c")
	release()
}

func TestDeniedBeforeLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const missingID = 999

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("Grande Sertão"))
	require.NoError(t, err)

	anonymous := models.Anonymous()
	tests := []struct {
		name string
		call func() error
	}{
		{"anonymous deletes category", func() error { return f.lib.DeleteCategory(ctx, anonymous, missingID) }},
		{"reader renames category", func() error {
			_, err := f.lib.UpdateCategory(ctx, f.reader, missingID, CategoryInput{Name: ptr("Drama")})
			return err
		}},
		{"reader updates author", func() error {
			_, err := f.lib.UpdateAuthor(ctx, f.reader, missingID, AuthorInput{Name: ptr("Clarice")})
			return err
		}},
		{"anonymous deletes author", func() error { return f.lib.DeleteAuthor(ctx, anonymous, missingID) }},
		{"reader updates book", func() error {
			_, err := f.lib.UpdateBook(ctx, f.reader, missingID, BookInput{Title: ptr("Vidas Secas")})
			return err
		}},
		{"anonymous deletes book", func() error { return f.lib.DeleteBook(ctx, anonymous, missingID) }},
		{"anonymous updates loan", func() error {
			_, err := f.lib.UpdateLoan(ctx, anonymous, missingID, LoanPatch{Returned: ptr(true)})
			return err
		}},
		{"reader deletes loan", func() error { return f.lib.DeleteLoan(ctx, f.reader, missingID) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, authz.ErrDenied)
			assert.NotErrorIs(t, err, storage.ErrNotFound)
		})
	}

	t.Run("ownership is still checked once the book is loaded", func(t *testing.T) {
		_, err := f.lib.UpdateBook(ctx, f.admin2, book.ID, BookInput{Title: ptr("Vidas Secas")})
		assert.ErrorIs(t, err, authz.ErrDenied)
		assert.ErrorIs(t, f.lib.DeleteBook(ctx, f.admin2, book.ID), authz.ErrDenied)
	})

	t.Run("a permitted caller still gets not found", func(t *testing.T) {
		assert.ErrorIs(t, f.lib.DeleteCategory(ctx, f.admin, missingID), storage.ErrNotFound)
		_, err := f.lib.UpdateLoan(ctx, f.reader, missingID, LoanPatch{Returned: ptr(true)})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestConcurrentLoansRespectLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("O Cortiço"))
	require.NoError(t, err)

	const n = 12
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: &book.ID, DueDate: ptr("2024-06-30")})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		requireViolation(t, err, validation.LoanLimitExceeded)
	}
	assert.Equal(t, models.MaxActiveLoans, created)

	active, err := f.store.CountActiveLoans(ctx, f.reader.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.MaxActiveLoans, active)
}

func TestConcurrentCategoryCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.lib.CreateCategory(ctx, f.admin, CategoryInput{Name: ptr("Poesia")})
	require.NoError(t, err)
	for i := 0; i < models.MaxBooksPerCategory-1; i++ {
		b := &models.Book{Title: fmt.Sprintf("Soneto %03d", i), CreatorID: f.admin.UserID, CategoryID: &cat.ID}
		require.NoError(t, f.store.CreateBook(ctx, b))
	}

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validBook(fmt.Sprintf("Last seat %d", i))
			in.CategoryID = &cat.ID
			_, errs[i] = f.lib.CreateBook(ctx, f.admin, in)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		requireViolation(t, err, validation.CategoryOverCapacity)
	}
	assert.Equal(t, 1, created)

	count, err := f.store.CountBooksInCategory(ctx, cat.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, models.MaxBooksPerCategory, count)
}

func TestUpdateLoanMalformedDueDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.lib.CreateBook(ctx, f.admin, validBook("Senhora"))
	require.NoError(t, err)
	loan, err := f.lib.CreateLoan(ctx, f.reader, LoanInput{BookID: &book.ID, DueDate: ptr("2024-06-30")})
	require.NoError(t, err)

	_, err = f.lib.UpdateLoan(ctx, f.reader, loan.ID, LoanPatch{DueDate: ptr("30/06/2024"), Returned: ptr(true)})
	var verrs *validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{validation.FieldDueDate}, verrs.Fields())
	require.Len(t, verrs.Field(validation.FieldDueDate), 1)
	assert.True(t, verrs.Has(validation.InvalidDate))

	stored, err := f.store.GetLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.False(t, stored.Returned)
	assert.Equal(t, "2024-06-30", stored.DueDate.String())
}

func TestUpdateAccountSingleWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A rejected password leaves the display name untouched too.
	_, err := f.lib.UpdateAccount(ctx, f.admin, f.admin.UserID, AccountPatch{DisplayName: ptr("Renamed"), Password: ptr("short")})
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
	stored, err := f.store.GetUserByID(ctx, f.admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Name admin", stored.DisplayName)

	updated, err := f.lib.UpdateAccount(ctx, f.admin, f.admin.UserID, AccountPatch{DisplayName: ptr("Renamed"), Password: ptr("new-password-1")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.DisplayName)

	stored, err = f.store.GetUserByID(ctx, f.admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.DisplayName)
	authn := auth.NewPasswordAuthenticator(f.store).WithCost(bcrypt.MinCost)
	_, err = authn.Authenticate(ctx, "admin", "new-password-1")
	assert.NoError(t, err)
}
