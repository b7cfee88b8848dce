package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
)

// bookRow is a books row joined with its category, author and creator.
type bookRow struct {
	ID              int64          `db:"id"`
	Title           string         `db:"title"`
	Description     sql.NullString `db:"description"`
	PublicationDate sql.NullString `db:"publication_date"`
	CategoryID      sql.NullInt64  `db:"category_id"`
	AuthorID        sql.NullInt64  `db:"author_id"`
	CreatorID       string         `db:"creator_id"`
	CategoryName    sql.NullString `db:"category_name"`
	AuthorName      sql.NullString `db:"author_name"`
	CreatorName     string         `db:"creator_name"`
	CreatorUsername string         `db:"creator_username"`
}

func (r *bookRow) view() (*models.BookView, error) {
	v := &models.BookView{
		Book: models.Book{
			ID:          r.ID,
			Title:       r.Title,
			Description: ptrString(r.Description),
			CategoryID:  ptrInt64(r.CategoryID),
			AuthorID:    ptrInt64(r.AuthorID),
			CreatorID:   r.CreatorID,
		},
		CategoryName: ptrString(r.CategoryName),
		AuthorName:   ptrString(r.AuthorName),
		CreatorLabel: models.CreatorLabel(r.CreatorName, r.CreatorUsername),
	}
	if r.PublicationDate.Valid {
		d, err := models.ParseDate(r.PublicationDate.String)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", r.ID, err)
		}
		v.PublicationDate = &d
	}
	return v, nil
}

// bookSelect joins books with the records whose names listings show.
func (s *SQLiteStore) bookSelect() *goqu.SelectDataset {
	books := goqu.T("books")
	categories := goqu.T("categories")
	authors := goqu.T("authors")
	users := goqu.T("users")

	return s.dialect.From(books).
		LeftJoin(categories, goqu.On(categories.Col("id").Eq(books.Col("category_id")))).
		LeftJoin(authors, goqu.On(authors.Col("id").Eq(books.Col("author_id")))).
		InnerJoin(users, goqu.On(users.Col("id").Eq(books.Col("creator_id")))).
		Select(
			books.Col("id"),
			books.Col("title"),
			books.Col("description"),
			books.Col("publication_date"),
			books.Col("category_id"),
			books.Col("author_id"),
			books.Col("creator_id"),
			categories.Col("name").As("category_name"),
			authors.Col("name").As("author_name"),
			users.Col("display_name").As("creator_name"),
			users.Col("username").As("creator_username"),
		)
}

func bookRecord(b *models.Book) goqu.Record {
	return goqu.Record{
		"title":            b.Title,
		"description":      nullable(b.Description),
		"publication_date": nullable(b.PublicationDate),
		"category_id":      nullable(b.CategoryID),
		"author_id":        nullable(b.AuthorID),
	}
}

// CreateBook inserts a new book. The creator is written once, here.
func (s *SQLiteStore) CreateBook(ctx context.Context, b *models.Book) error {
	rec := bookRecord(b)
	rec["creator_id"] = b.CreatorID

	id, err := s.insert(ctx, s.dialect.Insert("books").Rows(rec))
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	b.ID = id
	return nil
}

// GetBook retrieves a book with its related names.
func (s *SQLiteStore) GetBook(ctx context.Context, id int64) (*models.BookView, error) {
	var row bookRow
	if err := s.get(ctx, &row, s.bookSelect().Where(goqu.T("books").Col("id").Eq(id))); err != nil {
		return nil, notFound(err, "book", id)
	}
	return row.view()
}

// ListBooks returns a page of books, newest first.
func (s *SQLiteStore) ListBooks(ctx context.Context, f query.BookFilter, p query.Page) ([]*models.BookView, int, error) {
	ds := s.bookSelect().Where(f.Where()).Order(query.BookOrder())

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	var rows []bookRow
	if err := s.selectAll(ctx, &rows, p.Apply(ds)); err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]*models.BookView, 0, len(rows))
	for i := range rows {
		v, err := rows[i].view()
		if err != nil {
			return nil, 0, err
		}
		books = append(books, v)
	}
	return books, total, nil
}

// UpdateBook overwrites the book's editable fields. The creator is left as is.
func (s *SQLiteStore) UpdateBook(ctx context.Context, b *models.Book) error {
	ds := s.dialect.Update("books").Prepared(true).
		Set(bookRecord(b)).
		Where(goqu.C("id").Eq(b.ID))
	if err := s.mutate(ctx, ds, "book", b.ID); err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

// DeleteBook removes a book; its loans go with it.
func (s *SQLiteStore) DeleteBook(ctx context.Context, id int64) error {
	ds := s.dialect.Delete("books").Prepared(true).Where(goqu.C("id").Eq(id))
	return s.mutate(ctx, ds, "book", id)
}

// BookTitleExists reports whether another book already uses title.
func (s *SQLiteStore) BookTitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	ds := s.dialect.From("books").Where(
		goqu.C("title").Eq(title),
		goqu.C("id").Neq(excludeID),
	)
	n, err := s.count(ctx, ds)
	if err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return n > 0, nil
}

// CountBooksInCategory counts a category's books other than excludeID.
func (s *SQLiteStore) CountBooksInCategory(ctx context.Context, categoryID, excludeID int64) (int, error) {
	ds := s.dialect.From("books").Where(
		goqu.C("category_id").Eq(categoryID),
		goqu.C("id").Neq(excludeID),
	)
	n, err := s.count(ctx, ds)
	if err != nil {
		return 0, fmt.Errorf("failed to count books in category: %w", err)
	}
	return n, nil
}
