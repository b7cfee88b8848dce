package sqlite

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
)

// CreateAuthor inserts a new author.
func (s *SQLiteStore) CreateAuthor(ctx context.Context, a *models.Author) error {
	id, err := s.insert(ctx, s.dialect.Insert("authors").Rows(goqu.Record{
		"name":      a.Name,
		"biography": a.Biography,
	}))
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}
	a.ID = id
	return nil
}

// GetAuthor retrieves an author by ID.
func (s *SQLiteStore) GetAuthor(ctx context.Context, id int64) (*models.Author, error) {
	a := &models.Author{}
	ds := s.dialect.From("authors").Select("id", "name", "biography").Where(goqu.C("id").Eq(id))
	if err := s.get(ctx, a, ds); err != nil {
		return nil, notFound(err, "author", id)
	}
	return a, nil
}

// ListAuthors returns a page of authors matching the filter.
func (s *SQLiteStore) ListAuthors(ctx context.Context, f query.AuthorFilter, p query.Page) ([]*models.Author, int, error) {
	t := goqu.T("authors")
	ds := s.dialect.From("authors").
		Select(t.Col("id"), t.Col("name"), t.Col("biography")).
		Where(f.Where()).
		Order(query.DefaultOrder("authors"))

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	var authors []*models.Author
	if err := s.selectAll(ctx, &authors, p.Apply(ds)); err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, total, nil
}

// UpdateAuthor overwrites the author's fields.
func (s *SQLiteStore) UpdateAuthor(ctx context.Context, a *models.Author) error {
	ds := s.dialect.Update("authors").Prepared(true).
		Set(goqu.Record{"name": a.Name, "biography": a.Biography}).
		Where(goqu.C("id").Eq(a.ID))
	return s.mutate(ctx, ds, "author", a.ID)
}

// DeleteAuthor removes an author; their books go with them.
func (s *SQLiteStore) DeleteAuthor(ctx context.Context, id int64) error {
	ds := s.dialect.Delete("authors").Prepared(true).Where(goqu.C("id").Eq(id))
	return s.mutate(ctx, ds, "author", id)
}
