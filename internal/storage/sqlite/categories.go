package sqlite

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
)

// CreateCategory inserts a new category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *models.Category) error {
	id, err := s.insert(ctx, s.dialect.Insert("categories").Rows(goqu.Record{"name": c.Name}))
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	c.ID = id
	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c := &models.Category{}
	ds := s.dialect.From("categories").Select("id", "name").Where(goqu.C("id").Eq(id))
	if err := s.get(ctx, c, ds); err != nil {
		return nil, notFound(err, "category", id)
	}
	return c, nil
}

// ListCategories returns a page of categories matching the filter.
func (s *SQLiteStore) ListCategories(ctx context.Context, f query.CategoryFilter, p query.Page) ([]*models.Category, int, error) {
	ds := s.dialect.From("categories").
		Select(goqu.T("categories").Col("id"), goqu.T("categories").Col("name")).
		Where(f.Where()).
		Order(query.DefaultOrder("categories"))

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	var categories []*models.Category
	if err := s.selectAll(ctx, &categories, p.Apply(ds)); err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

// UpdateCategory overwrites the category's fields.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	ds := s.dialect.Update("categories").Prepared(true).
		Set(goqu.Record{"name": c.Name}).
		Where(goqu.C("id").Eq(c.ID))
	return s.mutate(ctx, ds, "category", c.ID)
}

// DeleteCategory removes a category; its books go with it.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	ds := s.dialect.Delete("categories").Prepared(true).Where(goqu.C("id").Eq(id))
	return s.mutate(ctx, ds, "category", id)
}
