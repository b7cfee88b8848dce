package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/internal/validation"
)

// CategoryInput carries the fields of a category create or update.
type CategoryInput struct {
	Name *string
}

// ListCategories returns a page of categories.
func (l *Library) ListCategories(ctx context.Context, actor models.Actor, f query.CategoryFilter, p query.Page) (Listing[*models.Category], error) {
	if err := l.check(authz.Read, authz.Category, actor, ""); err != nil {
		return Listing[*models.Category]{}, err
	}
	categories, total, err := l.store.ListCategories(ctx, f, p)
	if err != nil {
		return Listing[*models.Category]{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return Listing[*models.Category]{Items: categories, Total: total, Page: p}, nil
}

// GetCategory returns one category.
func (l *Library) GetCategory(ctx context.Context, actor models.Actor, id int64) (*models.Category, error) {
	if err := l.check(authz.Read, authz.Category, actor, ""); err != nil {
		return nil, err
	}
	c, err := l.store.GetCategory(ctx, id)
	if err != nil {
		return nil, missing(err, authz.Category, id)
	}
	return c, nil
}

// CreateCategory adds a category.
func (l *Library) CreateCategory(ctx context.Context, actor models.Actor, in CategoryInput) (*models.Category, error) {
	if err := l.check(authz.Create, authz.Category, actor, ""); err != nil {
		return nil, err
	}

	c := &models.Category{}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if err := validation.ValidateCategory(validation.CategoryFields{Name: c.Name}); err != nil {
		return nil, l.reject(authz.Category, err)
	}

	if err := l.store.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	l.committed(ctx, authz.Category, authz.Create, c.ID, actor)
	return c, nil
}

// UpdateCategory renames a category.
func (l *Library) UpdateCategory(ctx context.Context, actor models.Actor, id int64, in CategoryInput) (*models.Category, error) {
	if err := l.check(authz.Update, authz.Category, actor, ""); err != nil {
		return nil, err
	}
	current, err := l.store.GetCategory(ctx, id)
	if err != nil {
		return nil, l.reject(authz.Category, missing(err, authz.Category, id))
	}

	unlock := l.locks.Lock(categoryKey(&id))
	defer unlock()

	c := *current
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	count, err := l.store.CountBooksInCategory(ctx, id, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to count category books: %w", err)
	}
	if err := validation.ValidateCategory(validation.CategoryFields{Name: c.Name, BookCount: count}); err != nil {
		return nil, l.reject(authz.Category, err)
	}

	if err := l.store.UpdateCategory(ctx, &c); err != nil {
		return nil, missing(err, authz.Category, id)
	}
	l.committed(ctx, authz.Category, authz.Update, id, actor)
	return &c, nil
}

// DeleteCategory removes a category together with its books.
func (l *Library) DeleteCategory(ctx context.Context, actor models.Actor, id int64) error {
	if err := l.check(authz.Delete, authz.Category, actor, ""); err != nil {
		return err
	}
	if _, err := l.store.GetCategory(ctx, id); err != nil {
		return l.reject(authz.Category, missing(err, authz.Category, id))
	}
	if err := l.store.DeleteCategory(ctx, id); err != nil {
		return missing(err, authz.Category, id)
	}
	l.committed(ctx, authz.Category, authz.Delete, id, actor)
	return nil
}
