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

// AuthorInput carries the fields of an author create or update.
type AuthorInput struct {
	Name      *string
	Biography *string
}

// ListAuthors returns a page of authors.
func (l *Library) ListAuthors(ctx context.Context, actor models.Actor, f query.AuthorFilter, p query.Page) (Listing[*models.Author], error) {
	if err := l.check(authz.Read, authz.Author, actor, ""); err != nil {
		return Listing[*models.Author]{}, err
	}
	authors, total, err := l.store.ListAuthors(ctx, f, p)
	if err != nil {
		return Listing[*models.Author]{}, fmt.Errorf("failed to list authors: %w", err)
	}
	return Listing[*models.Author]{Items: authors, Total: total, Page: p}, nil
}

// GetAuthor returns one author.
func (l *Library) GetAuthor(ctx context.Context, actor models.Actor, id int64) (*models.Author, error) {
	if err := l.check(authz.Read, authz.Author, actor, ""); err != nil {
		return nil, err
	}
	a, err := l.store.GetAuthor(ctx, id)
	if err != nil {
		return nil, missing(err, authz.Author, id)
	}
	return a, nil
}

// CreateAuthor adds an author.
func (l *Library) CreateAuthor(ctx context.Context, actor models.Actor, in AuthorInput) (*models.Author, error) {
	if err := l.check(authz.Create, authz.Author, actor, ""); err != nil {
		return nil, err
	}

	a := &models.Author{}
	mergeAuthor(a, in)
	if err := validation.ValidateAuthor(validation.AuthorFields{Name: a.Name, Biography: a.Biography}); err != nil {
		return nil, l.reject(authz.Author, err)
	}

	if err := l.store.CreateAuthor(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	l.committed(ctx, authz.Author, authz.Create, a.ID, actor)
	return a, nil
}

// UpdateAuthor overlays in on the stored author.
func (l *Library) UpdateAuthor(ctx context.Context, actor models.Actor, id int64, in AuthorInput) (*models.Author, error) {
	if err := l.check(authz.Update, authz.Author, actor, ""); err != nil {
		return nil, err
	}
	current, err := l.store.GetAuthor(ctx, id)
	if err != nil {
		return nil, l.reject(authz.Author, missing(err, authz.Author, id))
	}

	a := *current
	mergeAuthor(&a, in)
	if err := validation.ValidateAuthor(validation.AuthorFields{Name: a.Name, Biography: a.Biography}); err != nil {
		return nil, l.reject(authz.Author, err)
	}

	if err := l.store.UpdateAuthor(ctx, &a); err != nil {
		return nil, missing(err, authz.Author, id)
	}
	l.committed(ctx, authz.Author, authz.Update, id, actor)
	return &a, nil
}

// DeleteAuthor removes an author together with their books.
func (l *Library) DeleteAuthor(ctx context.Context, actor models.Actor, id int64) error {
	if err := l.check(authz.Delete, authz.Author, actor, ""); err != nil {
		return err
	}
	if _, err := l.store.GetAuthor(ctx, id); err != nil {
		return l.reject(authz.Author, missing(err, authz.Author, id))
	}
	if err := l.store.DeleteAuthor(ctx, id); err != nil {
		return missing(err, authz.Author, id)
	}
	l.committed(ctx, authz.Author, authz.Delete, id, actor)
	return nil
}

func mergeAuthor(a *models.Author, in AuthorInput) {
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Biography != nil {
		a.Biography = strings.TrimSpace(*in.Biography)
	}
}
