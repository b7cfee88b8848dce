package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/internal/storage"
	"github.com/mmynk/biblioteca/internal/validation"
)

// BookInput carries the fields of a book create or update. A nil field is
// absent: on update it keeps the stored value. Dates arrive unparsed so a
// malformed value is reported alongside the other violations.
type BookInput struct {
	Title           *string
	Description     *string
	PublicationDate *string
	CategoryID      *int64
	AuthorID        *int64
}

// ListBooks returns a page of books, newest first. Anyone may list books.
func (l *Library) ListBooks(ctx context.Context, actor models.Actor, f query.BookFilter, p query.Page) (Listing[*models.BookView], error) {
	if err := l.check(authz.Read, authz.Book, actor, ""); err != nil {
		return Listing[*models.BookView]{}, err
	}
	books, total, err := l.store.ListBooks(ctx, f, p)
	if err != nil {
		return Listing[*models.BookView]{}, fmt.Errorf("failed to list books: %w", err)
	}
	return Listing[*models.BookView]{Items: books, Total: total, Page: p}, nil
}

// GetBook returns one book with its related names.
func (l *Library) GetBook(ctx context.Context, actor models.Actor, id int64) (*models.BookView, error) {
	if err := l.check(authz.Read, authz.Book, actor, ""); err != nil {
		return nil, err
	}
	book, err := l.store.GetBook(ctx, id)
	if err != nil {
		return nil, missing(err, authz.Book, id)
	}
	return book, nil
}

// CreateBook adds a book owned by actor.
func (l *Library) CreateBook(ctx context.Context, actor models.Actor, in BookInput) (*models.BookView, error) {
	if err := l.check(authz.Create, authz.Book, actor, ""); err != nil {
		return nil, err
	}

	var titleLock string
	if in.Title != nil {
		titleLock = titleKey(*in.Title)
	}
	unlock := l.locks.Lock(titleLock, categoryKey(in.CategoryID))
	defer unlock()

	book := &models.Book{CreatorID: actor.UserID}
	fields, err := l.prepareBook(ctx, book, in)
	if err != nil {
		return nil, l.reject(authz.Book, err)
	}

	book.Title = *fields.Title
	if err := l.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, l.reject(authz.Book, ErrDuplicateTitle)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	l.committed(ctx, authz.Book, authz.Create, book.ID, actor)

	return l.store.GetBook(ctx, book.ID)
}

// UpdateBook overlays in on the stored book. Only its privileged creator
// may change it.
func (l *Library) UpdateBook(ctx context.Context, actor models.Actor, id int64, in BookInput) (*models.BookView, error) {
	if err := l.precheck(authz.Update, authz.Book, actor); err != nil {
		return nil, err
	}
	current, err := l.store.GetBook(ctx, id)
	if err != nil {
		return nil, l.reject(authz.Book, missing(err, authz.Book, id))
	}
	if err := l.check(authz.Update, authz.Book, actor, current.CreatorID); err != nil {
		return nil, err
	}

	var titleLock string
	if in.Title != nil && *in.Title != current.Title {
		titleLock = titleKey(*in.Title)
	}
	categoryID := current.CategoryID
	if in.CategoryID != nil {
		categoryID = in.CategoryID
	}
	unlock := l.locks.Lock(titleLock, categoryKey(categoryID))
	defer unlock()

	book := current.Book
	fields, err := l.prepareBook(ctx, &book, in)
	if err != nil {
		return nil, l.reject(authz.Book, err)
	}

	book.Title = *fields.Title
	if err := l.store.UpdateBook(ctx, &book); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, l.reject(authz.Book, ErrDuplicateTitle)
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	l.committed(ctx, authz.Book, authz.Update, book.ID, actor)

	return l.store.GetBook(ctx, book.ID)
}

// DeleteBook removes a book and its loans. Only its privileged creator may
// delete it.
func (l *Library) DeleteBook(ctx context.Context, actor models.Actor, id int64) error {
	if err := l.precheck(authz.Delete, authz.Book, actor); err != nil {
		return err
	}
	current, err := l.store.GetBook(ctx, id)
	if err != nil {
		return l.reject(authz.Book, missing(err, authz.Book, id))
	}
	if err := l.check(authz.Delete, authz.Book, actor, current.CreatorID); err != nil {
		return err
	}
	if err := l.store.DeleteBook(ctx, id); err != nil {
		return missing(err, authz.Book, id)
	}
	l.committed(ctx, authz.Book, authz.Delete, id, actor)
	return nil
}

// prepareBook overlays in on book, runs the duplicate-title and reference
// checks and validates the result. book is left holding the merged state
// except for the title, which is returned in fields so that an absent title
// stays distinguishable from an empty one.
func (l *Library) prepareBook(ctx context.Context, book *models.Book, in BookInput) (validation.BookFields, error) {
	fields := validation.BookFields{
		Description:     book.Description,
		PublicationDate: book.PublicationDate,
		CategoryID:      book.CategoryID,
	}
	if book.ID != 0 {
		fields.Title = &book.Title
	}

	if in.Title != nil {
		if book.ID == 0 || *in.Title != book.Title {
			taken, err := l.store.BookTitleExists(ctx, *in.Title, book.ID)
			if err != nil {
				return fields, fmt.Errorf("failed to check title: %w", err)
			}
			if taken {
				return fields, ErrDuplicateTitle
			}
		}
		title := *in.Title
		fields.Title = &title
	}

	if in.CategoryID != nil {
		if _, err := l.store.GetCategory(ctx, *in.CategoryID); err != nil {
			return fields, missing(err, authz.Category, *in.CategoryID)
		}
		fields.CategoryID = in.CategoryID
	}
	if in.AuthorID != nil {
		if _, err := l.store.GetAuthor(ctx, *in.AuthorID); err != nil {
			return fields, missing(err, authz.Author, *in.AuthorID)
		}
		book.AuthorID = in.AuthorID
	}
	if in.Description != nil {
		fields.Description = in.Description
	}

	errs := validation.NewErrors()
	if d := validation.ParseDate(errs, validation.FieldPublicationDate, in.PublicationDate); d != nil {
		fields.PublicationDate = d
	}

	if fields.CategoryID != nil {
		n, err := l.store.CountBooksInCategory(ctx, *fields.CategoryID, book.ID)
		if err != nil {
			return fields, fmt.Errorf("failed to count category books: %w", err)
		}
		fields.CategoryBooks = n
	}

	errs.Merge(validation.ValidateBook(fields, l.today()))
	if err := errs.Err(); err != nil {
		return fields, err
	}

	book.Description = fields.Description
	book.PublicationDate = fields.PublicationDate
	book.CategoryID = fields.CategoryID
	return fields, nil
}
