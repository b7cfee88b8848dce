package service

import (
	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/pkg/api"
)

func bookToAPI(b *models.BookView) *api.Book {
	out := &api.Book{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		CategoryID:   b.CategoryID,
		AuthorID:     b.AuthorID,
		CategoryName: b.CategoryName,
		AuthorName:   b.AuthorName,
		Creator:      b.CreatorID,
		CreatorName:  b.CreatorLabel,
	}
	if b.PublicationDate != nil {
		d := b.PublicationDate.String()
		out.PublicationDate = &d
	}
	return out
}

func bookInput(f api.BookFields) library.BookInput {
	return library.BookInput{
		Title:           f.Title,
		Description:     f.Description,
		PublicationDate: f.PublicationDate,
		CategoryID:      f.CategoryID,
		AuthorID:        f.AuthorID,
	}
}

func categoryToAPI(c *models.Category) *api.Category {
	return &api.Category{ID: c.ID, Name: c.Name}
}

func authorToAPI(a *models.Author) *api.Author {
	return &api.Author{ID: a.ID, Name: a.Name, Biography: a.Biography}
}

func loanToAPI(l *models.Loan) *api.Loan {
	return &api.Loan{
		ID:         l.ID,
		BookID:     l.BookID,
		BorrowerID: l.BorrowerID,
		StartDate:  l.StartDate.String(),
		DueDate:    l.DueDate.String(),
		Returned:   l.Returned,
	}
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Staff:       u.Staff,
		CreatedAt:   u.CreatedAt,
	}
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
