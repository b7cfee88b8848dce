package library

import (
	"context"
	"fmt"

	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/internal/validation"
)

// LoanInput carries the fields of a new loan. The start date is not part
// of it: the server assigns today's date.
type LoanInput struct {
	BookID *int64

	// BorrowerID defaults to the actor. Only privileged actors may lend on
	// behalf of someone else.
	BorrowerID *string

	DueDate *string
}

// LoanPatch carries the only loan fields that may change after creation.
type LoanPatch struct {
	DueDate  *string
	Returned *bool
}

// ListLoans returns a page of loans. Non-privileged actors only ever see
// their own loans, whatever the filter asks for.
func (l *Library) ListLoans(ctx context.Context, actor models.Actor, f query.LoanFilter, p query.Page) (Listing[*models.Loan], error) {
	if err := l.check(authz.Read, authz.Loan, actor, ""); err != nil {
		return Listing[*models.Loan]{}, err
	}
	if !actor.Privileged {
		f.BorrowerID = actor.UserID
	}
	loans, total, err := l.store.ListLoans(ctx, f, p)
	if err != nil {
		return Listing[*models.Loan]{}, fmt.Errorf("failed to list loans: %w", err)
	}
	return Listing[*models.Loan]{Items: loans, Total: total, Page: p}, nil
}

// GetLoan returns one loan visible to actor.
func (l *Library) GetLoan(ctx context.Context, actor models.Actor, id int64) (*models.Loan, error) {
	if err := l.check(authz.Read, authz.Loan, actor, ""); err != nil {
		return nil, err
	}
	loan, err := l.store.GetLoan(ctx, id)
	if err != nil {
		return nil, missing(err, authz.Loan, id)
	}
	if !actor.Privileged && loan.BorrowerID != actor.UserID {
		return nil, l.reject(authz.Loan, &authz.Denial{Action: authz.Read, Entity: authz.Loan})
	}
	return loan, nil
}

// CreateLoan lends a book. The loan limit is checked here and nowhere else.
func (l *Library) CreateLoan(ctx context.Context, actor models.Actor, in LoanInput) (*models.Loan, error) {
	if err := l.check(authz.Create, authz.Loan, actor, ""); err != nil {
		return nil, err
	}

	borrower := actor.UserID
	if in.BorrowerID != nil && *in.BorrowerID != "" && *in.BorrowerID != actor.UserID {
		if !actor.Privileged {
			return nil, l.reject(authz.Loan, &authz.Denial{Action: authz.Create, Entity: authz.Loan})
		}
		if _, err := l.store.GetUserByID(ctx, *in.BorrowerID); err != nil {
			return nil, l.reject(authz.Loan, missing(err, authz.Account, *in.BorrowerID))
		}
		borrower = *in.BorrowerID
	}

	errs := validation.NewErrors()
	if in.BookID == nil {
		errs.Add(validation.FieldBook, validation.MissingFields, "O livro do empréstimo deve ser informado.")
	} else if _, err := l.store.GetBook(ctx, *in.BookID); err != nil {
		return nil, l.reject(authz.Loan, missing(err, authz.Book, *in.BookID))
	}

	unlock := l.locks.Lock(borrowerKey(borrower))
	defer unlock()

	active, err := l.store.CountActiveLoans(ctx, borrower)
	if err != nil {
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}

	start := l.today()
	due := validation.ParseDate(errs, validation.FieldDueDate, in.DueDate)
	errs.Merge(validation.ValidateLoan(validation.LoanFields{
		StartDate:   &start,
		DueDate:     due,
		ActiveLoans: &active,
	}))
	if err := errs.Err(); err != nil {
		return nil, l.reject(authz.Loan, err)
	}

	loan := &models.Loan{
		BookID:     *in.BookID,
		BorrowerID: borrower,
		StartDate:  start,
		DueDate:    *due,
	}
	if err := l.store.CreateLoan(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}
	l.committed(ctx, authz.Loan, authz.Create, loan.ID, actor)
	return loan, nil
}

// UpdateLoan changes the due date or the returned flag. The loan limit is
// not consulted, so returning a book always succeeds at the cap.
func (l *Library) UpdateLoan(ctx context.Context, actor models.Actor, id int64, in LoanPatch) (*models.Loan, error) {
	if err := l.precheck(authz.Update, authz.Loan, actor); err != nil {
		return nil, err
	}
	current, err := l.store.GetLoan(ctx, id)
	if err != nil {
		return nil, l.reject(authz.Loan, missing(err, authz.Loan, id))
	}
	if err := l.check(authz.Update, authz.Loan, actor, current.BorrowerID); err != nil {
		return nil, err
	}

	loan := *current
	errs := validation.NewErrors()
	due := &loan.DueDate
	if d := validation.ParseDate(errs, validation.FieldDueDate, in.DueDate); d != nil {
		due = d
	}
	if in.Returned != nil {
		loan.Returned = *in.Returned
	}

	errs.Merge(validation.ValidateLoan(validation.LoanFields{
		StartDate: &loan.StartDate,
		DueDate:   due,
		Returned:  loan.Returned,
	}))
	if err := errs.Err(); err != nil {
		return nil, l.reject(authz.Loan, err)
	}

	loan.DueDate = *due
	if err := l.store.UpdateLoan(ctx, &loan); err != nil {
		return nil, missing(err, authz.Loan, id)
	}
	l.committed(ctx, authz.Loan, authz.Update, id, actor)
	return &loan, nil
}

// DeleteLoan removes a loan record. Only privileged actors may do so.
func (l *Library) DeleteLoan(ctx context.Context, actor models.Actor, id int64) error {
	if err := l.check(authz.Delete, authz.Loan, actor, ""); err != nil {
		return err
	}
	if _, err := l.store.GetLoan(ctx, id); err != nil {
		return l.reject(authz.Loan, missing(err, authz.Loan, id))
	}
	if err := l.store.DeleteLoan(ctx, id); err != nil {
		return missing(err, authz.Loan, id)
	}
	l.committed(ctx, authz.Loan, authz.Delete, id, actor)
	return nil
}
