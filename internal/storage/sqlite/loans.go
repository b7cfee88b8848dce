package sqlite

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
)

type loanRow struct {
	ID         int64       `db:"id"`
	BookID     int64       `db:"book_id"`
	BorrowerID string      `db:"borrower_id"`
	StartDate  models.Date `db:"start_date"`
	DueDate    models.Date `db:"due_date"`
	Returned   bool        `db:"returned"`
}

func (r *loanRow) loan() *models.Loan {
	return &models.Loan{
		ID:         r.ID,
		BookID:     r.BookID,
		BorrowerID: r.BorrowerID,
		StartDate:  r.StartDate,
		DueDate:    r.DueDate,
		Returned:   r.Returned,
	}
}

func (s *SQLiteStore) loanSelect() *goqu.SelectDataset {
	t := goqu.T("loans")
	return s.dialect.From(t).Select(
		t.Col("id"), t.Col("book_id"), t.Col("borrower_id"),
		t.Col("start_date"), t.Col("due_date"), t.Col("returned"),
	)
}

// CreateLoan inserts a new loan.
func (s *SQLiteStore) CreateLoan(ctx context.Context, l *models.Loan) error {
	id, err := s.insert(ctx, s.dialect.Insert("loans").Rows(goqu.Record{
		"book_id":     l.BookID,
		"borrower_id": l.BorrowerID,
		"start_date":  l.StartDate.String(),
		"due_date":    l.DueDate.String(),
		"returned":    l.Returned,
	}))
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}
	l.ID = id
	return nil
}

// GetLoan retrieves a loan by ID.
func (s *SQLiteStore) GetLoan(ctx context.Context, id int64) (*models.Loan, error) {
	var row loanRow
	if err := s.get(ctx, &row, s.loanSelect().Where(goqu.T("loans").Col("id").Eq(id))); err != nil {
		return nil, notFound(err, "loan", id)
	}
	return row.loan(), nil
}

// ListLoans returns a page of loans matching the filter.
func (s *SQLiteStore) ListLoans(ctx context.Context, f query.LoanFilter, p query.Page) ([]*models.Loan, int, error) {
	ds := s.loanSelect().Where(f.Where()).Order(query.DefaultOrder("loans"))

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	var rows []loanRow
	if err := s.selectAll(ctx, &rows, p.Apply(ds)); err != nil {
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}

	loans := make([]*models.Loan, len(rows))
	for i := range rows {
		loans[i] = rows[i].loan()
	}
	return loans, total, nil
}

// UpdateLoan writes the loan's mutable fields: due date and returned flag.
func (s *SQLiteStore) UpdateLoan(ctx context.Context, l *models.Loan) error {
	ds := s.dialect.Update("loans").Prepared(true).
		Set(goqu.Record{
			"due_date": l.DueDate.String(),
			"returned": l.Returned,
		}).
		Where(goqu.C("id").Eq(l.ID))
	return s.mutate(ctx, ds, "loan", l.ID)
}

// DeleteLoan removes a loan.
func (s *SQLiteStore) DeleteLoan(ctx context.Context, id int64) error {
	ds := s.dialect.Delete("loans").Prepared(true).Where(goqu.C("id").Eq(id))
	return s.mutate(ctx, ds, "loan", id)
}

// CountActiveLoans counts the borrower's loans not yet returned.
func (s *SQLiteStore) CountActiveLoans(ctx context.Context, borrowerID string) (int, error) {
	returned := false
	f := query.LoanFilter{BorrowerID: borrowerID, Returned: &returned}
	n, err := s.count(ctx, s.dialect.From("loans").Where(f.Where()))
	if err != nil {
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}
	return n, nil
}
