package models

// MaxActiveLoans is the number of non-returned loans a borrower may hold.
const MaxActiveLoans = 5

// Loan records a book lent to a user.
type Loan struct {
	ID int64

	// BookID is the lent book. Deleting the book deletes the loan.
	BookID int64

	// BorrowerID is the user holding the book.
	BorrowerID string

	// StartDate is assigned by the server when the loan is created.
	StartDate Date

	// DueDate is strictly after StartDate.
	DueDate Date

	// Returned marks the loan as closed. Open loans count toward MaxActiveLoans.
	Returned bool
}
