// Package query turns optional search parameters into goqu predicates,
// orderings and page windows for the SQL entity store.
package query

import (
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	tableBooks      = "books"
	tableCategories = "categories"
	tableAuthors    = "authors"
	tableLoans      = "loans"

	colID         = "id"
	colTitle      = "title"
	colName       = "name"
	colBorrowerID = "borrower_id"
	colBookID     = "book_id"
	colReturned   = "returned"
)

// BookFilter narrows book listings. Empty fields are ignored.
type BookFilter struct {
	Title    string
	Category string
	Author   string
}

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	Name string
}

// AuthorFilter narrows author listings.
type AuthorFilter struct {
	Name string
}

// LoanFilter narrows loan listings. BorrowerID scopes the listing to one
// user; it is set by the caller from the actor, never from client input
// unless the actor is privileged.
type LoanFilter struct {
	BorrowerID string
	BookID     *int64
	Returned   *bool
}

// Where returns the conjunction of the book filter's predicates.
func (f BookFilter) Where() exp.Expression {
	return and(
		contains(goqu.T(tableBooks).Col(colTitle), f.Title),
		contains(goqu.T(tableCategories).Col(colName), f.Category),
		contains(goqu.T(tableAuthors).Col(colName), f.Author),
	)
}

// Where returns the conjunction of the category filter's predicates.
func (f CategoryFilter) Where() exp.Expression {
	return and(contains(goqu.T(tableCategories).Col(colName), f.Name))
}

// Where returns the conjunction of the author filter's predicates.
func (f AuthorFilter) Where() exp.Expression {
	return and(contains(goqu.T(tableAuthors).Col(colName), f.Name))
}

// Where returns the conjunction of the loan filter's predicates.
func (f LoanFilter) Where() exp.Expression {
	var preds []exp.Expression
	if f.BorrowerID != "" {
		preds = append(preds, goqu.T(tableLoans).Col(colBorrowerID).Eq(f.BorrowerID))
	}
	if f.BookID != nil {
		preds = append(preds, goqu.T(tableLoans).Col(colBookID).Eq(*f.BookID))
	}
	if f.Returned != nil {
		preds = append(preds, goqu.T(tableLoans).Col(colReturned).Eq(*f.Returned))
	}
	return and(preds...)
}

// BookOrder lists the most recently created books first.
func BookOrder() exp.OrderedExpression {
	return goqu.T(tableBooks).Col(colID).Desc()
}

// DefaultOrder is the store order for every other listing.
func DefaultOrder(table string) exp.OrderedExpression {
	return goqu.T(table).Col(colID).Asc()
}

// contains builds a case-insensitive substring match of term against col,
// or nil when term is blank. LIKE wildcards in term match literally.
func contains(col exp.IdentifierExpression, term string) exp.Expression {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return goqu.L(`LOWER(?) LIKE ? ESCAPE '\'`, col, "%"+escapeLike(strings.ToLower(term))+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// and combines the non-nil predicates. With none it returns an empty
// expression list, which goqu renders as no WHERE clause.
func and(preds ...exp.Expression) exp.Expression {
	list := make([]exp.Expression, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			list = append(list, p)
		}
	}
	return goqu.And(list...)
}
