package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mmynk/biblioteca/internal/models"
)

const (
	MinTitleLength        = 5
	MinDescriptionLength  = 20
	MinCategoryNameLength = 3
	MaxCategoryNameLength = 50
)

// BookFields is the candidate state of a book. For updates it is the
// stored record overlaid with the incoming fields.
type BookFields struct {
	Title           *string
	Description     *string
	PublicationDate *models.Date
	CategoryID      *int64

	// CategoryBooks is the number of books already linked to CategoryID,
	// not counting the book being validated.
	CategoryBooks int
}

// CategoryFields is the candidate state of a category.
type CategoryFields struct {
	Name string

	// BookCount is the number of books currently linked to the category.
	BookCount int
}

// AuthorFields is the candidate state of an author.
type AuthorFields struct {
	Name      string
	Biography string
}

// LoanFields is the candidate state of a loan.
type LoanFields struct {
	StartDate *models.Date
	DueDate   *models.Date
	Returned  bool

	// ActiveLoans is the borrower's count of non-returned loans. It is only
	// set when a loan is being created; nil skips the limit check.
	ActiveLoans *int
}

// ValidateBook checks a book before it is written.
func ValidateBook(f BookFields, today models.Date) error {
	errs := NewErrors()

	if f.Title == nil || f.Description == nil || f.PublicationDate == nil {
		errs.Add(FieldMissing, MissingFields,
			"Os campos título, descrição e data de publicação são obrigatórios.")
	}
	if f.Title != nil && utf8.RuneCountInString(*f.Title) < MinTitleLength {
		errs.Add(FieldTitle, TitleTooShort,
			fmt.Sprintf("O título deve ter pelo menos %d caracteres.", MinTitleLength))
	}
	if f.Description != nil && utf8.RuneCountInString(*f.Description) < MinDescriptionLength {
		errs.Add(FieldDescription, DescriptionTooShort,
			fmt.Sprintf("A descrição deve ter no mínimo %d caracteres.", MinDescriptionLength))
	}
	if f.PublicationDate != nil && f.PublicationDate.After(today) {
		errs.Add(FieldPublicationDate, FuturePublicationDate,
			"A data de publicação não pode ser no futuro.")
	}
	if f.CategoryID != nil && f.CategoryBooks >= models.MaxBooksPerCategory {
		errs.Add(FieldCategory, CategoryOverCapacity, categoryCapacityMessage)
	}

	return errs.Err()
}

const categoryCapacityMessage = "A categoria não pode ter mais de 100 livros."

// ValidateCategory checks a category before it is written.
func ValidateCategory(f CategoryFields) error {
	errs := NewErrors()
	name := strings.TrimSpace(f.Name)

	switch {
	case name == "":
		errs.Add(FieldName, EmptyName, "O nome da categoria não pode ser vazio.")
	default:
		if isDigits(name) {
			errs.Add(FieldName, NumericName, "O nome da categoria não pode ser um número.")
		}
		n := utf8.RuneCountInString(name)
		if n < MinCategoryNameLength {
			errs.Add(FieldName, NameTooShort,
				fmt.Sprintf("O nome da categoria deve ter no mínimo %d caracteres.", MinCategoryNameLength))
		}
		if n > MaxCategoryNameLength {
			errs.Add(FieldName, NameTooLong,
				fmt.Sprintf("O nome da categoria deve ter no máximo %d caracteres.", MaxCategoryNameLength))
		}
	}
	if f.BookCount > models.MaxBooksPerCategory {
		errs.Add(FieldCategory, CategoryOverCapacity, categoryCapacityMessage)
	}

	return errs.Err()
}

// ValidateAuthor checks an author before it is written. Name and biography
// are trimmed first.
func ValidateAuthor(f AuthorFields) error {
	errs := NewErrors()
	name := strings.TrimSpace(f.Name)
	bio := strings.TrimSpace(f.Biography)

	if isDigits(name) {
		errs.Add(FieldName, NumericName, "O nome não pode ser apenas dígitos.")
	}
	if strings.IndexFunc(name, unicode.IsDigit) >= 0 {
		errs.Add(FieldName, NameContainsDigits, "O nome não pode conter números.")
	}
	if name == "" {
		errs.Add(FieldName, EmptyName, "O nome não pode estar vazio.")
	}
	if isDigits(bio) {
		errs.Add(FieldBiography, NumericBiography, "A biografia não pode ser apenas dígitos.")
	}
	if bio == "" {
		errs.Add(FieldBiography, EmptyBiography, "A biografia não pode estar vazia.")
	}

	return errs.Err()
}

// ValidateLoan checks a loan before it is written.
func ValidateLoan(f LoanFields) error {
	errs := NewErrors()

	switch {
	case f.DueDate == nil:
		errs.Add(FieldDueDate, MissingDueDate, "A data prevista de devolução deve ser fornecida.")
	case f.StartDate != nil && !f.DueDate.After(*f.StartDate):
		errs.Add(FieldDueDate, DueDateNotAfterStart,
			"A data prevista de devolução deve ser posterior à data de início do empréstimo.")
	}

	if f.Returned && (f.StartDate == nil || f.DueDate == nil) {
		errs.Add(FieldReturned, ReturnedWithoutDates,
			"Se o empréstimo foi devolvido, as datas de início e prevista de devolução devem estar definidas.")
	}

	if f.ActiveLoans != nil && *f.ActiveLoans >= models.MaxActiveLoans {
		errs.Add(FieldBorrower, LoanLimitExceeded,
			fmt.Sprintf("O usuário já possui %d empréstimos não devolvidos.", models.MaxActiveLoans))
	}

	return errs.Err()
}

// ParseDate parses an optional date field. A malformed value is recorded on
// errs under field and yields nil.
func ParseDate(errs *Errors, field string, raw *string) *models.Date {
	if raw == nil {
		return nil
	}
	d, err := models.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		errs.Add(field, InvalidDate, "Formato de data inválido, use AAAA-MM-DD.")
		return nil
	}
	return &d
}

// isDigits reports whether s is non-empty and made only of digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
