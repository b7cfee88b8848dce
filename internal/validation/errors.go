// Package validation holds the field-level and cross-field rules a record
// must satisfy before it is written.
//
// Every check accumulates all violations it finds into an *Errors value
// instead of stopping at the first one.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code identifies the rule a violation broke.
type Code string

const (
	MissingFields         Code = "missing_fields"
	TitleTooShort         Code = "title_too_short"
	DescriptionTooShort   Code = "description_too_short"
	FuturePublicationDate Code = "future_publication_date"
	CategoryOverCapacity  Code = "category_over_capacity"
	EmptyName             Code = "empty_name"
	NumericName           Code = "numeric_name"
	NameTooShort          Code = "name_too_short"
	NameTooLong           Code = "name_too_long"
	NameContainsDigits    Code = "name_contains_digits"
	EmptyBiography        Code = "empty_biography"
	NumericBiography      Code = "numeric_biography"
	MissingDueDate        Code = "missing_due_date"
	DueDateNotAfterStart  Code = "due_date_not_after_start"
	ReturnedWithoutDates  Code = "returned_without_dates"
	LoanLimitExceeded     Code = "loan_limit_exceeded"
	InvalidDate           Code = "invalid_date"
)

// Field keys used in Errors. They match the wire names of the fields.
const (
	FieldMissing         = "missing_fields"
	FieldTitle           = "titulo"
	FieldDescription     = "descricao"
	FieldPublicationDate = "data_publicacao"
	FieldCategory        = "categoria"
	FieldName            = "nome"
	FieldBiography       = "biografia"
	FieldDueDate         = "data_prevista_devolucao"
	FieldReturned        = "devolvido"
	FieldBorrower        = "usuario"
	FieldBook            = "livro"
)

// ErrInvalid is matched by every *Errors value via errors.Is.
var ErrInvalid = errors.New("validation failed")

// Violation is one broken rule on one field.
type Violation struct {
	Code    Code
	Message string
}

// Errors maps field names to the violations found on them.
type Errors struct {
	fields map[string][]Violation
}

// NewErrors returns an empty collection.
func NewErrors() *Errors {
	return &Errors{fields: make(map[string][]Violation)}
}

// Add records a violation on field.
func (e *Errors) Add(field string, code Code, message string) {
	e.fields[field] = append(e.fields[field], Violation{Code: code, Message: message})
}

// Merge folds the violations of err into e. Errors that are not *Errors
// are ignored.
func (e *Errors) Merge(err error) {
	var other *Errors
	if !errors.As(err, &other) || other == e {
		return
	}
	for field, vs := range other.fields {
		e.fields[field] = append(e.fields[field], vs...)
	}
}

// Empty reports whether no violation was recorded.
func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

// Has reports whether any field carries a violation with the given code.
func (e *Errors) Has(code Code) bool {
	for _, vs := range e.fields {
		for _, v := range vs {
			if v.Code == code {
				return true
			}
		}
	}
	return false
}

// Fields returns the fields carrying violations, sorted.
func (e *Errors) Fields() []string {
	fields := make([]string, 0, len(e.fields))
	for field := range e.fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Field returns the violations recorded on field.
func (e *Errors) Field(field string) []Violation {
	return e.fields[field]
}

// Messages returns field -> human-readable messages.
func (e *Errors) Messages() map[string][]string {
	out := make(map[string][]string, len(e.fields))
	for field, vs := range e.fields {
		msgs := make([]string, len(vs))
		for i, v := range vs {
			msgs[i] = v.Message
		}
		out[field] = msgs
	}
	return out
}

// Err returns e as an error, or nil when it is empty.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	var parts []string
	for _, field := range e.Fields() {
		for _, v := range e.fields[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, v.Message))
		}
	}
	return fmt.Sprintf("%s: %s", ErrInvalid.Error(), strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrInvalid) true for any *Errors.
func (e *Errors) Is(target error) bool {
	return target == ErrInvalid
}
