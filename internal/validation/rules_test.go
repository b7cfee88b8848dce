package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblioteca/internal/models"
)

var today = models.NewDate(2024, time.June, 15)

func str(s string) *string { return &s }
func i64(n int64) *int64   { return &n }
func intp(n int) *int      { return &n }

func codes(t *testing.T, err error) []Code {
	t.Helper()
	if err == nil {
		return nil
	}
	var verr *Errors
	require.True(t, errors.As(err, &verr), "expected *Errors, got %T", err)
	var out []Code
	for _, vs := range verr.fields {
		for _, v := range vs {
			out = append(out, v.Code)
		}
	}
	return out
}

func validBook() BookFields {
	return BookFields{
		Title:           str("A Brief History"),
		Description:     str("A detailed twenty-plus char description."),
		PublicationDate: models.NewDate(2020, time.January, 1).Ptr(),
	}
}

func TestValidateBook(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BookFields)
		want   []Code
	}{
		{
			name:   "valid book",
			mutate: func(*BookFields) {},
		},
		{
			name:   "missing title",
			mutate: func(f *BookFields) { f.Title = nil },
			want:   []Code{MissingFields},
		},
		{
			name:   "missing description and date",
			mutate: func(f *BookFields) { f.Description = nil; f.PublicationDate = nil },
			want:   []Code{MissingFields},
		},
		{
			name:   "short title",
			mutate: func(f *BookFields) { f.Title = str("Dune") },
			want:   []Code{TitleTooShort},
		},
		{
			name:   "title of exactly five runes",
			mutate: func(f *BookFields) { f.Title = str("Emmaã") },
		},
		{
			name:   "short description",
			mutate: func(f *BookFields) { f.Description = str("too short") },
			want:   []Code{DescriptionTooShort},
		},
		{
			name:   "publication date today is allowed",
			mutate: func(f *BookFields) { f.PublicationDate = today.Ptr() },
		},
		{
			name:   "future publication date",
			mutate: func(f *BookFields) { f.PublicationDate = today.AddDays(1).Ptr() },
			want:   []Code{FuturePublicationDate},
		},
		{
			name: "category with room",
			mutate: func(f *BookFields) {
				f.CategoryID = i64(1)
				f.CategoryBooks = models.MaxBooksPerCategory - 1
			},
		},
		{
			name: "category at capacity",
			mutate: func(f *BookFields) {
				f.CategoryID = i64(1)
				f.CategoryBooks = models.MaxBooksPerCategory
			},
			want: []Code{CategoryOverCapacity},
		},
		{
			name: "count ignored without category",
			mutate: func(f *BookFields) {
				f.CategoryBooks = models.MaxBooksPerCategory
			},
		},
		{
			name: "violations accumulate",
			mutate: func(f *BookFields) {
				f.Title = str("abc")
				f.Description = str("short")
				f.PublicationDate = today.AddDays(30).Ptr()
			},
			want: []Code{TitleTooShort, DescriptionTooShort, FuturePublicationDate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validBook()
			tt.mutate(&f)
			err := ValidateBook(f, today)
			assert.ElementsMatch(t, tt.want, codes(t, err))
			if len(tt.want) > 0 {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestValidateCategory(t *testing.T) {
	tests := []struct {
		name   string
		fields CategoryFields
		want   []Code
	}{
		{"valid", CategoryFields{Name: "Ficção"}, nil},
		{"empty", CategoryFields{Name: ""}, []Code{EmptyName}},
		{"blank", CategoryFields{Name: "   "}, []Code{EmptyName}},
		{"numeric", CategoryFields{Name: "12345"}, []Code{NumericName}},
		{"numeric and short", CategoryFields{Name: "12"}, []Code{NumericName, NameTooShort}},
		{"too short", CategoryFields{Name: "ab"}, []Code{NameTooShort}},
		{"exactly fifty", CategoryFields{Name: strings.Repeat("a", 50)}, nil},
		{"too long", CategoryFields{Name: strings.Repeat("a", 51)}, []Code{NameTooLong}},
		{"at capacity", CategoryFields{Name: "Poesia", BookCount: 100}, nil},
		{"over capacity", CategoryFields{Name: "Poesia", BookCount: 101}, []Code{CategoryOverCapacity}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, codes(t, ValidateCategory(tt.fields)))
		})
	}
}

func TestValidateAuthor(t *testing.T) {
	tests := []struct {
		name   string
		fields AuthorFields
		want   []Code
	}{
		{"valid", AuthorFields{Name: "Machado de Assis", Biography: "Escritor brasileiro."}, nil},
		{"numeric name", AuthorFields{Name: "1984", Biography: "bio"}, []Code{NumericName, NameContainsDigits}},
		{"name with digit", AuthorFields{Name: "Agent 47", Biography: "bio"}, []Code{NameContainsDigits}},
		{"empty name", AuthorFields{Name: "  ", Biography: "bio"}, []Code{EmptyName}},
		{"numeric biography", AuthorFields{Name: "Clarice", Biography: " 2024 "}, []Code{NumericBiography}},
		{"empty biography", AuthorFields{Name: "Clarice", Biography: ""}, []Code{EmptyBiography}},
		{"everything wrong", AuthorFields{Name: "", Biography: ""}, []Code{EmptyName, EmptyBiography}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, codes(t, ValidateAuthor(tt.fields)))
		})
	}
}

func TestValidateLoan(t *testing.T) {
	start := today
	tests := []struct {
		name   string
		fields LoanFields
		want   []Code
	}{
		{"valid", LoanFields{StartDate: start.Ptr(), DueDate: start.AddDays(7).Ptr()}, nil},
		{"missing due date", LoanFields{StartDate: start.Ptr()}, []Code{MissingDueDate}},
		{"due equals start", LoanFields{StartDate: start.Ptr(), DueDate: start.Ptr()}, []Code{DueDateNotAfterStart}},
		{"due before start", LoanFields{StartDate: start.Ptr(), DueDate: start.AddDays(-1).Ptr()}, []Code{DueDateNotAfterStart}},
		{"due without start", LoanFields{DueDate: start.Ptr()}, nil},
		{
			"returned without start",
			LoanFields{DueDate: start.Ptr(), Returned: true},
			[]Code{ReturnedWithoutDates},
		},
		{
			"returned with both dates",
			LoanFields{StartDate: start.Ptr(), DueDate: start.AddDays(1).Ptr(), Returned: true},
			nil,
		},
		{
			"limit reached on creation",
			LoanFields{StartDate: start.Ptr(), DueDate: start.AddDays(1).Ptr(), ActiveLoans: intp(5)},
			[]Code{LoanLimitExceeded},
		},
		{
			"below limit on creation",
			LoanFields{StartDate: start.Ptr(), DueDate: start.AddDays(1).Ptr(), ActiveLoans: intp(4)},
			nil,
		},
		{
			"limit not checked without count",
			LoanFields{StartDate: start.Ptr(), DueDate: start.AddDays(1).Ptr(), Returned: true},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, codes(t, ValidateLoan(tt.fields)))
		})
	}
}

func TestParseDate(t *testing.T) {
	errs := NewErrors()

	assert.Nil(t, ParseDate(errs, FieldDueDate, nil))
	assert.True(t, errs.Empty())

	d := ParseDate(errs, FieldDueDate, str("2024-07-01"))
	require.NotNil(t, d)
	assert.Equal(t, "2024-07-01", d.String())

	assert.Nil(t, ParseDate(errs, FieldDueDate, str("01/07/2024")))
	assert.True(t, errs.Has(InvalidDate))
	assert.Len(t, errs.Field(FieldDueDate), 1)
}

func TestErrorsMergeAndMessages(t *testing.T) {
	errs := NewErrors()
	errs.Add(FieldTitle, TitleTooShort, "curto")
	errs.Merge(ValidateAuthor(AuthorFields{Name: "", Biography: "ok"}))
	errs.Merge(errors.New("not a validation error"))

	msgs := errs.Messages()
	assert.Equal(t, []string{"curto"}, msgs[FieldTitle])
	assert.Len(t, msgs[FieldName], 1)
	assert.Contains(t, errs.Error(), "titulo: curto")
	assert.Nil(t, NewErrors().Err())
}
