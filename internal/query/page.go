package query

import "github.com/doug-martin/goqu/v9"

const (
	// DefaultPageSize is used when a listing does not ask for a size.
	DefaultPageSize = 50
	// MaxPageSize caps the page_size a client may ask for.
	MaxPageSize = 100
)

// Page selects a window of a listing. Numbers start at 1.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes client-supplied paging: non-positive numbers become 1,
// a non-positive size becomes defaultSize and sizes above MaxPageSize are
// capped.
func NewPage(number, size, defaultSize int) Page {
	if defaultSize <= 0 || defaultSize > MaxPageSize {
		defaultSize = DefaultPageSize
	}
	if number < 1 {
		number = 1
	}
	switch {
	case size <= 0:
		size = defaultSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of rows skipped before the page.
func (p Page) Offset() uint {
	if p.Number < 1 {
		return 0
	}
	return uint((p.Number - 1) * p.Size)
}

// Apply limits ds to the page window. A zero Page leaves ds unbounded.
func (p Page) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if p.Size <= 0 {
		return ds
	}
	return ds.Limit(uint(p.Size)).Offset(p.Offset())
}

// HasNext reports whether rows remain after this page given the total.
func (p Page) HasNext(total int) bool {
	return p.Size > 0 && int(p.Offset())+p.Size < total
}
