package models

// MaxBooksPerCategory is the number of books a single category may hold.
const MaxBooksPerCategory = 100

// Category groups books on a shelf.
type Category struct {
	// ID is assigned by the store on creation.
	ID int64 `db:"id"`

	// Name is 3 to 50 characters and never purely numeric.
	Name string `db:"name"`
}

// Author is a writer referenced by books.
type Author struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Biography string `db:"biography"`
}

// Book is a catalog entry.
type Book struct {
	// ID is assigned by the store on creation. Higher IDs are newer books.
	ID int64

	// Title is unique across all books (case-sensitive).
	Title string

	// Description is optional in storage but required by validation.
	Description *string

	// PublicationDate is optional in storage but required by validation.
	PublicationDate *Date

	// CategoryID links the book to a Category, if any.
	CategoryID *int64

	// AuthorID links the book to an Author, if any.
	AuthorID *int64

	// CreatorID is the user who created the book. It never changes.
	CreatorID string
}

// BookView is a Book annotated with the names of its related records,
// as returned by listings.
type BookView struct {
	Book

	CategoryName *string
	AuthorName   *string
	CreatorLabel string
}
