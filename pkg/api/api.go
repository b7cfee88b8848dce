// Package api defines the request and response messages of the
// biblioteca.v1 services. Field names on the wire are the Portuguese names
// used by the catalog's clients.
package api

// Book is a catalog entry as returned to clients.
type Book struct {
	ID              int64   `json:"id"`
	Title           string  `json:"titulo"`
	Description     *string `json:"descricao"`
	PublicationDate *string `json:"data_publicacao"`
	CategoryID      *int64  `json:"categoria_id"`
	AuthorID        *int64  `json:"autor_id"`
	CategoryName    *string `json:"categoria_nome"`
	AuthorName      *string `json:"autor_nome"`
	Creator         string  `json:"criador"`
	CreatorName     string  `json:"criador_nome"`
}

// BookFields are the writable fields of a book. Omitted or null fields are
// left unchanged on update.
type BookFields struct {
	Title           *string `json:"titulo,omitempty"`
	Description     *string `json:"descricao,omitempty"`
	PublicationDate *string `json:"data_publicacao,omitempty"`
	CategoryID      *int64  `json:"categoria_id,omitempty"`
	AuthorID        *int64  `json:"autor_id,omitempty"`
}

type ListBooksRequest struct {
	Title    string `json:"titulo,omitempty"`
	Category string `json:"categoria,omitempty"`
	Author   string `json:"autor,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

type ListBooksResponse struct {
	Count   int     `json:"count"`
	HasNext bool    `json:"has_next"`
	Results []*Book `json:"results"`
}

type GetBookRequest struct {
	ID int64 `json:"id"`
}

type CreateBookRequest struct {
	BookFields
}

type UpdateBookRequest struct {
	ID int64 `json:"id"`
	BookFields
}

type DeleteBookRequest struct {
	ID int64 `json:"id"`
}

type BookResponse struct {
	Book *Book `json:"livro"`
}

// Category groups books.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type CategoryFields struct {
	Name *string `json:"nome,omitempty"`
}

type ListCategoriesRequest struct {
	Name     string `json:"nome,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

type ListCategoriesResponse struct {
	Count   int         `json:"count"`
	HasNext bool        `json:"has_next"`
	Results []*Category `json:"results"`
}

type GetCategoryRequest struct {
	ID int64 `json:"id"`
}

type CreateCategoryRequest struct {
	CategoryFields
}

type UpdateCategoryRequest struct {
	ID int64 `json:"id"`
	CategoryFields
}

type DeleteCategoryRequest struct {
	ID int64 `json:"id"`
}

type CategoryResponse struct {
	Category *Category `json:"categoria"`
}

// Author writes books.
type Author struct {
	ID        int64  `json:"id"`
	Name      string `json:"nome"`
	Biography string `json:"biografia"`
}

type AuthorFields struct {
	Name      *string `json:"nome,omitempty"`
	Biography *string `json:"biografia,omitempty"`
}

type ListAuthorsRequest struct {
	Name     string `json:"nome,omitempty"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
}

type ListAuthorsResponse struct {
	Count   int       `json:"count"`
	HasNext bool      `json:"has_next"`
	Results []*Author `json:"results"`
}

type GetAuthorRequest struct {
	ID int64 `json:"id"`
}

type CreateAuthorRequest struct {
	AuthorFields
}

type UpdateAuthorRequest struct {
	ID int64 `json:"id"`
	AuthorFields
}

type DeleteAuthorRequest struct {
	ID int64 `json:"id"`
}

type AuthorResponse struct {
	Author *Author `json:"autor"`
}

// Loan is a book lent to a user. Dates are "YYYY-MM-DD".
type Loan struct {
	ID         int64  `json:"id"`
	BookID     int64  `json:"livro_id"`
	BorrowerID string `json:"usuario_id"`
	StartDate  string `json:"data_inicio"`
	DueDate    string `json:"data_prevista_devolucao"`
	Returned   bool   `json:"devolvido"`
}

type ListLoansRequest struct {
	BorrowerID string `json:"usuario_id,omitempty"`
	BookID     *int64 `json:"livro_id,omitempty"`
	Returned   *bool  `json:"devolvido,omitempty"`
	Page       int    `json:"page,omitempty"`
	PageSize   int    `json:"page_size,omitempty"`
}

type ListLoansResponse struct {
	Count   int     `json:"count"`
	HasNext bool    `json:"has_next"`
	Results []*Loan `json:"results"`
}

type GetLoanRequest struct {
	ID int64 `json:"id"`
}

// CreateLoanRequest opens a loan. StartDate is accepted for compatibility
// and ignored: the server assigns it.
type CreateLoanRequest struct {
	BookID     *int64  `json:"livro_id,omitempty"`
	BorrowerID *string `json:"usuario_id,omitempty"`
	StartDate  *string `json:"data_inicio,omitempty"`
	DueDate    *string `json:"data_prevista_devolucao,omitempty"`
}

type UpdateLoanRequest struct {
	ID       int64   `json:"id"`
	DueDate  *string `json:"data_prevista_devolucao,omitempty"`
	Returned *bool   `json:"devolvido,omitempty"`
}

type DeleteLoanRequest struct {
	ID int64 `json:"id"`
}

type LoanResponse struct {
	Loan *Loan `json:"emprestimo"`
}

// User is an account as shown to clients. The password hash never leaves
// the server.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Staff       bool   `json:"is_staff"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type GetCurrentUserRequest struct{}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

type VerifyTokenResponse struct {
	Valid bool `json:"valid"`
}

type CreateSuperuserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

type GetAccountRequest struct {
	ID string `json:"id"`
}

type UpdateAccountRequest struct {
	ID          string  `json:"id"`
	DisplayName *string `json:"display_name,omitempty"`
	Password    *string `json:"password,omitempty"`
}

type UserResponse struct {
	User *User `json:"user"`
}

// Empty is the response of operations that return nothing.
type Empty struct{}
