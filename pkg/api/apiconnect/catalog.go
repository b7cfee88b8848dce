package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/pkg/api"
)

const (
	BookServiceName     = "biblioteca.v1.BookService"
	CategoryServiceName = "biblioteca.v1.CategoryService"
	AuthorServiceName   = "biblioteca.v1.AuthorService"
)

const (
	BookServiceListBooksProcedure  = "/biblioteca.v1.BookService/ListBooks"
	BookServiceGetBookProcedure    = "/biblioteca.v1.BookService/GetBook"
	BookServiceCreateBookProcedure = "/biblioteca.v1.BookService/CreateBook"
	BookServiceUpdateBookProcedure = "/biblioteca.v1.BookService/UpdateBook"
	BookServiceDeleteBookProcedure = "/biblioteca.v1.BookService/DeleteBook"

	CategoryServiceListCategoriesProcedure = "/biblioteca.v1.CategoryService/ListCategories"
	CategoryServiceGetCategoryProcedure    = "/biblioteca.v1.CategoryService/GetCategory"
	CategoryServiceCreateCategoryProcedure = "/biblioteca.v1.CategoryService/CreateCategory"
	CategoryServiceUpdateCategoryProcedure = "/biblioteca.v1.CategoryService/UpdateCategory"
	CategoryServiceDeleteCategoryProcedure = "/biblioteca.v1.CategoryService/DeleteCategory"

	AuthorServiceListAuthorsProcedure  = "/biblioteca.v1.AuthorService/ListAuthors"
	AuthorServiceGetAuthorProcedure    = "/biblioteca.v1.AuthorService/GetAuthor"
	AuthorServiceCreateAuthorProcedure = "/biblioteca.v1.AuthorService/CreateAuthor"
	AuthorServiceUpdateAuthorProcedure = "/biblioteca.v1.AuthorService/UpdateAuthor"
	AuthorServiceDeleteAuthorProcedure = "/biblioteca.v1.AuthorService/DeleteAuthor"
)

// BookServiceHandler is implemented by the book service.
type BookServiceHandler interface {
	ListBooks(context.Context, *connect.Request[api.ListBooksRequest]) (*connect.Response[api.ListBooksResponse], error)
	GetBook(context.Context, *connect.Request[api.GetBookRequest]) (*connect.Response[api.BookResponse], error)
	CreateBook(context.Context, *connect.Request[api.CreateBookRequest]) (*connect.Response[api.BookResponse], error)
	UpdateBook(context.Context, *connect.Request[api.UpdateBookRequest]) (*connect.Response[api.BookResponse], error)
	DeleteBook(context.Context, *connect.Request[api.DeleteBookRequest]) (*connect.Response[api.Empty], error)
}

// NewBookServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBookServiceHandler(svc BookServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(BookServiceName), procedureMux{
		BookServiceListBooksProcedure:  connect.NewUnaryHandler(BookServiceListBooksProcedure, svc.ListBooks, opts...),
		BookServiceGetBookProcedure:    connect.NewUnaryHandler(BookServiceGetBookProcedure, svc.GetBook, opts...),
		BookServiceCreateBookProcedure: connect.NewUnaryHandler(BookServiceCreateBookProcedure, svc.CreateBook, opts...),
		BookServiceUpdateBookProcedure: connect.NewUnaryHandler(BookServiceUpdateBookProcedure, svc.UpdateBook, opts...),
		BookServiceDeleteBookProcedure: connect.NewUnaryHandler(BookServiceDeleteBookProcedure, svc.DeleteBook, opts...),
	}
}

// BookServiceClient is a client for the biblioteca.v1.BookService service.
type BookServiceClient struct {
	listBooks  *connect.Client[api.ListBooksRequest, api.ListBooksResponse]
	getBook    *connect.Client[api.GetBookRequest, api.BookResponse]
	createBook *connect.Client[api.CreateBookRequest, api.BookResponse]
	updateBook *connect.Client[api.UpdateBookRequest, api.BookResponse]
	deleteBook *connect.Client[api.DeleteBookRequest, api.Empty]
}

// NewBookServiceClient constructs a client for the biblioteca.v1.BookService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewBookServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BookServiceClient {
	opts = clientOptions(opts)
	return &BookServiceClient{
		listBooks:  connect.NewClient[api.ListBooksRequest, api.ListBooksResponse](httpClient, procedureURL(baseURL, BookServiceListBooksProcedure), opts...),
		getBook:    connect.NewClient[api.GetBookRequest, api.BookResponse](httpClient, procedureURL(baseURL, BookServiceGetBookProcedure), opts...),
		createBook: connect.NewClient[api.CreateBookRequest, api.BookResponse](httpClient, procedureURL(baseURL, BookServiceCreateBookProcedure), opts...),
		updateBook: connect.NewClient[api.UpdateBookRequest, api.BookResponse](httpClient, procedureURL(baseURL, BookServiceUpdateBookProcedure), opts...),
		deleteBook: connect.NewClient[api.DeleteBookRequest, api.Empty](httpClient, procedureURL(baseURL, BookServiceDeleteBookProcedure), opts...),
	}
}

func (c *BookServiceClient) ListBooks(ctx context.Context, req *connect.Request[api.ListBooksRequest]) (*connect.Response[api.ListBooksResponse], error) {
	return c.listBooks.CallUnary(ctx, req)
}

func (c *BookServiceClient) GetBook(ctx context.Context, req *connect.Request[api.GetBookRequest]) (*connect.Response[api.BookResponse], error) {
	return c.getBook.CallUnary(ctx, req)
}

func (c *BookServiceClient) CreateBook(ctx context.Context, req *connect.Request[api.CreateBookRequest]) (*connect.Response[api.BookResponse], error) {
	return c.createBook.CallUnary(ctx, req)
}

func (c *BookServiceClient) UpdateBook(ctx context.Context, req *connect.Request[api.UpdateBookRequest]) (*connect.Response[api.BookResponse], error) {
	return c.updateBook.CallUnary(ctx, req)
}

func (c *BookServiceClient) DeleteBook(ctx context.Context, req *connect.Request[api.DeleteBookRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteBook.CallUnary(ctx, req)
}

// CategoryServiceHandler is implemented by the category service.
type CategoryServiceHandler interface {
	ListCategories(context.Context, *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error)
	GetCategory(context.Context, *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.CategoryResponse], error)
	CreateCategory(context.Context, *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CategoryResponse], error)
	UpdateCategory(context.Context, *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.CategoryResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.Empty], error)
}

// NewCategoryServiceHandler builds an HTTP handler from the service implementation.
func NewCategoryServiceHandler(svc CategoryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(CategoryServiceName), procedureMux{
		CategoryServiceListCategoriesProcedure: connect.NewUnaryHandler(CategoryServiceListCategoriesProcedure, svc.ListCategories, opts...),
		CategoryServiceGetCategoryProcedure:    connect.NewUnaryHandler(CategoryServiceGetCategoryProcedure, svc.GetCategory, opts...),
		CategoryServiceCreateCategoryProcedure: connect.NewUnaryHandler(CategoryServiceCreateCategoryProcedure, svc.CreateCategory, opts...),
		CategoryServiceUpdateCategoryProcedure: connect.NewUnaryHandler(CategoryServiceUpdateCategoryProcedure, svc.UpdateCategory, opts...),
		CategoryServiceDeleteCategoryProcedure: connect.NewUnaryHandler(CategoryServiceDeleteCategoryProcedure, svc.DeleteCategory, opts...),
	}
}

// CategoryServiceClient is a client for the biblioteca.v1.CategoryService service.
type CategoryServiceClient struct {
	listCategories *connect.Client[api.ListCategoriesRequest, api.ListCategoriesResponse]
	getCategory    *connect.Client[api.GetCategoryRequest, api.CategoryResponse]
	createCategory *connect.Client[api.CreateCategoryRequest, api.CategoryResponse]
	updateCategory *connect.Client[api.UpdateCategoryRequest, api.CategoryResponse]
	deleteCategory *connect.Client[api.DeleteCategoryRequest, api.Empty]
}

// NewCategoryServiceClient constructs a client for the biblioteca.v1.CategoryService service.
func NewCategoryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CategoryServiceClient {
	opts = clientOptions(opts)
	return &CategoryServiceClient{
		listCategories: connect.NewClient[api.ListCategoriesRequest, api.ListCategoriesResponse](httpClient, procedureURL(baseURL, CategoryServiceListCategoriesProcedure), opts...),
		getCategory:    connect.NewClient[api.GetCategoryRequest, api.CategoryResponse](httpClient, procedureURL(baseURL, CategoryServiceGetCategoryProcedure), opts...),
		createCategory: connect.NewClient[api.CreateCategoryRequest, api.CategoryResponse](httpClient, procedureURL(baseURL, CategoryServiceCreateCategoryProcedure), opts...),
		updateCategory: connect.NewClient[api.UpdateCategoryRequest, api.CategoryResponse](httpClient, procedureURL(baseURL, CategoryServiceUpdateCategoryProcedure), opts...),
		deleteCategory: connect.NewClient[api.DeleteCategoryRequest, api.Empty](httpClient, procedureURL(baseURL, CategoryServiceDeleteCategoryProcedure), opts...),
	}
}

func (c *CategoryServiceClient) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	return c.listCategories.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) GetCategory(ctx context.Context, req *connect.Request[api.GetCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	return c.getCategory.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) CreateCategory(ctx context.Context, req *connect.Request[api.CreateCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	return c.createCategory.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) UpdateCategory(ctx context.Context, req *connect.Request[api.UpdateCategoryRequest]) (*connect.Response[api.CategoryResponse], error) {
	return c.updateCategory.CallUnary(ctx, req)
}

func (c *CategoryServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}

// AuthorServiceHandler is implemented by the author service.
type AuthorServiceHandler interface {
	ListAuthors(context.Context, *connect.Request[api.ListAuthorsRequest]) (*connect.Response[api.ListAuthorsResponse], error)
	GetAuthor(context.Context, *connect.Request[api.GetAuthorRequest]) (*connect.Response[api.AuthorResponse], error)
	CreateAuthor(context.Context, *connect.Request[api.CreateAuthorRequest]) (*connect.Response[api.AuthorResponse], error)
	UpdateAuthor(context.Context, *connect.Request[api.UpdateAuthorRequest]) (*connect.Response[api.AuthorResponse], error)
	DeleteAuthor(context.Context, *connect.Request[api.DeleteAuthorRequest]) (*connect.Response[api.Empty], error)
}

// NewAuthorServiceHandler builds an HTTP handler from the service implementation.
func NewAuthorServiceHandler(svc AuthorServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(AuthorServiceName), procedureMux{
		AuthorServiceListAuthorsProcedure:  connect.NewUnaryHandler(AuthorServiceListAuthorsProcedure, svc.ListAuthors, opts...),
		AuthorServiceGetAuthorProcedure:    connect.NewUnaryHandler(AuthorServiceGetAuthorProcedure, svc.GetAuthor, opts...),
		AuthorServiceCreateAuthorProcedure: connect.NewUnaryHandler(AuthorServiceCreateAuthorProcedure, svc.CreateAuthor, opts...),
		AuthorServiceUpdateAuthorProcedure: connect.NewUnaryHandler(AuthorServiceUpdateAuthorProcedure, svc.UpdateAuthor, opts...),
		AuthorServiceDeleteAuthorProcedure: connect.NewUnaryHandler(AuthorServiceDeleteAuthorProcedure, svc.DeleteAuthor, opts...),
	}
}

// AuthorServiceClient is a client for the biblioteca.v1.AuthorService service.
type AuthorServiceClient struct {
	listAuthors  *connect.Client[api.ListAuthorsRequest, api.ListAuthorsResponse]
	getAuthor    *connect.Client[api.GetAuthorRequest, api.AuthorResponse]
	createAuthor *connect.Client[api.CreateAuthorRequest, api.AuthorResponse]
	updateAuthor *connect.Client[api.UpdateAuthorRequest, api.AuthorResponse]
	deleteAuthor *connect.Client[api.DeleteAuthorRequest, api.Empty]
}

// NewAuthorServiceClient constructs a client for the biblioteca.v1.AuthorService service.
func NewAuthorServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthorServiceClient {
	opts = clientOptions(opts)
	return &AuthorServiceClient{
		listAuthors:  connect.NewClient[api.ListAuthorsRequest, api.ListAuthorsResponse](httpClient, procedureURL(baseURL, AuthorServiceListAuthorsProcedure), opts...),
		getAuthor:    connect.NewClient[api.GetAuthorRequest, api.AuthorResponse](httpClient, procedureURL(baseURL, AuthorServiceGetAuthorProcedure), opts...),
		createAuthor: connect.NewClient[api.CreateAuthorRequest, api.AuthorResponse](httpClient, procedureURL(baseURL, AuthorServiceCreateAuthorProcedure), opts...),
		updateAuthor: connect.NewClient[api.UpdateAuthorRequest, api.AuthorResponse](httpClient, procedureURL(baseURL, AuthorServiceUpdateAuthorProcedure), opts...),
		deleteAuthor: connect.NewClient[api.DeleteAuthorRequest, api.Empty](httpClient, procedureURL(baseURL, AuthorServiceDeleteAuthorProcedure), opts...),
	}
}

func (c *AuthorServiceClient) ListAuthors(ctx context.Context, req *connect.Request[api.ListAuthorsRequest]) (*connect.Response[api.ListAuthorsResponse], error) {
	return c.listAuthors.CallUnary(ctx, req)
}

func (c *AuthorServiceClient) GetAuthor(ctx context.Context, req *connect.Request[api.GetAuthorRequest]) (*connect.Response[api.AuthorResponse], error) {
	return c.getAuthor.CallUnary(ctx, req)
}

func (c *AuthorServiceClient) CreateAuthor(ctx context.Context, req *connect.Request[api.CreateAuthorRequest]) (*connect.Response[api.AuthorResponse], error) {
	return c.createAuthor.CallUnary(ctx, req)
}

func (c *AuthorServiceClient) UpdateAuthor(ctx context.Context, req *connect.Request[api.UpdateAuthorRequest]) (*connect.Response[api.AuthorResponse], error) {
	return c.updateAuthor.CallUnary(ctx, req)
}

func (c *AuthorServiceClient) DeleteAuthor(ctx context.Context, req *connect.Request[api.DeleteAuthorRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteAuthor.CallUnary(ctx, req)
}
