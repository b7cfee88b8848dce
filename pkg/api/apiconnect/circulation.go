package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/pkg/api"
)

const (
	LoanServiceName    = "biblioteca.v1.LoanService"
	AuthServiceName    = "biblioteca.v1.AuthService"
	AccountServiceName = "biblioteca.v1.AccountService"
)

const (
	LoanServiceListLoansProcedure  = "/biblioteca.v1.LoanService/ListLoans"
	LoanServiceGetLoanProcedure    = "/biblioteca.v1.LoanService/GetLoan"
	LoanServiceCreateLoanProcedure = "/biblioteca.v1.LoanService/CreateLoan"
	LoanServiceUpdateLoanProcedure = "/biblioteca.v1.LoanService/UpdateLoan"
	LoanServiceDeleteLoanProcedure = "/biblioteca.v1.LoanService/DeleteLoan"

	AuthServiceRegisterProcedure       = "/biblioteca.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/biblioteca.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/biblioteca.v1.AuthService/GetCurrentUser"
	AuthServiceVerifyTokenProcedure    = "/biblioteca.v1.AuthService/VerifyToken"

	AccountServiceCreateSuperuserProcedure = "/biblioteca.v1.AccountService/CreateSuperuser"
	AccountServiceGetAccountProcedure      = "/biblioteca.v1.AccountService/GetAccount"
	AccountServiceUpdateAccountProcedure   = "/biblioteca.v1.AccountService/UpdateAccount"
)

// LoanServiceHandler is implemented by the loan service.
type LoanServiceHandler interface {
	ListLoans(context.Context, *connect.Request[api.ListLoansRequest]) (*connect.Response[api.ListLoansResponse], error)
	GetLoan(context.Context, *connect.Request[api.GetLoanRequest]) (*connect.Response[api.LoanResponse], error)
	CreateLoan(context.Context, *connect.Request[api.CreateLoanRequest]) (*connect.Response[api.LoanResponse], error)
	UpdateLoan(context.Context, *connect.Request[api.UpdateLoanRequest]) (*connect.Response[api.LoanResponse], error)
	DeleteLoan(context.Context, *connect.Request[api.DeleteLoanRequest]) (*connect.Response[api.Empty], error)
}

// NewLoanServiceHandler builds an HTTP handler from the service implementation.
func NewLoanServiceHandler(svc LoanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(LoanServiceName), procedureMux{
		LoanServiceListLoansProcedure:  connect.NewUnaryHandler(LoanServiceListLoansProcedure, svc.ListLoans, opts...),
		LoanServiceGetLoanProcedure:    connect.NewUnaryHandler(LoanServiceGetLoanProcedure, svc.GetLoan, opts...),
		LoanServiceCreateLoanProcedure: connect.NewUnaryHandler(LoanServiceCreateLoanProcedure, svc.CreateLoan, opts...),
		LoanServiceUpdateLoanProcedure: connect.NewUnaryHandler(LoanServiceUpdateLoanProcedure, svc.UpdateLoan, opts...),
		LoanServiceDeleteLoanProcedure: connect.NewUnaryHandler(LoanServiceDeleteLoanProcedure, svc.DeleteLoan, opts...),
	}
}

// LoanServiceClient is a client for the biblioteca.v1.LoanService service.
type LoanServiceClient struct {
	listLoans  *connect.Client[api.ListLoansRequest, api.ListLoansResponse]
	getLoan    *connect.Client[api.GetLoanRequest, api.LoanResponse]
	createLoan *connect.Client[api.CreateLoanRequest, api.LoanResponse]
	updateLoan *connect.Client[api.UpdateLoanRequest, api.LoanResponse]
	deleteLoan *connect.Client[api.DeleteLoanRequest, api.Empty]
}

// NewLoanServiceClient constructs a client for the biblioteca.v1.LoanService service.
func NewLoanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LoanServiceClient {
	opts = clientOptions(opts)
	return &LoanServiceClient{
		listLoans:  connect.NewClient[api.ListLoansRequest, api.ListLoansResponse](httpClient, procedureURL(baseURL, LoanServiceListLoansProcedure), opts...),
		getLoan:    connect.NewClient[api.GetLoanRequest, api.LoanResponse](httpClient, procedureURL(baseURL, LoanServiceGetLoanProcedure), opts...),
		createLoan: connect.NewClient[api.CreateLoanRequest, api.LoanResponse](httpClient, procedureURL(baseURL, LoanServiceCreateLoanProcedure), opts...),
		updateLoan: connect.NewClient[api.UpdateLoanRequest, api.LoanResponse](httpClient, procedureURL(baseURL, LoanServiceUpdateLoanProcedure), opts...),
		deleteLoan: connect.NewClient[api.DeleteLoanRequest, api.Empty](httpClient, procedureURL(baseURL, LoanServiceDeleteLoanProcedure), opts...),
	}
}

func (c *LoanServiceClient) ListLoans(ctx context.Context, req *connect.Request[api.ListLoansRequest]) (*connect.Response[api.ListLoansResponse], error) {
	return c.listLoans.CallUnary(ctx, req)
}

func (c *LoanServiceClient) GetLoan(ctx context.Context, req *connect.Request[api.GetLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	return c.getLoan.CallUnary(ctx, req)
}

func (c *LoanServiceClient) CreateLoan(ctx context.Context, req *connect.Request[api.CreateLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	return c.createLoan.CallUnary(ctx, req)
}

func (c *LoanServiceClient) UpdateLoan(ctx context.Context, req *connect.Request[api.UpdateLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	return c.updateLoan.CallUnary(ctx, req)
}

func (c *LoanServiceClient) DeleteLoan(ctx context.Context, req *connect.Request[api.DeleteLoanRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteLoan.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the authentication service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error)
	VerifyToken(context.Context, *connect.Request[api.VerifyTokenRequest]) (*connect.Response[api.VerifyTokenResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(AuthServiceName), procedureMux{
		AuthServiceRegisterProcedure:       connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:          connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceGetCurrentUserProcedure: connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...),
		AuthServiceVerifyTokenProcedure:    connect.NewUnaryHandler(AuthServiceVerifyTokenProcedure, svc.VerifyToken, opts...),
	}
}

// AuthServiceClient is a client for the biblioteca.v1.AuthService service.
type AuthServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.AuthResponse]
	login          *connect.Client[api.LoginRequest, api.AuthResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.UserResponse]
	verifyToken    *connect.Client[api.VerifyTokenRequest, api.VerifyTokenResponse]
}

// NewAuthServiceClient constructs a client for the biblioteca.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:       connect.NewClient[api.RegisterRequest, api.AuthResponse](httpClient, procedureURL(baseURL, AuthServiceRegisterProcedure), opts...),
		login:          connect.NewClient[api.LoginRequest, api.AuthResponse](httpClient, procedureURL(baseURL, AuthServiceLoginProcedure), opts...),
		getCurrentUser: connect.NewClient[api.GetCurrentUserRequest, api.UserResponse](httpClient, procedureURL(baseURL, AuthServiceGetCurrentUserProcedure), opts...),
		verifyToken:    connect.NewClient[api.VerifyTokenRequest, api.VerifyTokenResponse](httpClient, procedureURL(baseURL, AuthServiceVerifyTokenProcedure), opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) VerifyToken(ctx context.Context, req *connect.Request[api.VerifyTokenRequest]) (*connect.Response[api.VerifyTokenResponse], error) {
	return c.verifyToken.CallUnary(ctx, req)
}

// AccountServiceHandler is implemented by the staff account service.
type AccountServiceHandler interface {
	CreateSuperuser(context.Context, *connect.Request[api.CreateSuperuserRequest]) (*connect.Response[api.UserResponse], error)
	GetAccount(context.Context, *connect.Request[api.GetAccountRequest]) (*connect.Response[api.UserResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UserResponse], error)
}

// NewAccountServiceHandler builds an HTTP handler from the service implementation.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return servicePath(AccountServiceName), procedureMux{
		AccountServiceCreateSuperuserProcedure: connect.NewUnaryHandler(AccountServiceCreateSuperuserProcedure, svc.CreateSuperuser, opts...),
		AccountServiceGetAccountProcedure:      connect.NewUnaryHandler(AccountServiceGetAccountProcedure, svc.GetAccount, opts...),
		AccountServiceUpdateAccountProcedure:   connect.NewUnaryHandler(AccountServiceUpdateAccountProcedure, svc.UpdateAccount, opts...),
	}
}

// AccountServiceClient is a client for the biblioteca.v1.AccountService service.
type AccountServiceClient struct {
	createSuperuser *connect.Client[api.CreateSuperuserRequest, api.UserResponse]
	getAccount      *connect.Client[api.GetAccountRequest, api.UserResponse]
	updateAccount   *connect.Client[api.UpdateAccountRequest, api.UserResponse]
}

// NewAccountServiceClient constructs a client for the biblioteca.v1.AccountService service.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AccountServiceClient {
	opts = clientOptions(opts)
	return &AccountServiceClient{
		createSuperuser: connect.NewClient[api.CreateSuperuserRequest, api.UserResponse](httpClient, procedureURL(baseURL, AccountServiceCreateSuperuserProcedure), opts...),
		getAccount:      connect.NewClient[api.GetAccountRequest, api.UserResponse](httpClient, procedureURL(baseURL, AccountServiceGetAccountProcedure), opts...),
		updateAccount:   connect.NewClient[api.UpdateAccountRequest, api.UserResponse](httpClient, procedureURL(baseURL, AccountServiceUpdateAccountProcedure), opts...),
	}
}

func (c *AccountServiceClient) CreateSuperuser(ctx context.Context, req *connect.Request[api.CreateSuperuserRequest]) (*connect.Response[api.UserResponse], error) {
	return c.createSuperuser.CallUnary(ctx, req)
}

func (c *AccountServiceClient) GetAccount(ctx context.Context, req *connect.Request[api.GetAccountRequest]) (*connect.Response[api.UserResponse], error) {
	return c.getAccount.CallUnary(ctx, req)
}

func (c *AccountServiceClient) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UserResponse], error) {
	return c.updateAccount.CallUnary(ctx, req)
}
