package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/middleware"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/pkg/api"
	"github.com/mmynk/biblioteca/pkg/api/apiconnect"
)

// LoanService implements the Connect LoanService.
type LoanService struct {
	lib    *library.Library
	logger *slog.Logger
}

var _ apiconnect.LoanServiceHandler = (*LoanService)(nil)

// NewLoanService creates a new LoanService over the library.
func NewLoanService(lib *library.Library, logger *slog.Logger) *LoanService {
	return &LoanService{lib: lib, logger: logger}
}

// ListLoans lists the caller's loans; staff see everyone's.
func (s *LoanService) ListLoans(ctx context.Context, req *connect.Request[api.ListLoansRequest]) (*connect.Response[api.ListLoansResponse], error) {
	filter := query.LoanFilter{
		BorrowerID: req.Msg.BorrowerID,
		BookID:     req.Msg.BookID,
		Returned:   req.Msg.Returned,
	}
	listing, err := s.lib.ListLoans(ctx, middleware.ActorFrom(ctx), filter, s.lib.Page(req.Msg.Page, req.Msg.PageSize))
	if err != nil {
		return nil, fail(s.logger, "ListLoans", err)
	}
	return connect.NewResponse(&api.ListLoansResponse{
		Count:   listing.Total,
		HasNext: listing.HasNext(),
		Results: mapSlice(listing.Items, loanToAPI),
	}), nil
}

func (s *LoanService) GetLoan(ctx context.Context, req *connect.Request[api.GetLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	loan, err := s.lib.GetLoan(ctx, middleware.ActorFrom(ctx), req.Msg.ID)
	if err != nil {
		return nil, fail(s.logger, "GetLoan", err)
	}
	return connect.NewResponse(&api.LoanResponse{Loan: loanToAPI(loan)}), nil
}

// CreateLoan opens a loan starting today. A client-sent start date is ignored.
func (s *LoanService) CreateLoan(ctx context.Context, req *connect.Request[api.CreateLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	if req.Msg.StartDate != nil {
		s.logger.Debug("Ignoring client start date", "data_inicio", *req.Msg.StartDate)
	}

	in := library.LoanInput{
		BookID:     req.Msg.BookID,
		BorrowerID: req.Msg.BorrowerID,
		DueDate:    req.Msg.DueDate,
	}
	loan, err := s.lib.CreateLoan(ctx, middleware.ActorFrom(ctx), in)
	if err != nil {
		return nil, fail(s.logger, "CreateLoan", err)
	}

	s.logger.Info("Loan created", "loan_id", loan.ID, "book_id", loan.BookID, "borrower_id", loan.BorrowerID)
	return connect.NewResponse(&api.LoanResponse{Loan: loanToAPI(loan)}), nil
}

// UpdateLoan changes the due date or marks the loan returned.
func (s *LoanService) UpdateLoan(ctx context.Context, req *connect.Request[api.UpdateLoanRequest]) (*connect.Response[api.LoanResponse], error) {
	patch := library.LoanPatch{DueDate: req.Msg.DueDate, Returned: req.Msg.Returned}
	loan, err := s.lib.UpdateLoan(ctx, middleware.ActorFrom(ctx), req.Msg.ID, patch)
	if err != nil {
		return nil, fail(s.logger, "UpdateLoan", err)
	}

	s.logger.Info("Loan updated", "loan_id", loan.ID, "devolvido", loan.Returned)
	return connect.NewResponse(&api.LoanResponse{Loan: loanToAPI(loan)}), nil
}

func (s *LoanService) DeleteLoan(ctx context.Context, req *connect.Request[api.DeleteLoanRequest]) (*connect.Response[api.Empty], error) {
	if err := s.lib.DeleteLoan(ctx, middleware.ActorFrom(ctx), req.Msg.ID); err != nil {
		return nil, fail(s.logger, "DeleteLoan", err)
	}
	s.logger.Info("Loan deleted", "loan_id", req.Msg.ID)
	return connect.NewResponse(&api.Empty{}), nil
}
