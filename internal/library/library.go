// Package library coordinates every mutation of the catalog and of loans.
//
// A mutation runs in a fixed order: load the stored record (update and
// delete), authorize, overlay the incoming fields on the stored ones,
// run the duplicate-title and reference checks, validate, and finally commit
// through the store. Nothing is written unless every step passes.
//
// Invariants that need a read before the write (unique titles, category
// capacity, the loan cap) are serialized by per-key locks held from the
// check until the commit.
package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/metrics"
	"github.com/mmynk/biblioteca/internal/models"
	"github.com/mmynk/biblioteca/internal/query"
	"github.com/mmynk/biblioteca/internal/storage"
	"github.com/mmynk/biblioteca/internal/validation"
)

// ErrDuplicateTitle is returned when a book title is already taken.
var ErrDuplicateTitle = errors.New("book title already exists")

// NotFoundError reports a missing record. It matches storage.ErrNotFound.
type NotFoundError struct {
	Entity authz.Entity
	ID     any
}

var notFoundMessages = map[authz.Entity]string{
	authz.Book:     "Livro não encontrado.",
	authz.Category: "Categoria não encontrada.",
	authz.Author:   "Autor não encontrado.",
	authz.Loan:     "Empréstimo não encontrado.",
	authz.Account:  "Usuário não encontrado.",
}

func (e *NotFoundError) Error() string {
	if msg, ok := notFoundMessages[e.Entity]; ok {
		return msg
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return storage.ErrNotFound }

// Listing is one page of a listing.
type Listing[T any] struct {
	Items []T
	Total int
	Page  query.Page
}

// HasNext reports whether more rows follow this page.
func (l Listing[T]) HasNext() bool {
	return l.Page.HasNext(l.Total)
}

// Library is the mutation coordinator.
type Library struct {
	store         storage.Store
	authenticator auth.Authenticator
	locks         *keyedMutex
	metrics       *metrics.Metrics
	logger        *slog.Logger
	today         func() models.Date
	pageSize      int
}

// Option configures a Library.
type Option func(*Library)

// WithClock overrides the source of "today". Tests pin it.
func WithClock(today func() models.Date) Option {
	return func(l *Library) { l.today = today }
}

// WithMetrics records commits and rejections on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Library) { l.metrics = m }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithPageSize sets the page size used when a listing does not ask for one.
func WithPageSize(n int) Option {
	return func(l *Library) { l.pageSize = n }
}

// New creates a Library over store. authenticator hashes credentials for
// account operations.
func New(store storage.Store, authenticator auth.Authenticator, opts ...Option) *Library {
	l := &Library{
		store:         store,
		authenticator: authenticator,
		locks:         newKeyedMutex(),
		logger:        slog.Default(),
		today:         models.Today,
		pageSize:      query.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Page normalizes client paging against the configured default size.
func (l *Library) Page(number, size int) query.Page {
	return query.NewPage(number, size, l.pageSize)
}

// check authorizes and counts denials.
func (l *Library) check(action authz.Action, entity authz.Entity, actor models.Actor, owner string) error {
	if err := authz.Check(action, entity, actor, owner); err != nil {
		l.metrics.Rejected(string(entity), metrics.RejectDenied)
		return err
	}
	return nil
}

// precheck runs the ownership-independent part of the policy, so callers
// lacking the role are denied before a lookup can reveal whether the record
// exists.
func (l *Library) precheck(action authz.Action, entity authz.Entity, actor models.Actor) error {
	if err := authz.Precheck(action, entity, actor); err != nil {
		l.metrics.Rejected(string(entity), metrics.RejectDenied)
		return err
	}
	return nil
}

// reject counts a refused mutation by the kind of err and returns err.
func (l *Library) reject(entity authz.Entity, err error) error {
	var kind string
	switch {
	case errors.Is(err, validation.ErrInvalid):
		kind = metrics.RejectInvalid
	case errors.Is(err, ErrDuplicateTitle):
		kind = metrics.RejectDuplicate
	case errors.Is(err, storage.ErrNotFound):
		kind = metrics.RejectNotFound
	case errors.Is(err, authz.ErrDenied):
		kind = metrics.RejectDenied
	default:
		return err
	}
	l.metrics.Rejected(string(entity), kind)
	return err
}

func (l *Library) committed(ctx context.Context, entity authz.Entity, action authz.Action, id any, actor models.Actor) {
	l.metrics.Committed(string(entity), string(action))
	l.logger.InfoContext(ctx, "Mutation committed",
		"entity", entity,
		"action", action,
		"id", id,
		"user_id", actor.UserID,
	)
}

// missing maps storage.ErrNotFound to a *NotFoundError for entity.
func missing(err error, entity authz.Entity, id any) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
