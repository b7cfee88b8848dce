package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/biblioteca/internal/auth"
	"github.com/mmynk/biblioteca/internal/authz"
	"github.com/mmynk/biblioteca/internal/library"
	"github.com/mmynk/biblioteca/internal/storage"
	"github.com/mmynk/biblioteca/internal/validation"
)

// Messages returned to clients. They are user-facing text, not Go error
// strings, so each error is built where it is returned.
const (
	msgInvalid         = "Dados inválidos."
	msgUnauthenticated = "As credenciais de autenticação não foram fornecidas."
	msgForbidden       = "Você não tem permissão para executar essa ação."
	msgDuplicateTitle  = "O titulo já está em uso!"
	msgNotFound        = "Não encontrado."
	msgInternal        = "Erro interno do servidor."
)

func clientError(code connect.Code, msg string) *connect.Error {
	return connect.NewError(code, errors.New(msg))
}

// toConnectError maps domain errors to Connect codes. Validation failures
// carry a google.protobuf.Struct detail of the form
// {"errors": {field: [message...]}, "codes": {field: [code...]}}.
func toConnectError(err error) *connect.Error {
	var (
		verrs    *validation.Errors
		denial   *authz.Denial
		notFound *library.NotFoundError
	)

	switch {
	case errors.As(err, &verrs):
		return invalidArgument(verrs)
	case errors.As(err, &denial) && denial.Anonymous:
		return clientError(connect.CodeUnauthenticated, msgUnauthenticated)
	case errors.Is(err, authz.ErrDenied):
		return clientError(connect.CodePermissionDenied, msgForbidden)
	case errors.Is(err, library.ErrDuplicateTitle):
		return clientError(connect.CodeAlreadyExists, msgDuplicateTitle)
	case errors.As(err, &notFound):
		return connect.NewError(connect.CodeNotFound, notFound)
	case errors.Is(err, storage.ErrNotFound):
		return clientError(connect.CodeNotFound, msgNotFound)
	case errors.Is(err, auth.ErrUsernameExists):
		return connect.NewError(connect.CodeAlreadyExists, auth.ErrUsernameExists)
	case errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, auth.ErrWeakPassword)
	case errors.Is(err, auth.ErrEmptyUsername):
		return connect.NewError(connect.CodeInvalidArgument, auth.ErrEmptyUsername)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	default:
		return clientError(connect.CodeInternal, msgInternal)
	}
}

func invalidArgument(verrs *validation.Errors) *connect.Error {
	cerr := clientError(connect.CodeInvalidArgument, msgInvalid)

	messages := make(map[string]any)
	codes := make(map[string]any)
	for _, field := range verrs.Fields() {
		var msgs, cs []any
		for _, v := range verrs.Field(field) {
			msgs = append(msgs, v.Message)
			cs = append(cs, string(v.Code))
		}
		messages[field] = msgs
		codes[field] = cs
	}

	detail, err := structpb.NewStruct(map[string]any{"errors": messages, "codes": codes})
	if err != nil {
		return cerr
	}
	if d, err := connect.NewErrorDetail(detail); err == nil {
		cerr.AddDetail(d)
	}
	return cerr
}

// fail maps err for the client and logs anything unexpected.
func fail(logger *slog.Logger, op string, err error) error {
	cerr := toConnectError(err)
	if cerr.Code() == connect.CodeInternal {
		logger.Error(op+" failed", "error", err)
	}
	return cerr
}

// ValidationDetails extracts the field messages of an InvalidArgument error
// returned by a biblioteca.v1 service. It returns nil if there are none.
func ValidationDetails(err error) (messages, codes map[string][]string) {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return nil, nil
	}
	for _, d := range cerr.Details() {
		msg, err := d.Value()
		if err != nil {
			continue
		}
		s, ok := msg.(*structpb.Struct)
		if !ok {
			continue
		}
		m := s.AsMap()
		return stringLists(m["errors"]), stringLists(m["codes"])
	}
	return nil, nil
}

func stringLists(v any) map[string][]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(m))
	for field, list := range m {
		items, _ := list.([]any)
		for _, item := range items {
			if s, ok := item.(string); ok {
				out[field] = append(out[field], s)
			}
		}
	}
	return out
}
