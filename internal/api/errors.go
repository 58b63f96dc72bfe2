// internal/api/errors.go
//
// Backend failures are categorized by HTTP outcome; the one non-HTTP
// category, KindNoResponse, covers requests that never reached the server
// and gets its own connectivity-specific guidance.

package api

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure.
type Kind int

const (
	// KindGeneric is the catch-all for unexpected statuses.
	KindGeneric Kind = iota
	// KindValidation is a 400: the server message describes the problem.
	KindValidation
	// KindUnauthorized is a 401/403.
	KindUnauthorized
	// KindNotFound is a 404.
	KindNotFound
	// KindServer is any 5xx.
	KindServer
	// KindNoResponse means no HTTP response arrived at all.
	KindNoResponse
)

// Error is the typed failure returned by every client call.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for KindNoResponse
	Message string // server-provided message, may be empty
	Err     error  // underlying transport error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind == KindNoResponse && e.Err != nil:
		return fmt.Sprintf("api: sem resposta do servidor: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("api: status %d", e.Status)
	}
}

// Unwrap exposes the transport error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the notification text shown to the user for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindValidation:
		if e.Message != "" {
			return e.Message
		}
		return "Dados inválidos. Revise os campos e tente novamente."
	case KindUnauthorized:
		return "Credenciais inválidas"
	case KindNotFound:
		return "Não encontrado. Verifique o código informado."
	case KindServer:
		return "Erro no servidor. Tente novamente mais tarde."
	case KindNoResponse:
		return "Não foi possível conectar ao servidor. Verifique se o backend está rodando na porta 8080."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "Erro inesperado. Tente novamente."
	}
}

// AsError unwraps an *Error from err, or wraps err in a generic one so
// callers can always surface a user message.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Kind: KindGeneric, Err: err, Message: err.Error()}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
