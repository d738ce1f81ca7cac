package apperr

import (
	"errors"
	"fmt"
)

// Sentinel kinds of the error taxonomy. Every validation failure produced by
// the repositories or the auth layer wraps exactly one of these, so callers
// can classify with errors.Is while still receiving a human-readable message.
var (
	// ErrNotFound indicates a requested or referenced entity does not exist.
	ErrNotFound = errors.New("no encontrado")
	// ErrDuplicate indicates a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicado")
	// ErrReferentialBlock indicates a delete refused because dependent rows exist.
	ErrReferentialBlock = errors.New("bloqueado por dependencias")
	// ErrConfirmationRequired indicates an immutable-field change missing the
	// explicit confirmation flag.
	ErrConfirmationRequired = errors.New("confirmacion requerida")
	// ErrConflict indicates an update that is never allowed, flag or not.
	ErrConflict = errors.New("conflicto")
	// ErrUnauthorized indicates a missing, invalid or expired credential.
	ErrUnauthorized = errors.New("no autorizado")
	// ErrValidation indicates malformed input shape or field constraints.
	ErrValidation = errors.New("datos no validos")
)

// Error carries one taxonomy kind plus the client-facing message.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the kind so errors.Is matches the sentinels above.
func (e *Error) Unwrap() error { return e.kind }

// NotFound builds a NotFound error naming the missing entity, e.g.
// "Cliente 999 no encontrado".
func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Duplicate builds a Duplicate error with a precise client-facing message.
func Duplicate(format string, args ...any) error {
	return &Error{kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

// ReferentialBlock builds a delete-blocked error.
func ReferentialBlock(format string, args ...any) error {
	return &Error{kind: ErrReferentialBlock, Message: fmt.Sprintf(format, args...)}
}

// ConfirmationRequired builds the re-prompt error for gated field changes.
func ConfirmationRequired(format string, args ...any) error {
	return &Error{kind: ErrConfirmationRequired, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds an immutability violation that no flag unlocks.
func Conflict(format string, args ...any) error {
	return &Error{kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds the uniform authentication failure. Callers must not
// vary the message with the failure cause.
func Unauthorized(message string) error {
	return &Error{kind: ErrUnauthorized, Message: message}
}

// Validation builds a malformed-input error.
func Validation(format string, args ...any) error {
	return &Error{kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}
