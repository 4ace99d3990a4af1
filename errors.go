package history

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Engine operations. Callers should match
// against these with errors.Is.
var (
	// ErrValidationFailed is returned by Undo/UndoCommand when a command
	// (or one of its dependents during a cascade) reports it can no
	// longer be reverted.
	ErrValidationFailed = errors.New("history: validation failed")

	// ErrUnsupportedVersion is returned when loading a snapshot whose
	// version tag this engine does not recognize.
	ErrUnsupportedVersion = errors.New("history: unsupported snapshot version")

	// ErrMalformedSnapshot is returned when a snapshot is missing
	// required fields or is otherwise structurally invalid.
	ErrMalformedSnapshot = errors.New("history: malformed snapshot")

	// ErrDuplicateCommandID is returned by Submit when a command whose
	// id is already present in the global log is submitted again.
	ErrDuplicateCommandID = errors.New("history: duplicate command id")

	// ErrUnknownCommandKind is returned by LoadSnapshot when the caller's
	// CommandFactory does not recognize a serialized command's kind.
	ErrUnknownCommandKind = errors.New("history: unknown command kind")
)

// ValidationError wraps ErrValidationFailed with the id of the command
// that refused to revert, so callers can identify the offending entry
// with errors.As.
type ValidationError struct {
	CommandID string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("history: command %s cannot be reverted", e.CommandID)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func validationFailed(id string) error {
	return fmt.Errorf("%w", &ValidationError{CommandID: id})
}
