package sync

import "fmt"

// Machine-readable error codes returned per item in a sync batch. Callers
// never see stack traces or driver errors, only these stable codes.
const (
	// CodeValidation marks a malformed item. Retrying the same payload will
	// fail again; the terminal must fix it.
	CodeValidation = "validation_error"

	// CodeUnresolvedReference marks an item whose mandatory parent has not
	// been synced yet. Safe to retry once the parent arrives.
	CodeUnresolvedReference = "unresolved_reference"

	// CodeStorage marks a database failure while committing the item. Safe
	// to retry; idempotency prevents duplication.
	CodeStorage = "storage_error"
)

// Error is a per-item sync failure with a stable reason code.
type Error struct {
	Code      string
	Message   string
	Retryable bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError reports a malformed or incomplete item.
func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{
		Code:      CodeValidation,
		Message:   fmt.Sprintf(format, args...),
		Retryable: false,
	}
}

// NewUnresolvedReferenceError reports a mandatory parent that has not been
// synced yet.
func NewUnresolvedReferenceError(kind RefKind, globalID string) *Error {
	return &Error{
		Code:      CodeUnresolvedReference,
		Message:   fmt.Sprintf("%s with global_id %s has not been synced yet", kind, globalID),
		Retryable: true,
	}
}

// NewStorageError reports a database failure without leaking its detail.
// The underlying error is logged at the call site, never returned.
func NewStorageError() *Error {
	return &Error{
		Code:      CodeStorage,
		Message:   "failed to commit record",
		Retryable: true,
	}
}
