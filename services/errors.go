package services

// ErrorKind classifies a failed operation so the HTTP layer can map it to a
// status code without inspecting messages.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation_error"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidState ErrorKind = "invalid_state"
	KindRateLimited  ErrorKind = "rate_limited"
	KindInternal     ErrorKind = "internal"
)

// Error is the single error shape every service operation returns. It
// serializes as {"kind": ..., "message": ...}.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func ErrValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func ErrUnauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func ErrNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func ErrConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func ErrInvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

// ErrInternal hides the underlying failure from clients; the cause stays
// reachable through Unwrap for logging.
func ErrInternal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", cause: err}
}
