package domain

// ErrorKind classifies a domain error so the HTTP boundary can map it to a
// status code without inspecting message strings.
type ErrorKind int

const (
	KindValidation ErrorKind = iota // missing or malformed required input
	KindNotFound                    // referenced entity absent
	KindConflict                    // scheduling collision or unique constraint
	KindBusiness                    // state rule violated (already paid, already checked in, ...)
	KindForbidden                   // role check failed
	KindUnauthorized                // missing/invalid credential
	KindInternal                    // unexpected failure
)

// Error is the typed error returned by all domain operations.
// Code is the machine string surfaced in the response envelope's "error"
// field; Message is the localized human message shown to the user.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code
}

func NewValidationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func NewConflictError(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func NewBusinessError(code, message string) *Error {
	return &Error{Kind: KindBusiness, Code: code, Message: message}
}

func NewInternalError(code, message string) *Error {
	return &Error{Kind: KindInternal, Code: code, Message: message}
}

// IsKind reports whether err is a domain Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := err.(*Error)
	return ok && de.Kind == kind
}
