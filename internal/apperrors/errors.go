package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of a request failure. Exactly one
// error is reported per failed request; the first violated rule wins.
type Kind int

const (
	KindMissingField Kind = iota
	KindTypeMismatch
	KindWhitespace
	KindTooShort
	KindTooLong
	KindMalformedID
	KindUnknownFolder
	KindUnknownTag
	KindNotASequence
	KindDuplicateName
	KindDuplicateUsername
	KindNotFound
	KindStorage
)

// Error is the single error type crossing the handler boundary.
// Field is set for credential shape violations and surfaced to the
// client as "location"; Err holds the underlying cause, if any.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status. Credential shape
// violations use 422 and carry a ValidationError reason; ownership
// misses collapse into 404 without existence leakage; unrecognized
// store failures are an opaque 500.
func (e *Error) Status() int {
	switch e.Kind {
	case KindMissingField, KindTypeMismatch, KindWhitespace, KindTooShort, KindTooLong:
		if e.Field != "" {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadRequest
	case KindMalformedID, KindUnknownFolder, KindUnknownTag, KindNotASequence,
		KindDuplicateName, KindDuplicateUsername:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newErr(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func MissingField(message string) *Error { return newErr(KindMissingField, message) }

func MissingCredential(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: fmt.Sprintf("Missing '%s' in request body", field)}
}

func TypeMismatch(field string) *Error {
	return &Error{Kind: KindTypeMismatch, Field: field, Message: fmt.Sprintf("incorrect field type: expected %s to be string", field)}
}

func Whitespace(field string) *Error {
	return &Error{Kind: KindWhitespace, Field: field, Message: "password or username cannot start or end with whitespace"}
}

func TooShort(field string, min int) *Error {
	return &Error{Kind: KindTooShort, Field: field, Message: fmt.Sprintf("Must be at least %d characters long", min)}
}

func TooLong(field string, max int) *Error {
	return &Error{Kind: KindTooLong, Field: field, Message: fmt.Sprintf("Must be at most %d characters long", max)}
}

func MalformedID(name string) *Error {
	return newErr(KindMalformedID, fmt.Sprintf("The `%s` is not valid", name))
}

func UnknownFolder() *Error { return newErr(KindUnknownFolder, "The `folderId` is not valid") }

func UnknownTag() *Error { return newErr(KindUnknownTag, "The `tags` contains an invalid id") }

func NotASequence() *Error { return newErr(KindNotASequence, "The `tags` must be an array") }

func DuplicateName(entity string) *Error {
	return newErr(KindDuplicateName, entity+" name already exists")
}

func DuplicateUsername() *Error {
	return newErr(KindDuplicateUsername, "Username already taken")
}

func NotFound(message string) *Error { return newErr(KindNotFound, message) }

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "Internal server error", Err: err}
}

// As unwraps err into *Error, or wraps it as an opaque storage
// failure so internal detail never reaches the client.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Storage(err)
}
