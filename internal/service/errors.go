package service

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Error carries an HTTP status class alongside a short user-facing message.
// Handlers map it straight onto the response; anything else surfaces as 500
// with a generic body so internal detail never reaches the client.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func badRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func tooManyRequests(msg string) *Error {
	return &Error{Status: http.StatusTooManyRequests, Message: msg}
}

func internal(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// asServiceError unwraps a *Error propagated through a transaction callback
func asServiceError(err error, target **Error) bool {
	return errors.As(err, target)
}

// HTTPStatus extracts the status for an error returned by a service
func HTTPStatus(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	return http.StatusInternalServerError
}

// isNotFound reports whether err is a missing-record lookup result
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKey reports whether err is a unique-index violation. Requires
// the dialector to be opened with TranslateError.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
