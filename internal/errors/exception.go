// Package errors defines the marketplace's domain errors. Each error
// carries the HTTP status it maps to, so handlers never switch on
// error identity.
package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// StatusCode reports the HTTP status for err, or 500 when err is not
// a domain error.
func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
