package errors

import "net/http"

var ErrAuthenticationFailed = &Exception{
	Message:    "authentication failed",
	StatusCode: http.StatusUnauthorized,
}
