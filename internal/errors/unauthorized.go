package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "you are not allowed to access this resource",
	StatusCode: http.StatusForbidden,
}
