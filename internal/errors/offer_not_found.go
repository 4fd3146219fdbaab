package errors

import "net/http"

var ErrOfferNotFound = &Exception{
	Message:    "offer not found",
	StatusCode: http.StatusNotFound,
}
