package errors

import "net/http"

var ErrOfferAlreadyApproved = &Exception{
	Message:    "an offer has already been approved",
	StatusCode: http.StatusConflict,
}
