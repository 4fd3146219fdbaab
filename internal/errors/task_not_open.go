package errors

import "net/http"

var ErrTaskNotOpen = &Exception{
	Message:    "tasks cannot be approved if the status is not 'Open'",
	StatusCode: http.StatusBadRequest,
}
