package errors

import "net/http"

var ErrTaskNotInProgress = &Exception{
	Message:    "tasks cannot be completed if the status is not 'In Progress'",
	StatusCode: http.StatusBadRequest,
}
