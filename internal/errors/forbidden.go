package errors

import "net/http"

var ErrForbidden = &Exception{
	Message:    "you do not have permission to access this task",
	StatusCode: http.StatusForbidden,
}
