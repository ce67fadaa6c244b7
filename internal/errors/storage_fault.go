package errors

import "net/http"

var ErrStorageFault = &Exception{
	Message:    "file storage is unavailable",
	StatusCode: http.StatusInternalServerError,
}
