package errors

import "net/http"

var ErrAuditLogNotFound = &Exception{
	Message:    "audit log entry not found",
	StatusCode: http.StatusNotFound,
}
