package errors

import "net/http"

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not reveal which accounts exist.
var ErrInvalidCredentials = &Exception{
	Message:    "invalid credentials",
	StatusCode: http.StatusUnauthorized,
}
