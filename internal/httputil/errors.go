package httputil

import "errors"

// Errors for requests that can not be processed. All of them are client
// errors.
var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidQuery     = errors.New("the query string contains invalid or un-parseable data")
	ErrMethodNotAllowed = errors.New("this HTTP method is not allowed for the endpoint you called")
)
