package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	ErrNoCredentials   = errors.New("no stored credentials")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrInvalidBaseURL  = errors.New("invalid server address")
	ErrInvalidResponse = errors.New("invalid server response")
)
