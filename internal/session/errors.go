package session

import "errors"

var (
	ErrAuthQueryFailed     = errors.New("auth query failed")
	ErrAuthOperationFailed = errors.New("auth operation failed")
)
