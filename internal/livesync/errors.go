package livesync

import "errors"

var (
	ErrFetchFailed  = errors.New("fetch failed")
	ErrCreateFailed = errors.New("create failed")
	ErrDeleteFailed = errors.New("delete failed")

	ErrSubscribeFailed = errors.New("change subscription failed")
	ErrNoActiveSession = errors.New("no active session")
	ErrSessionChanged  = errors.New("session changed while the request was in flight")
	ErrClosed          = errors.New("synchronizer closed")
)
