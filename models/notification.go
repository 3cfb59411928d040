// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ErrorKind classifies a non-fatal client-side failure surfaced to the UI.
type ErrorKind string

const (
	KindAuthQueryFailed     ErrorKind = "auth_query_failed"
	KindAuthOperationFailed ErrorKind = "auth_operation_failed"
	KindFetchFailed         ErrorKind = "fetch_failed"
	KindCreateFailed        ErrorKind = "create_failed"
	KindDeleteFailed        ErrorKind = "delete_failed"
)

// Notification is a user-visible error report. None of the kinds are fatal
// and none trigger an automatic retry.
type Notification struct {
	Kind ErrorKind
	Err  error
	At   time.Time
}

// NewNotification stamps a notification of the given kind with the current time.
func NewNotification(kind ErrorKind, err error) Notification {
	return Notification{Kind: kind, Err: err, At: time.Now()}
}

// Message returns the diagnostic text of the underlying error.
func (n Notification) Message() string {
	if n.Err == nil {
		return string(n.Kind)
	}
	return n.Err.Error()
}
