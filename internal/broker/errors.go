package broker

import "errors"

var (
	// ErrBrokerClosed is returned by operations on a closed broker.
	ErrBrokerClosed = errors.New("broker is closed")

	// ErrSubscribe is returned when a subscription cannot be established.
	ErrSubscribe = errors.New("error subscribing to change events")

	// ErrPublish is returned when an event cannot be published.
	ErrPublish = errors.New("error publishing change event")
)
