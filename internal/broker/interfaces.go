// Package broker fans bookmark change events out to the change streams of
// their owner. The in-process broker serves a single server instance; the
// Redis broker lets several instances share one event flow.
package broker

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/models"
)

// Handler receives events of one owner. It is called from the broker's
// delivery goroutine and must not block.
type Handler func(event models.ChangeEvent)

// Broker publishes change events and delivers them to per-owner subscribers.
type Broker interface {
	// Publish delivers event to every subscriber of event.Record.OwnerID.
	Publish(ctx context.Context, event models.ChangeEvent) error

	// Subscribe registers handler for ownerID until the returned function is
	// called or ctx is done. The returned function is idempotent.
	Subscribe(ctx context.Context, ownerID int64, handler Handler) (unsubscribe func(), err error)

	// Close releases the broker's resources.
	Close() error
}
