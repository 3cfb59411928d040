package broker

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
)

// NewBroker returns a Redis broker when an address is configured and the
// in-process broker otherwise.
func NewBroker(ctx context.Context, cfg config.Broker, log *logger.Logger) (Broker, error) {
	if cfg.RedisAddress == "" {
		log.Info().Str("func", "NewBroker").Msg("using in-process change broker")
		return NewMemoryBroker(log), nil
	}

	return NewRedisBroker(ctx, cfg, log)
}
