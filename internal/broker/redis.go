package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
)

const channelPrefix = "bookmarks:changes:"

// RedisBroker fans events out through Redis pub/sub, one channel per owner.
type RedisBroker struct {
	client redis.UniversalClient
	logger *logger.Logger
}

// NewRedisBroker connects to cfg.RedisAddress and checks it with PING.
func NewRedisBroker(ctx context.Context, cfg config.Broker, log *logger.Logger) (*RedisBroker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Err(err).Str("func", "NewRedisBroker").Msg("error connecting redis")
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisBroker").Str("addr", cfg.RedisAddress).Msg("connected to redis")

	return &RedisBroker{client: client, logger: log}, nil
}

func (b *RedisBroker) Publish(ctx context.Context, event models.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	if err = b.client.Publish(ctx, ownerChannel(event.Record.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublish, err)
	}

	return nil
}

func (b *RedisBroker) Subscribe(ctx context.Context, ownerID int64, handler Handler) (func(), error) {
	channel := ownerChannel(ownerID)

	pubsub := b.client.Subscribe(ctx, channel)
	// ensure subscription is established
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("%w: %w", ErrSubscribe, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := pubsub.Channel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer pubsub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				event, err := decodeEvent(msg.Payload)
				if err != nil {
					b.logger.Warn().Err(err).Str("channel", channel).Msg("dropping undecodable change event")
					continue
				}
				handler(event)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}, nil
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}

func ownerChannel(ownerID int64) string {
	return channelPrefix + strconv.FormatInt(ownerID, 10)
}

func decodeEvent(payload string) (models.ChangeEvent, error) {
	var event models.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return models.ChangeEvent{}, err
	}
	if !event.Kind.Valid() {
		return models.ChangeEvent{}, fmt.Errorf("unknown change kind %q", event.Kind)
	}
	return event, nil
}
