// Package broadcast keeps the caches of several application instances coherent. Every local
// cache mutation is published on a Redis channel; peers drop their mirror of that kind and
// reload it on the next read.
package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 2 * time.Second

type message struct {
	Instance string `json:"instance"`
	Kind     string `json:"kind"`
	ID       int64  `json:"id"`
}

type Broadcaster struct {
	client   *goRedis.Client
	channel  string
	instance string
	cache    *cache.HotelCache
}

// New returns nil when client is nil; a nil Broadcaster is valid and does nothing.
func New(client *goRedis.Client, cfg *config.Config, hotelCache *cache.HotelCache) *Broadcaster {
	if client == nil {
		return nil
	}

	return &Broadcaster{
		client:   client,
		channel:  cfg.Cache.Broadcast.Channel,
		instance: uuid.NewString(),
		cache:    hotelCache,
	}
}

// Start subscribes to the channel, hooks the cache so local mutations are published, and
// handles peer messages until ctx is done.
func (b *Broadcaster) Start(ctx context.Context) error {
	if b == nil {
		return nil
	}

	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return fmt.Errorf("failed to subscribe to cache channel: %w", err)
	}

	b.cache.OnChange(b.publish)

	log.Info().Str("channel", b.channel).Str("instance", b.instance).Msg("cache broadcast started")

	go func() {
		defer pubsub.Close()

		ch := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				b.handle(msg.Payload)
			}
		}
	}()

	return nil
}

func (b *Broadcaster) publish(kind string, id int64) {
	payload, err := json.Marshal(message{Instance: b.instance, Kind: kind, ID: id})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode cache broadcast")

		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
			log.Error().Err(err).Str("kind", kind).Int64("id", id).Msg("failed to publish cache broadcast")
		}
	}()
}

func (b *Broadcaster) handle(payload string) {
	var msg message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		log.Warn().Err(err).Msg("ignoring malformed cache broadcast")

		return
	}

	if msg.Instance == b.instance {
		return
	}

	log.Debug().Str("kind", msg.Kind).Int64("id", msg.ID).Str("from", msg.Instance).Msg("peer changed cache kind, invalidating")
	b.cache.Invalidate(msg.Kind)
}
