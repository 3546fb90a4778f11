// Package events fans booking changes out over redis pub/sub so SSE
// streams on any instance can react to writes from any other.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"sparkle/infras/otel"
	"sparkle/shared/constant"
)

const channel = "booking:events"

const (
	EventCreated       = "created"
	EventUpdated       = "updated"
	EventStatusChanged = "status_changed"
	EventDeleted       = "deleted"
)

// BookingEvent is the payload published on every booking write. It
// carries just enough for a consumer to run the visibility check and
// decide whether to refetch.
type BookingEvent struct {
	Type             string    `json:"type"`
	BookingID        string    `json:"booking_id"`
	CustomerID       string    `json:"customer_id"`
	StaffID          *string   `json:"staff_id,omitempty"`
	TeamID           *string   `json:"team_id,omitempty"`
	BookingCreatedAt time.Time `json:"booking_created_at"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
}

type Subscriber interface {
	Subscribe(ctx context.Context) (<-chan BookingEvent, func())
}

type Bus interface {
	Publisher
	Subscriber
}

type redisBus struct {
	client *goRedis.Client
	otel   otel.Otel
}

func NewBus(client *goRedis.Client, otel otel.Otel) Bus {
	return &redisBus{
		client: client,
		otel:   otel,
	}
}

func (b *redisBus) Publish(ctx context.Context, event BookingEvent) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	if err = b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	return nil
}

// Subscribe delivers events until the returned cancel func is called or
// the context ends. Malformed payloads are dropped, not fatal: the SSE
// consumer treats every event as a refetch hint anyway.
func (b *redisBus) Subscribe(ctx context.Context) (<-chan BookingEvent, func()) {
	sub := b.client.Subscribe(ctx, channel)
	out := make(chan BookingEvent)

	go func() {
		defer close(out)

		for msg := range sub.Channel() {
			var event BookingEvent

			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Error().Err(err).Msg("failed to decode booking event")

				continue
			}

			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		if err := sub.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close booking event subscription")
		}
	}

	return out, cancel
}
