package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"strconv"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/kafka"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TypeCreated   = "booking.created"
	TypeCancelled = "booking.cancelled"

	dispatchTimeout = 10 * time.Second
)

// Event is the payload published for every booking state change. Messages are keyed by room
// so a room's history stays ordered within one partition.
type Event struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	BookingID   int64     `json:"booking_id"`
	RoomID      int64     `json:"room_id"`
	GuestID     int64     `json:"guest_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func FromModel(eventType string, booking model.Booking, occurredAt time.Time) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		BookingID:   booking.ID,
		RoomID:      booking.RoomID,
		GuestID:     booking.GuestID,
		CheckIn:     timezone.FormatDate(booking.CheckIn),
		CheckOut:    timezone.FormatDate(booking.CheckOut),
		TotalAmount: booking.TotalAmount,
		OccurredAt:  occurredAt,
	}
}

// Publisher announces committed booking changes. Publishing is best effort and never fails
// the caller.
type Publisher interface {
	Created(ctx context.Context, booking model.Booking)
	Cancelled(ctx context.Context, bookings ...model.Booking)
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topic,
		otel:   otel,
	}
}

func (p *publisherImpl) Created(ctx context.Context, booking model.Booking) {
	p.dispatch(ctx, TypeCreated, booking)
}

func (p *publisherImpl) Cancelled(ctx context.Context, bookings ...model.Booking) {
	p.dispatch(ctx, TypeCancelled, bookings...)
}

func (p *publisherImpl) dispatch(ctx context.Context, eventType string, bookings ...model.Booking) {
	if len(bookings) == 0 {
		return
	}

	now := timezone.Now()

	messages := make([]kafka.Message, len(bookings))
	for i, booking := range bookings {
		messages[i] = kafka.Message{
			Key:   strconv.FormatInt(booking.RoomID, 10),
			Value: FromModel(eventType, booking, now),
		}
	}

	go func() {
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
		defer cancel()

		c, scope := p.otel.NewScope(c, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
		defer scope.End()

		scope.SetAttribute("event.type", eventType)
		scope.SetAttribute("event.count", len(messages))

		if err := p.client.SendMessages(c, p.topic, messages...); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("type", eventType).Int("count", len(messages)).Msg("failed to publish booking events")

			return
		}

		log.Debug().Str("type", eventType).Int("count", len(messages)).Msg("booking events published")
	}()
}
