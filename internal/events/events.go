package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"

	"skynest/config"
	"skynest/infras/kafka"
	"skynest/infras/otel"
	"skynest/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	TypeBookingCreated    = "booking.created"
	TypeBookingConfirmed  = "booking.confirmed"
	TypeBookingCancelled  = "booking.cancelled"
	TypeBookingCheckedIn  = "booking.checked_in"
	TypeBookingCheckedOut = "booking.checked_out"
	TypeBookingNoShow     = "booking.no_show"
)

// BookingEvent is the payload published on every booking lifecycle change.
// Downstream consumers (channel managers, notifications) key on BookingID.
type BookingEvent struct {
	Type      string  `json:"type"`
	BookingID string  `json:"booking_id"`
	Reference string  `json:"reference"`
	RoomID    string  `json:"room_id"`
	GuestID   string  `json:"guest_id"`
	CheckIn   string  `json:"check_in"`
	CheckOut  string  `json:"check_out"`
	Total     float64 `json:"total"`
	At        string  `json:"at"`
}

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// PublishBookingEvent sends the event on the booking topic. Publishing is best
// effort; booking state is already committed when this runs, so a broker
// failure is logged and swallowed.
func (p *publisherImpl) PublishBookingEvent(ctx context.Context, event BookingEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishBookingEvent")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"event.type":       event.Type,
		"event.booking_id": event.BookingID,
	})

	message := kafka.Message{
		Key:   event.BookingID,
		Value: event,
	}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.BookingTopic, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", event.Type).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
	}
}
