package events

import (
	"context"
	"encoding/json"
	"time"

	"campsite/pkg/kafka"
	"campsite/pkg/logger"
	"campsite/pkg/model"

	"github.com/google/uuid"
)

// Event types emitted on the reservations topic.
const (
	EventReservationCreated  = "reservation.created"
	EventReservationUpdated  = "reservation.updated"
	EventReservationCanceled = "reservation.canceled"
)

const source = "reservations-service"

// Publisher emits reservation lifecycle events. Publishing is best effort:
// failures are logged and never fail the reservation operation itself.
type Publisher interface {
	ReservationCreated(ctx context.Context, r *model.Reservation)
	ReservationUpdated(ctx context.Context, r *model.Reservation)
	ReservationCanceled(ctx context.Context, r *model.Reservation)
}

type reservationEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`

	ReservationID string    `json:"reservation_id"`
	Email         string    `json:"email"`
	Checkin       time.Time `json:"checkin"`
	Checkout      time.Time `json:"checkout"`
	Canceled      bool      `json:"canceled"`
}

type kafkaPublisher struct {
	producer *kafka.Producer
	logger   *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		logger:   log,
	}
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, r *model.Reservation) {
	p.publish(ctx, EventReservationCreated, r)
}

func (p *kafkaPublisher) ReservationUpdated(ctx context.Context, r *model.Reservation) {
	p.publish(ctx, EventReservationUpdated, r)
}

func (p *kafkaPublisher) ReservationCanceled(ctx context.Context, r *model.Reservation) {
	p.publish(ctx, EventReservationCanceled, r)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, r *model.Reservation) {
	now := time.Now().UTC()
	eventID := uuid.NewString()

	payload, err := json.Marshal(reservationEvent{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    now,
		ReservationID: r.ID,
		Email:         r.Email,
		Checkin:       r.Checkin,
		Checkout:      r.Checkout,
		Canceled:      r.Canceled,
	})
	if err != nil {
		p.logger.Error("Failed to marshal reservation event",
			"event_type", eventType,
			"reservation_id", r.ID,
			"error", err,
		)
		return
	}

	msg := kafka.Message{
		Key:   r.ID,
		Value: payload,
		Headers: map[string]string{
			kafka.HeaderEventID:   eventID,
			kafka.HeaderEventType: eventType,
			kafka.HeaderSource:    source,
			kafka.HeaderTimestamp: now.Format(time.RFC3339),
		},
		Timestamp: now,
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.logger.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", r.ID,
			"error", err,
		)
		return
	}

	p.logger.Debug("Published reservation event",
		"event_type", eventType,
		"reservation_id", r.ID,
	)
}

// NoopPublisher is used when no Kafka topic is configured.
type NoopPublisher struct{}

func (NoopPublisher) ReservationCreated(context.Context, *model.Reservation)  {}
func (NoopPublisher) ReservationUpdated(context.Context, *model.Reservation)  {}
func (NoopPublisher) ReservationCanceled(context.Context, *model.Reservation) {}
