package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/acmepay/payment-gateway/shared/models"
)

// Topic identifies the kind of a domain event
type Topic string

func (t Topic) String() string {
	return string(t)
}

// Metadata represents event metadata
type Metadata map[string]string

// Event represents a domain event
type Event struct {
	ID          models.ID   `json:"id"`
	AggregateID models.ID   `json:"aggregate_id"`
	Topic       Topic       `json:"topic"`
	Version     string      `json:"version"`
	Data        interface{} `json:"data"`
	Metadata    Metadata    `json:"metadata"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// NewEvent creates a new domain event
func NewEvent(aggregateID models.ID, topic Topic, data interface{}) *Event {
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       topic,
		Version:     "1.0",
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now().UTC(),
	}
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	if b, ok := e.Data.(json.RawMessage); ok {
		return b, nil
	}
	if b, ok := e.Data.([]byte); ok {
		return b, nil
	}
	return json.Marshal(e.Data)
}

// Event Topics
const (
	// PaymentSuccessfulEvent is emitted when the bank accepts a payment.
	PaymentSuccessfulEvent Topic = "payment.successful"

	// PaymentUnsuccessfulEvent is emitted when the bank declines a payment.
	PaymentUnsuccessfulEvent Topic = "payment.unsuccessful"

	// PaymentUnableToProcessEvent is emitted when the bank could not be reached.
	PaymentUnableToProcessEvent Topic = "payment.unable_to_process"
)
