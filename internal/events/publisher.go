package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/spm-engineering/billing-service/internal/config"
	"github.com/spm-engineering/billing-service/internal/logging"
	"github.com/spm-engineering/billing-service/internal/models"
)

// EventType represents the type of invoice event.
type EventType string

const (
	EventTypeInvoiceCreated EventType = "invoice.created"
	EventTypeInvoiceUpdated EventType = "invoice.updated"
	EventTypeInvoiceDeleted EventType = "invoice.deleted"
)

// InvoiceEvent is the envelope written to the invoices topic.
type InvoiceEvent struct {
	ID            string            `json:"id"`
	Type          EventType         `json:"type"`
	InvoiceID     string            `json:"invoice_id"`
	InvoiceNumber string            `json:"invoice_number"`
	Data          json.RawMessage   `json:"data,omitempty"`
	Metadata      map[string]string `json:"metadata"`
	Timestamp     time.Time         `json:"timestamp"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// Publisher emits invoice lifecycle events.
type Publisher interface {
	PublishInvoiceCreated(ctx context.Context, inv *models.Invoice) error
	PublishInvoiceUpdated(ctx context.Context, inv *models.Invoice) error
	PublishInvoiceDeleted(ctx context.Context, inv *models.Invoice) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes invoice events to Kafka.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *logging.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.InvoicesTopic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  cfg.InvoicesTopic,
		logger: logger,
	}
}

func (p *KafkaPublisher) PublishInvoiceCreated(ctx context.Context, inv *models.Invoice) error {
	return p.publishInvoice(ctx, EventTypeInvoiceCreated, inv, true)
}

func (p *KafkaPublisher) PublishInvoiceUpdated(ctx context.Context, inv *models.Invoice) error {
	return p.publishInvoice(ctx, EventTypeInvoiceUpdated, inv, true)
}

// PublishInvoiceDeleted carries only the identifiers.
func (p *KafkaPublisher) PublishInvoiceDeleted(ctx context.Context, inv *models.Invoice) error {
	return p.publishInvoice(ctx, EventTypeInvoiceDeleted, inv, false)
}

func (p *KafkaPublisher) publishInvoice(ctx context.Context, eventType EventType, inv *models.Invoice, withData bool) error {
	p.logger.Debug("Publishing invoice event", logging.Fields{
		"event_type": eventType,
		"invoice_id": inv.ID,
	})

	var data []byte
	if withData {
		var err error
		if data, err = json.Marshal(inv); err != nil {
			return err
		}
	}

	event := newEvent(ctx, eventType, inv, data)
	return p.publish(ctx, event)
}

func newEvent(ctx context.Context, eventType EventType, inv *models.Invoice, data []byte) *InvoiceEvent {
	event := &InvoiceEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Data:          data,
		Metadata: map[string]string{
			"financial_year": inv.FinancialYear,
		},
		Timestamp: time.Now().UTC(),
	}

	if requestID, ok := ctx.Value(logging.RequestIDKey).(string); ok {
		event.CorrelationID = requestID
	}
	return event
}

func (p *KafkaPublisher) publish(ctx context.Context, event *InvoiceEvent) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.InvoiceID),
		Value: eventData,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish event", logging.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
			"invoice_id": event.InvoiceID,
			"error":      err.Error(),
		})
		return err
	}

	p.logger.Info("Event published", logging.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"invoice_id": event.InvoiceID,
	})
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

// NoopPublisher drops every event. It is used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishInvoiceCreated(context.Context, *models.Invoice) error { return nil }
func (NoopPublisher) PublishInvoiceUpdated(context.Context, *models.Invoice) error { return nil }
func (NoopPublisher) PublishInvoiceDeleted(context.Context, *models.Invoice) error { return nil }
func (NoopPublisher) Close() error                                                 { return nil }

// RecordingPublisher keeps events in memory for tests.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []*InvoiceEvent
}

func (r *RecordingPublisher) record(ctx context.Context, t EventType, inv *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, newEvent(ctx, t, inv, nil))
	return nil
}

func (r *RecordingPublisher) PublishInvoiceCreated(ctx context.Context, inv *models.Invoice) error {
	return r.record(ctx, EventTypeInvoiceCreated, inv)
}

func (r *RecordingPublisher) PublishInvoiceUpdated(ctx context.Context, inv *models.Invoice) error {
	return r.record(ctx, EventTypeInvoiceUpdated, inv)
}

func (r *RecordingPublisher) PublishInvoiceDeleted(ctx context.Context, inv *models.Invoice) error {
	return r.record(ctx, EventTypeInvoiceDeleted, inv)
}

func (r *RecordingPublisher) Close() error { return nil }

// Types returns the recorded event types in order.
func (r *RecordingPublisher) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.Type
	}
	return out
}
