package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"slotwise/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends committed booking events to a topic exchange. Routing keys
// are the event types (booking.created, booking.updated, booking.cancelled).
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// BookingCommitted publishes the event for a committed booking write.
func (p *Publisher) BookingCommitted(ctx context.Context, event string, details *models.BookingDetails) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.PublishJSON(ctx, event, NewBookingEvent(event, &details.Booking))
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NewBookingEvent flattens a booking into its wire event.
func NewBookingEvent(event string, b *models.Booking) models.BookingEvent {
	return models.BookingEvent{
		Type:       event,
		BookingID:  b.ID,
		EmployeeID: b.EmployeeID,
		ServiceID:  b.ServiceID,
		CustomerID: b.CustomerID,
		Date:       b.BookingDate,
		StartAt:    b.StartAt.UTC().Format(time.RFC3339),
		EndAt:      b.EndAt.UTC().Format(time.RFC3339),
		Status:     b.Status,
	}
}
