// Package events публикация событий бронирования в RabbitMQ
// Подписчики (уведомления, аналитика) слушают topic exchange
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/STS-BookingService/internal/domain"
)

// Routing keys событий
const (
	KeyReservationCreated   = "reservation.created"
	KeyReservationCancelled = "reservation.cancelled"
	KeySessionStarted       = "session.started"
)

// ReservationEvent payload события бронирования
type ReservationEvent struct {
	ReservationID string  `json:"reservationId"`
	UserID        string  `json:"userId"`
	SunbedID      string  `json:"sunbedId"`
	Date          string  `json:"date"`
	Slot          string  `json:"slot"`
	HoursDeducted float64 `json:"hoursDeducted,omitempty"`
	OccurredAt    string  `json:"occurredAt"`
}

// Publisher издатель событий в topic exchange
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("events: declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// PublishReservation публикует событие бронирования с указанным ключом
func (p *Publisher) PublishReservation(ctx context.Context, key string, res *domain.Reservation, hoursDeducted float64) error {
	event := ReservationEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		SunbedID:      res.SunbedID,
		Date:          res.Date,
		Slot:          res.Slot.String(),
		HoursDeducted: hoursDeducted,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
