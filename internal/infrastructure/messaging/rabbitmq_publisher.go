// Package messaging publicadores de eventos de alerta de stock.
package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/stock-ledger/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher publica en un exchange topic (routing key stock.alert.<estado>).
// Reabre conexión y canal si se cerraron.
type RabbitMQPublisher struct {
	url      string
	exchange string
	log      *logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitMQPublisher conecta y declara el exchange.
func NewRabbitMQPublisher(url, exchange string, log *logger.Logger) (*RabbitMQPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	p := &RabbitMQPublisher{url: url, exchange: exchange, log: log.Component("rabbitmq")}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *RabbitMQPublisher) connectLocked() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("amqp exchange declare %s: %w", p.exchange, err)
	}
	p.conn, p.ch = conn, ch
	p.log.Info().Str("exchange", p.exchange).Msg("conectado a RabbitMQ")
	return nil
}

// Publish envía body como JSON persistente.
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() || p.ch == nil || p.ch.IsClosed() {
		if err := p.connectLocked(); err != nil {
			return err
		}
	}
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Close cierra canal y conexión.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
