package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"weather-dashboard/config"
	"weather-dashboard/internal/models"
	"weather-dashboard/pkg/logger"
)

// ReadingEvent is the message body published for every stored reading.
type ReadingEvent struct {
	ID          string  `json:"id"`
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

func NewReadingEvent(r models.Reading) ReadingEvent {
	return ReadingEvent{
		ID:          r.ID.Hex(),
		Location:    r.Location,
		Temperature: r.Temperature,
		FeelsLike:   r.FeelsLike,
		Humidity:    r.Humidity,
		Description: r.Description,
		Date:        r.Date.UTC().Format(time.RFC3339),
	}
}

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends reading events to a RabbitMQ topic exchange.
type Publisher struct {
	mu         sync.Mutex
	conn       *amqp.Connection
	channel    channel
	exchange   string
	routingKey string
	l          *logger.Logger
}

// NewPublisher dials the broker and declares the exchange.
func NewPublisher(cfg config.EventsConfig, l *logger.Logger) (*Publisher, error) {
	l.Info("attempting to connect to rabbitmq...", map[string]any{"exchange": cfg.Exchange})

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("[RABBITMQ CONNECTION FAILED] cannot connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	l.Info("rabbitmq connection established successfully")

	return &Publisher{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		l:          l,
	}, nil
}

// PublishReading publishes r as a persistent JSON message.
func (p *Publisher) PublishReading(ctx context.Context, r models.Reading) error {
	body, err := json.Marshal(NewReadingEvent(r))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    r.Date,
			MessageId:    r.ID.Hex(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.l.Debug("published reading event", map[string]any{
		"routing_key": p.routingKey,
		"id":          r.ID.Hex(),
		"location":    r.Location,
	})

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return fmt.Errorf("failed to close channel: %w", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("failed to close rabbitmq connection: %w", err)
		}
		p.l.Info("rabbitmq connection closed")
	}
	return nil
}
