package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const amqpPublishTimeout = 5 * time.Second

// AMQPChangeFeed carries change signals between instances over a RabbitMQ
// fanout exchange. Each instance consumes from its own exclusive queue.
type AMQPChangeFeed struct {
	conn     *amqp.Connection
	exchange string
	hub      *ChangeHub
	logger   *zap.Logger

	mu      sync.Mutex
	publish *amqp.Channel
	consume *amqp.Channel
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewAMQPChangeFeed dials the broker and declares the fanout exchange
func NewAMQPChangeFeed(url, exchange string, logger *zap.Logger) (*AMQPChangeFeed, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPChangeFeed{
		conn:     conn,
		exchange: exchange,
		hub:      NewChangeHub(),
		logger:   logger,
		publish:  ch,
		done:     make(chan struct{}),
	}, nil
}

// Start binds a private queue to the exchange and relays deliveries
func (f *AMQPChangeFeed) Start(ctx context.Context) error {
	ch, err := f.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", f.exchange, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("bind queue: %w", err)
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("start consuming: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	f.mu.Lock()
	f.consume, f.cancel = ch, cancel
	f.mu.Unlock()
	f.logger.Info("consuming notification changes", zap.String("exchange", f.exchange), zap.String("queue", q.Name))

	go func() {
		defer close(f.done)
		for {
			select {
			case <-runCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					f.logger.Warn("notification change deliveries closed")
					return
				}
				if !f.hub.relay(runCtx, string(d.Body)) {
					f.logger.Warn("ignoring malformed change signal", zap.ByteString("body", d.Body))
				}
			}
		}
	}()
	return nil
}

// Publish announces a change of officeID to every instance
func (f *AMQPChangeFeed) Publish(ctx context.Context, officeID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, amqpPublishTimeout)
	defer cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.publish.PublishWithContext(ctx, f.exchange, "", false, false, amqp.Publishing{
		ContentType: "text/plain",
		Timestamp:   time.Now(),
		Body:        []byte(officeID.String()),
	})
	if err != nil {
		return fmt.Errorf("publish change signal: %w", err)
	}
	return nil
}

// Subscribe registers a local subscriber
func (f *AMQPChangeFeed) Subscribe(ctx context.Context, officeID uuid.UUID) (<-chan struct{}, error) {
	return f.hub.Subscribe(ctx, officeID)
}

// Close stops consuming and closes the connection
func (f *AMQPChangeFeed) Close() error {
	f.mu.Lock()
	cancel, consume := f.cancel, f.consume
	f.mu.Unlock()
	if cancel != nil {
		cancel()
		if consume != nil {
			consume.Close()
		}
		<-f.done
	}
	return f.conn.Close()
}
