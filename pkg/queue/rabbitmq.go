package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studio-portfolio/pkg/config"
	"studio-portfolio/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	CleanupQueueName  = "media_cleanup"
	CleanupExchange   = "media"
	CleanupRoutingKey = "media.cleanup"

	// MaxCleanupAttempts bounds how many times a task is retried before it
	// is dropped.
	MaxCleanupAttempts = 5
)

// CleanupTask asks the worker to delete objects at the media host.
type CleanupTask struct {
	Keys       []string  `json:"keys"`
	Reason     string    `json:"reason"`
	Attempts   int       `json:"attempts"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		CleanupExchange, // name
		"direct",        // type
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		CleanupQueueName, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		CleanupQueueName,  // queue name
		CleanupRoutingKey, // routing key
		CleanupExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishCleanupTask enqueues a persistent cleanup task.
func (c *Client) PublishCleanupTask(ctx context.Context, task CleanupTask) error {
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		CleanupExchange,   // exchange
		CleanupRoutingKey, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish cleanup task: %v", err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published cleanup task: keys=%d attempts=%d reason=%s", len(task.Keys), task.Attempts, task.Reason)
	return nil
}

// ConsumeCleanupTasks runs handler for every delivery until ctx is done or
// the channel closes. Failed tasks are republished with an incremented
// attempt counter until MaxCleanupAttempts is reached.
func (c *Client) ConsumeCleanupTasks(ctx context.Context, handler func(ctx context.Context, task CleanupTask) error) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set qos: %w", err)
	}

	msgs, err := c.channel.Consume(
		CleanupQueueName, // queue
		"",               // consumer
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", CleanupQueueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handleDelivery(ctx, msg, handler)
		}
	}
}

func (c *Client) handleDelivery(ctx context.Context, msg amqp.Delivery, handler func(ctx context.Context, task CleanupTask) error) {
	var task CleanupTask
	if err := json.Unmarshal(msg.Body, &task); err != nil {
		c.logger.Error("[RABBITMQ] Failed to unmarshal cleanup task: %v, body=%s", err, string(msg.Body))
		_ = msg.Nack(false, false)
		return
	}

	handlerErr := handler(ctx, task)
	retry, next := NextAttempt(task, handlerErr)
	if retry {
		if err := c.PublishCleanupTask(ctx, next); err != nil {
			_ = msg.Nack(false, true)
			return
		}
	} else if handlerErr != nil {
		c.logger.Error("[RABBITMQ] Dropping cleanup task after %d attempts: %v, keys=%v", task.Attempts+1, handlerErr, task.Keys)
	}

	_ = msg.Ack(false)
}

// NextAttempt decides whether a task that finished with err is retried and
// returns the task to republish.
func NextAttempt(task CleanupTask, err error) (bool, CleanupTask) {
	if err == nil {
		return false, task
	}
	next := task
	next.Attempts++
	if next.Attempts >= MaxCleanupAttempts {
		return false, task
	}
	return true, next
}
