package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// Queue names the storefront publishes to. The mail queue carries
// outbound email for the mail side-service; the order queue carries
// order-created events for downstream consumers.
const (
	OrderQueue = "order_events"
	MailQueue  = "mail_queue"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, sets up a channel, and declares the
// queues the storefront publishes to.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, queue := range []string{OrderQueue, MailQueue} {
		_, err = ch.QueueDeclare(
			queue, // name
			true,  // durable (persists messages across broker restarts)
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
		}
	}

	log.Println("RabbitMQ client connected and queues declared.")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a raw message body to a queue via the default exchange.
func (c *Client) Publish(queue string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		"",    // exchange: default exchange routes by queue name
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}
	return nil
}

// PublishJSON marshals v to JSON and publishes it to a queue.
func (c *Client) PublishJSON(queue string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message for %s: %w", queue, err)
	}
	return c.Publish(queue, body)
}

// ConsumeMailQueue starts consuming the mail queue, invoking handler for
// each delivery. Used by the mail worker, not by the API process.
func (c *Client) ConsumeMailQueue(handler func(msg amqp.Delivery) error) error {
	return c.consume(MailQueue, handler)
}

// ConsumeOrderEvents starts consuming order-created events.
func (c *Client) ConsumeOrderEvents(handler func(msg amqp.Delivery) error) error {
	return c.consume(OrderQueue, handler)
}

func (c *Client) consume(queue string, handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	deliveries, err := c.channel.Consume(
		queue,
		"",    // consumer tag, auto-generated
		false, // auto-ack off, we ack after the handler succeeds
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", queue, err)
	}

	for msg := range deliveries {
		if err := handler(msg); err != nil {
			log.Printf("Error handling message from %s: %v", queue, err)
			_ = msg.Nack(false, true) // requeue for another attempt
			continue
		}
		_ = msg.Ack(false)
	}
	return nil
}
