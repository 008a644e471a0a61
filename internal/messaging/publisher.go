package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"ordering-system/internal/logger"
	"ordering-system/internal/models"
)

// Publisher fans out order-submitted notifications
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishOrderSubmitted announces a saved order to all notification
// subscribers. Delivery is best-effort: a submission is never failed over a
// lost notification.
func (p *Publisher) PublishOrderSubmitted(ctx context.Context, msg *models.OrderSubmittedMessage) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: 1,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		OrdersFanoutExchange, // exchange
		"",                   // routing key (ignored for fanout)
		false,                // mandatory
		false,                // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message to exchange %s", OrdersFanoutExchange),
			"", err, map[string]interface{}{
				"order_number": msg.OrderNumber,
			})
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published order notification to exchange %s", OrdersFanoutExchange),
		"", map[string]interface{}{
			"order_number": msg.OrderNumber,
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
