package notification

import (
	"context"
	"fmt"

	"ordering-system/internal/logger"
	"ordering-system/internal/messaging"
	"ordering-system/internal/models"
)

// Subscriber consumes order-submitted notifications and prints them for the
// shop counter.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes notifications until ctx is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.consumer.StartConsuming(ctx, s.handleNotification)
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.OrderSubmittedMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	fmt.Println(formatNotification(&msg))

	s.logger.Info("notification_displayed", "Order notification displayed", requestID, map[string]interface{}{
		"order_number":     msg.OrderNumber,
		"customer_name":    msg.CustomerName,
		"total_price":      msg.TotalPrice,
		"discounted_total": msg.DiscountedTotal,
	})
	return nil
}

func formatNotification(msg *models.OrderSubmittedMessage) string {
	timestamp := msg.CreatedAt.Local().Format("2006-01-02 15:04:05")
	if msg.DiscountedTotal < msg.TotalPrice {
		return fmt.Sprintf("🧾 [%s] 訂單 %s — %s，總金額 %d 元（折後 %d 元）",
			timestamp, msg.OrderNumber, msg.CustomerName, msg.TotalPrice, msg.DiscountedTotal)
	}
	return fmt.Sprintf("🧾 [%s] 訂單 %s — %s，總金額 %d 元",
		timestamp, msg.OrderNumber, msg.CustomerName, msg.TotalPrice)
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	return s.consumer.Close()
}
