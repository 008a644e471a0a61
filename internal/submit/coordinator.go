// Package submit orchestrates the side effects of finalizing a cart: the
// order record save, the external form post, and the counter notification.
package submit

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"ordering-system/internal/cart"
	"ordering-system/internal/codec"
	"ordering-system/internal/form"
	"ordering-system/internal/logger"
	"ordering-system/internal/models"
	"ordering-system/internal/receipt"
)

// Persistence stores finalized order records
type Persistence interface {
	SaveOrder(ctx context.Context, order *models.Order) error
}

// Form posts finalized orders to the external form endpoint
type Form interface {
	Post(ctx context.Context, sub form.Submission) error
}

// Notifier announces saved orders to subscribers. Optional.
type Notifier interface {
	PublishOrderSubmitted(ctx context.Context, msg *models.OrderSubmittedMessage) error
}

// Coordinator runs a submission end to end
type Coordinator struct {
	persistence Persistence
	form        Form
	notifier    Notifier
	logger      *logger.Logger
}

// NewCoordinator creates a submission coordinator. notifier may be nil.
func NewCoordinator(persistence Persistence, formClient Form, notifier Notifier, log *logger.Logger) *Coordinator {
	return &Coordinator{
		persistence: persistence,
		form:        formClient,
		notifier:    notifier,
		logger:      log,
	}
}

// DiscountedTotal applies the 10% discount for totals above 100, rounded to
// the nearest dollar. Totals of 100 or less are returned unchanged.
func DiscountedTotal(total int) int {
	if total <= 100 {
		return total
	}
	discounted := decimal.NewFromInt(int64(total)).Mul(decimal.NewFromFloat(0.9))
	return int(discounted.Round(0).IntPart())
}

// Submit validates the customer fields, builds the order payload and runs the
// two external effects. Validation failures return a models.ValidationError
// before any collaborator is invoked. Each effect is attempted exactly once;
// their outcomes are aggregated in the returned result, never rolled back.
func (co *Coordinator) Submit(ctx context.Context, c *cart.Cart, customerName, customerPhone, requestID string) (*models.SubmissionResult, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, models.ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if strings.TrimSpace(customerPhone) == "" {
		return nil, models.ValidationError{Field: "customer_phone", Message: "customer phone is required"}
	}

	lines := receipt.Lines(c)
	names, quantities := codec.BlobsFromLines(lines)
	total := c.TotalPrice()

	order := &models.Order{
		ReceiptText:     receipt.Format(c),
		ItemNames:       names,
		ItemQuantities:  quantities,
		TotalPrice:      total,
		DiscountedTotal: DiscountedTotal(total),
		CustomerName:    customerName,
		CustomerPhone:   customerPhone,
		CreatedAt:       time.Now().UTC(),
	}

	// The save and the form post are independent: neither result feeds the
	// other, so they run concurrently.
	var saveErr, postErr error
	var g errgroup.Group
	g.Go(func() error {
		saveErr = co.persistence.SaveOrder(ctx, order)
		return saveErr
	})
	g.Go(func() error {
		postErr = co.form.Post(ctx, form.Submission{
			CustomerName:    order.CustomerName,
			ItemNames:       order.ItemNames,
			ItemQuantities:  order.ItemQuantities,
			DiscountedTotal: order.DiscountedTotal,
			CustomerPhone:   order.CustomerPhone,
		})
		return postErr
	})
	// Both errors are inspected individually below.
	_ = g.Wait()

	result := &models.SubmissionResult{
		Order:          order,
		PersistenceErr: saveErr,
		FormErr:        postErr,
	}
	switch {
	case saveErr == nil && postErr == nil:
		result.Status = models.StatusSubmitted
	case saveErr != nil && postErr != nil:
		result.Status = models.StatusFailed
	case saveErr != nil:
		result.Status = models.StatusPartialFailure
		result.Failed = models.EffectPersistence
	default:
		result.Status = models.StatusPartialFailure
		result.Failed = models.EffectForm
	}

	if saveErr != nil {
		co.logger.Error("order_save_failed", "Failed to persist order", requestID, saveErr, map[string]interface{}{
			"customer_name": customerName,
		})
	}
	if postErr != nil {
		co.logger.Error("form_post_failed", "Failed to submit order form", requestID, postErr, map[string]interface{}{
			"customer_name": customerName,
		})
	}

	if saveErr == nil && co.notifier != nil {
		msg := &models.OrderSubmittedMessage{
			OrderNumber:     order.Number,
			CustomerName:    order.CustomerName,
			TotalPrice:      order.TotalPrice,
			DiscountedTotal: order.DiscountedTotal,
			CreatedAt:       order.CreatedAt,
		}
		if err := co.notifier.PublishOrderSubmitted(ctx, msg); err != nil {
			co.logger.Error("notification_publish_failed", "Failed to publish order notification", requestID, err, map[string]interface{}{
				"order_number": order.Number,
			})
		}
	}

	co.logger.Info("order_submitted", "Submission finished", requestID, map[string]interface{}{
		"order_number":     order.Number,
		"status":           string(result.Status),
		"total_price":      order.TotalPrice,
		"discounted_total": order.DiscountedTotal,
	})
	return result, nil
}
