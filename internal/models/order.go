package models

import (
	"fmt"
	"time"
)

// Order is the submission payload built from a finalized cart. It is created
// once at submission time and never mutated afterward; ownership passes to
// the persistence layer.
type Order struct {
	ID              int64     `json:"id,omitempty" db:"id"`
	Number          string    `json:"order_number" db:"number"`
	ReceiptText     string    `json:"receipt_text" db:"receipt_text"`
	ItemNames       string    `json:"item_names" db:"item_names"`
	ItemQuantities  string    `json:"item_quantities" db:"item_quantities"`
	TotalPrice      int       `json:"total_price" db:"total_price"`
	DiscountedTotal int       `json:"discounted_total" db:"discounted_total"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	CustomerPhone   string    `json:"customer_phone" db:"customer_phone"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// GenerateOrderNumber formats an order number as ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	return fmt.Sprintf("ORD_%s_%03d", date.Format("20060102"), sequence)
}

// SubmissionStatus is the aggregated outcome of the two external effects
type SubmissionStatus string

const (
	StatusSubmitted      SubmissionStatus = "submitted"
	StatusPartialFailure SubmissionStatus = "partial_failure"
	StatusFailed         SubmissionStatus = "failed"
)

// Effect identifies one of the two external side effects of a submission
type Effect string

const (
	EffectPersistence Effect = "persistence"
	EffectForm        Effect = "form_submission"
)

// SubmissionResult reports both effect outcomes. There is no transactional
// guarantee across the two external systems: when one side fails the other
// side's outcome is still reported, never rolled back.
type SubmissionResult struct {
	Status         SubmissionStatus `json:"status"`
	Order          *Order           `json:"order,omitempty"`
	Failed         Effect           `json:"failed_effect,omitempty"`
	PersistenceErr error            `json:"-"`
	FormErr        error            `json:"-"`
}

// ValidationError reports a rejected submission field. Recoverable: the user
// is re-prompted, no external call has happened yet.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// OrderSubmittedMessage is fanned out to notification subscribers after an
// order record is saved.
type OrderSubmittedMessage struct {
	OrderNumber     string    `json:"order_number"`
	CustomerName    string    `json:"customer_name"`
	TotalPrice      int       `json:"total_price"`
	DiscountedTotal int       `json:"discounted_total"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubmitOrderRequest is the HTTP request to finalize a cart. Quantities is a
// category-by-item grid matching the menu shape.
type SubmitOrderRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Quantities    [][]int `json:"quantities"`
}

// SubmitOrderResponse reports the submission outcome to the client
type SubmitOrderResponse struct {
	OrderNumber     string `json:"order_number,omitempty"`
	Status          string `json:"status"`
	TotalPrice      int    `json:"total_price"`
	DiscountedTotal int    `json:"discounted_total"`
	ReceiptText     string `json:"receipt_text"`
	FailedEffect    string `json:"failed_effect,omitempty"`
}
