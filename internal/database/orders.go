package database

import (
	"context"
	"fmt"
	"time"

	"ordering-system/internal/models"
)

// SaveOrder inserts a finalized order record. A fresh order number is
// allocated from today's sequence when the order does not carry one.
func (db *DB) SaveOrder(ctx context.Context, order *models.Order) error {
	if order.Number == "" {
		seq, err := db.nextOrderSequence(ctx, order.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to allocate order number: %w", err)
		}
		order.Number = models.GenerateOrderNumber(order.CreatedAt, seq)
	}

	err := db.QueryRow(ctx, insertOrderSQL,
		order.Number,
		order.ReceiptText,
		order.ItemNames,
		order.ItemQuantities,
		order.TotalPrice,
		order.DiscountedTotal,
		order.CustomerName,
		order.CustomerPhone,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	db.logger.Debug("order_saved", "Order record stored", "", map[string]interface{}{
		"order_number": order.Number,
		"total_price":  order.TotalPrice,
	})
	return nil
}

// ListOrders returns stored orders, newest first. With todayOnly set only
// orders created since local midnight are included.
func (db *DB) ListOrders(ctx context.Context, todayOnly bool) ([]models.Order, error) {
	sql := listOrdersSQL
	if todayOnly {
		sql = listTodayOrdersSQL
	}

	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.Number,
			&order.ReceiptText,
			&order.ItemNames,
			&order.ItemQuantities,
			&order.TotalPrice,
			&order.DiscountedTotal,
			&order.CustomerName,
			&order.CustomerPhone,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}
	return orders, nil
}

func (db *DB) nextOrderSequence(ctx context.Context, date time.Time) (int, error) {
	pattern := fmt.Sprintf("ORD_%s_%%", date.Format("20060102"))

	var seq int
	if err := db.QueryRow(ctx, nextOrderSequenceSQL, pattern).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}
