package database

// Order queries. The orders table is append-only: there is no update or
// delete path in this system.
const (
	insertOrderSQL = `
		INSERT INTO orders (number, receipt_text, item_names, item_quantities,
		                    total_price, discounted_total, customer_name, customer_phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	listOrdersSQL = `
		SELECT id, number, receipt_text, item_names, item_quantities,
		       total_price, discounted_total, customer_name, customer_phone, created_at
		FROM orders
		ORDER BY created_at DESC`

	listTodayOrdersSQL = `
		SELECT id, number, receipt_text, item_names, item_quantities,
		       total_price, discounted_total, customer_name, customer_phone, created_at
		FROM orders
		WHERE created_at >= date_trunc('day', NOW())
		ORDER BY created_at DESC`

	nextOrderSequenceSQL = `
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM 'ORD_[0-9]{8}_([0-9]{3})') AS INTEGER)), 0) + 1
		FROM orders
		WHERE number LIKE $1`
)
