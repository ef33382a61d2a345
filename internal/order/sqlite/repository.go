// Package sqlite provides a SQLite-backed implementation of
// order.Repository. Orders are split over two tables so the reporting
// queries can aggregate over individual lines.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ovenline/pizza-storefront/internal/order"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id            TEXT PRIMARY KEY,
    session_id    TEXT NOT NULL DEFAULT '',
    customer_name TEXT NOT NULL,
    phone         TEXT NOT NULL DEFAULT '',
    address       TEXT NOT NULL,

    -- Pricing snapshot taken at checkout; never recomputed.
    subtotal      REAL NOT NULL,
    delivery_fee  REAL NOT NULL,
    discount      REAL NOT NULL,
    tax           REAL NOT NULL,
    total         REAL NOT NULL,
    promo_code    TEXT NOT NULL DEFAULT '',

    status        TEXT NOT NULL,

    -- RFC3339 TEXT timestamps (SQLite idiom).
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id TEXT NOT NULL,
    name       TEXT NOT NULL,
    size       TEXT NOT NULL DEFAULT '',
    dough      TEXT NOT NULL DEFAULT '',
    crust      TEXT NOT NULL DEFAULT '',
    price      REAL NOT NULL,
    quantity   INTEGER NOT NULL,
    note       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// Repository is the SQLite implementation of order.Repository.
type Repository struct {
	db *sql.DB
}

var _ order.Repository = (*Repository)(nil)

// New applies the schema and returns the repository.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply orders schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Create persists the order and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, o order.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin create order %q: %w", o.ID, err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO orders
			(id, session_id, customer_name, phone, address,
			 subtotal, delivery_fee, discount, tax, total, promo_code,
			 status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, q,
		o.ID, o.SessionID, o.CustomerName, o.Phone, o.Address,
		o.Subtotal, o.DeliveryFee, o.Discount, o.Tax, o.Total, o.PromoCode,
		string(o.Status), formatTime(o.CreatedAt), formatTime(o.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: create order %q: %w", o.ID, err)
	}

	const qi = `
		INSERT INTO order_items (order_id, product_id, name, size, dough, crust, price, quantity, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, l := range o.Items {
		if _, err := tx.ExecContext(ctx, qi,
			o.ID, l.ProductID, l.Name, l.Size, l.Dough, l.Crust, l.Price, l.Quantity, l.Note); err != nil {
			return fmt.Errorf("sqlite: create order line for %q: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit create order %q: %w", o.ID, err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	const q = `
		SELECT id, session_id, customer_name, phone, address,
		       subtotal, delivery_fee, discount, tax, total, promo_code,
		       status, created_at, updated_at
		FROM   orders
		WHERE  id = ?`

	var o order.Order
	var status, createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&o.ID, &o.SessionID, &o.CustomerName, &o.Phone, &o.Address,
		&o.Subtotal, &o.DeliveryFee, &o.Discount, &o.Tax, &o.Total, &o.PromoCode,
		&status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return order.Order{}, order.ErrNotFound
	}
	if err != nil {
		return order.Order{}, fmt.Errorf("sqlite: get order %q: %w", id, err)
	}

	o.Status = order.Status(status)
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return order.Order{}, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return order.Order{}, err
	}
	if o.Items, err = r.lines(ctx, id); err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func (r *Repository) List(ctx context.Context, f order.ListFilter) ([]order.Order, error) {
	q := `
		SELECT id, session_id, customer_name, phone, address,
		       subtotal, delivery_fee, discount, tax, total, promo_code,
		       status, created_at, updated_at
		FROM   orders`
	args := []any{}
	if f.Status != "" {
		q += ` WHERE status = ?`
		args = append(args, string(f.Status))
	}
	q += ` ORDER BY created_at DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		var status, createdAt, updatedAt string
		err := rows.Scan(
			&o.ID, &o.SessionID, &o.CustomerName, &o.Phone, &o.Address,
			&o.Subtotal, &o.DeliveryFee, &o.Discount, &o.Tax, &o.Total, &o.PromoCode,
			&status, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		o.Status = order.Status(status)
		if o.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}

	for i := range orders {
		if orders[i].Items, err = r.lines(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	const q = `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, q, string(status), formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: update order status %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete order %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *Repository) lines(ctx context.Context, orderID string) ([]order.Line, error) {
	const q = `
		SELECT product_id, name, size, dough, crust, price, quantity, note
		FROM   order_items
		WHERE  order_id = ?
		ORDER  BY id`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: order lines for %q: %w", orderID, err)
	}
	defer rows.Close()

	var lines []order.Line
	for rows.Next() {
		var l order.Line
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Size, &l.Dough, &l.Crust, &l.Price, &l.Quantity, &l.Note); err != nil {
			return nil, fmt.Errorf("sqlite: scan order line for %q: %w", orderID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: order lines for %q: %w", orderID, err)
	}
	return lines, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse time %q: %w", s, err)
	}
	return t, nil
}
