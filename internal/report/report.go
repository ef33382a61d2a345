// Package report computes the back-office analytics: revenue by day,
// order counts by status, and best-selling pizzas. All reports are SQL
// aggregations over the orders tables; nothing here is precomputed.
package report

import "context"

// DailyRevenue is one row of the revenue report. Cancelled orders are
// excluded.
type DailyRevenue struct {
	Day     string  `json:"day"` // YYYY-MM-DD
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// StatusCount is one row of the orders-by-status report.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TopPizza is one row of the best-sellers report.
type TopPizza struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// Repository is the port for the reporting queries.
type Repository interface {
	// RevenueByDay aggregates the last N days of non-cancelled orders.
	RevenueByDay(ctx context.Context, days int) ([]DailyRevenue, error)

	// OrdersByStatus counts orders per status.
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)

	// TopPizzas ranks products by total quantity sold.
	TopPizzas(ctx context.Context, limit int) ([]TopPizza, error)
}
