package repository

import (
	"context"
	"fmt"

	"garastore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bucketFormats maps a granularity to its to_char pattern.
var bucketFormats = map[model.SalesGranularity]string{
	model.GranularityDay:   "YYYY-MM-DD",
	model.GranularityMonth: "YYYY-MM",
	model.GranularityYear:  "YYYY",
}

// reportRepository implements the ReportRepository interface using PostgreSQL.
type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

// OrderTotals returns the order count and total sales.
func (r *reportRepository) OrderTotals(ctx context.Context) (model.OrderTotals, error) {
	var totals model.OrderTotals
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)::float8
		FROM orders
	`).Scan(&totals.NumOrders, &totals.TotalSales)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to aggregate order totals")
		return model.OrderTotals{}, fmt.Errorf("failed to aggregate order totals: %w", err)
	}
	return totals, nil
}

// SalesSeries groups orders by their UTC creation date, ascending.
func (r *reportRepository) SalesSeries(ctx context.Context, granularity model.SalesGranularity) ([]model.SalesBucket, error) {
	format, ok := bucketFormats[granularity]
	if !ok {
		return nil, fmt.Errorf("unknown sales granularity %q", granularity)
	}

	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', $1) AS bucket,
			COUNT(*),
			COALESCE(SUM(total_price), 0)::float8
		FROM orders
		GROUP BY bucket
		ORDER BY bucket
	`

	rows, err := r.pool.Query(ctx, query, format)
	if err != nil {
		r.logger.Error().Err(err).Str("granularity", string(granularity)).Msg("failed to query sales series")
		return nil, fmt.Errorf("failed to query sales series: %w", err)
	}

	buckets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.SalesBucket, error) {
		var b model.SalesBucket
		err := row.Scan(&b.Date, &b.Orders, &b.Sales)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect sales series: %w", err)
	}
	return buckets, nil
}

// ProductCategories counts products per category, alphabetically.
func (r *reportRepository) ProductCategories(ctx context.Context) ([]model.CategoryCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COUNT(*)
		FROM products
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product categories")
		return nil, fmt.Errorf("failed to query product categories: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CategoryCount, error) {
		var c model.CategoryCount
		err := row.Scan(&c.Category, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect product categories: %w", err)
	}
	return counts, nil
}

// TopProducts sums quantity and revenue per product across every order.
// Ties on quantity go to the product that was ordered first.
func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	query := `
		SELECT oi.product_id,
			(ARRAY_AGG(oi.name ORDER BY o.created_at, oi.position))[1],
			SUM(oi.quantity)::int,
			SUM(oi.quantity * oi.price)::float8
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		GROUP BY oi.product_id
		ORDER BY SUM(oi.quantity) DESC, MIN(o.created_at), oi.product_id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}

	top, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.TopProduct, error) {
		var t model.TopProduct
		err := row.Scan(&t.ProductID, &t.Name, &t.QuantitySold, &t.Revenue)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect top products: %w", err)
	}
	return top, nil
}

// LowStockProducts returns products with countInStock at or below threshold,
// scarcest first.
func (r *reportRepository) LowStockProducts(ctx context.Context, threshold int) ([]model.LowStockProduct, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, count_in_stock
		FROM products
		WHERE count_in_stock <= $1
		ORDER BY count_in_stock, name
	`, threshold)
	if err != nil {
		r.logger.Error().Err(err).Int("threshold", threshold).Msg("failed to query low stock products")
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}

	low, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LowStockProduct, error) {
		var p model.LowStockProduct
		err := row.Scan(&p.ProductID, &p.Name, &p.CountInStock)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect low stock products: %w", err)
	}
	return low, nil
}

// RecentOrders returns the newest orders with user names resolved.
func (r *reportRepository) RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT o.id, COALESCE(u.name, $2), o.total_price::float8, o.is_paid, o.is_delivered, o.created_at
		FROM orders o
		LEFT JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $1
	`, limit, model.DeletedUserName)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recent orders")
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}

	recent, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.RecentOrder, error) {
		var o model.RecentOrder
		err := row.Scan(&o.ID, &o.UserName, &o.TotalPrice, &o.IsPaid, &o.IsDelivered, &o.CreatedAt)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect recent orders: %w", err)
	}
	return recent, nil
}

// StatusCounts returns the delivered, paid and discounted order counts.
func (r *reportRepository) StatusCounts(ctx context.Context) (delivered, paid, discounted int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE is_delivered),
			COUNT(*) FILTER (WHERE is_paid),
			COUNT(*) FILTER (WHERE discount_code IS NOT NULL AND discount_code <> '')
		FROM orders
	`).Scan(&delivered, &paid, &discounted)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count order statuses")
		return 0, 0, 0, fmt.Errorf("failed to count order statuses: %w", err)
	}
	return delivered, paid, discounted, nil
}
