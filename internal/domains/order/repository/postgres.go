package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================
type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS orders (
		id               TEXT PRIMARY KEY,
		session_id       TEXT NOT NULL,
		attempt_id       TEXT NOT NULL,
		customer_name    TEXT NOT NULL,
		customer_email   TEXT NOT NULL,
		customer_phone   TEXT NOT NULL,
		customer_cpf     TEXT NOT NULL,
		shipping_address JSONB NOT NULL,
		subtotal         NUMERIC(12,2) NOT NULL,
		discount         NUMERIC(12,2) NOT NULL,
		shipping_cost    NUMERIC(12,2) NOT NULL,
		total            NUMERIC(12,2) NOT NULL,
		currency         TEXT NOT NULL,
		coupon_code      TEXT NOT NULL DEFAULT '',
		shipping_option  TEXT NOT NULL,
		payment_method   TEXT NOT NULL,
		payment_sale_id  TEXT NOT NULL DEFAULT '',
		payment_status   TEXT NOT NULL,
		item_count       INT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at);

	CREATE TABLE IF NOT EXISTS order_items (
		order_id      TEXT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
		position      INT NOT NULL,
		product_id    TEXT NOT NULL,
		variant_id    TEXT NOT NULL,
		title         TEXT NOT NULL,
		variant_title TEXT NOT NULL DEFAULT '',
		unit_price    NUMERIC(12,2) NOT NULL,
		quantity      INT NOT NULL,
		PRIMARY KEY (order_id, position)
	);
`

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure order schema: %w", err)
	}
	return nil
}

// =====================================================
// CREATE ORDER
// =====================================================

func (r *PostgresRepository) Create(ctx context.Context, record *model.OrderRecord) error {
	address, err := json.Marshal(record.Customer.Address)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	return database.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (
				id, session_id, attempt_id,
				customer_name, customer_email, customer_phone, customer_cpf, shipping_address,
				subtotal, discount, shipping_cost, total, currency,
				coupon_code, shipping_option,
				payment_method, payment_sale_id, payment_status,
				item_count, created_at
			) VALUES (
				$1, $2, $3,
				$4, $5, $6, $7, $8,
				$9, $10, $11, $12, $13,
				$14, $15,
				$16, $17, $18,
				$19, $20
			)`,
			record.OrderID, record.SessionID, record.AttemptID,
			record.Customer.Name, record.Customer.Email, record.Customer.Phone, record.Customer.CPF, address,
			record.Subtotal, record.Discount, record.ShippingCost, record.Total, record.Currency,
			record.CouponCode, string(record.ShippingOption),
			record.Payment.Method, record.Payment.SaleID, record.Payment.Status,
			record.TotalItems(), record.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		batch := &pgx.Batch{}
		for i, item := range record.Items {
			batch.Queue(`
				INSERT INTO order_items (
					order_id, position, product_id, variant_id, title, variant_title, unit_price, quantity
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				record.OrderID, i, item.ProductID, item.VariantID, item.Title, item.VariantTitle, item.UnitPrice, item.Quantity,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for range record.Items {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert order item: %w", err)
			}
		}
		return results.Close()
	})
}

// =====================================================
// ADMIN QUERIES
// =====================================================

func buildWhere(filter model.OrderFilter) (string, []interface{}) {
	conditions := []string{"created_at >= $1", "created_at < $2"}
	args := []interface{}{filter.From, filter.To}

	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		conditions = append(conditions, fmt.Sprintf("payment_method = $%d", len(args)))
	}
	if filter.CouponCode != "" {
		args = append(args, strings.ToUpper(filter.CouponCode))
		conditions = append(conditions, fmt.Sprintf("coupon_code = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(id ILIKE $%d OR customer_name ILIKE $%d OR customer_email ILIKE $%d)", n, n, n))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.OrderListItem, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `
		SELECT
			id, customer_name, customer_email,
			COALESCE(shipping_address->>'city', ''), COALESCE(shipping_address->>'state', ''),
			item_count, subtotal, discount, shipping_cost, total,
			coupon_code, shipping_option, payment_method, payment_status, created_at
		FROM orders` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.OrderListItem, 0, filter.Limit)
	for rows.Next() {
		var o model.OrderListItem
		if err := rows.Scan(
			&o.OrderID, &o.CustomerName, &o.CustomerEmail,
			&o.City, &o.State,
			&o.ItemCount, &o.Subtotal, &o.Discount, &o.ShippingCost, &o.Total,
			&o.CouponCode, &o.ShippingOption, &o.PaymentMethod, &o.PaymentStatus, &o.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate orders: %w", err)
	}

	return orders, total, nil
}

func (r *PostgresRepository) Summary(ctx context.Context, filter model.OrderFilter) (*model.SalesSummary, error) {
	where, args := buildWhere(filter)
	summary := &model.SalesSummary{From: filter.From, To: filter.To}

	// Totals
	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(item_count), 0),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(discount), 0),
			COUNT(*) FILTER (WHERE coupon_code <> '')
		FROM orders`+where, args...,
	).Scan(&summary.Orders, &summary.ItemsSold, &summary.Revenue, &summary.Discounts, &summary.CouponOrders)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize orders: %w", err)
	}
	summary.ComputeAverage()

	// By payment method
	rows, err := r.db.Query(ctx, `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders`+where+`
		GROUP BY payment_method
		ORDER BY payment_method`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by method: %w", err)
	}
	summary.ByMethod, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.MethodBreakdown, error) {
		var m model.MethodBreakdown
		err := row.Scan(&m.PaymentMethod, &m.Orders, &m.Revenue)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan method breakdown: %w", err)
	}

	// Daily series
	rows, err = r.db.Query(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders`+where+`
		GROUP BY day
		ORDER BY day`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to group orders by day: %w", err)
	}
	summary.Daily, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.DailyRevenue, error) {
		var d model.DailyRevenue
		err := row.Scan(&d.Date, &d.Orders, &d.Revenue)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan daily revenue: %w", err)
	}

	return summary, nil
}
