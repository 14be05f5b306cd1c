package repository

import (
	"context"
	"errors"
	"fmt"

	"mattress-shop/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, order_number, customer_id, first_name, last_name, phone, email,
	delivery_method, delivery_city, delivery_warehouse, comment,
	subtotal, discount_amount, delivery_price, total, promo_code,
	status, payment_status, payment_method, transaction_id, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerID,
		&o.FirstName,
		&o.LastName,
		&o.Phone,
		&o.Email,
		&o.DeliveryMethod,
		&o.DeliveryCity,
		&o.DeliveryWarehouse,
		&o.Comment,
		&o.Subtotal,
		&o.DiscountAmount,
		&o.DeliveryPrice,
		&o.Total,
		&o.PromoCode,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentMethod,
		&o.TransactionID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		order.FirstName,
		order.LastName,
		order.Phone,
		order.Email,
		order.DeliveryMethod,
		order.DeliveryCity,
		order.DeliveryWarehouse,
		order.Comment,
		order.Subtotal,
		order.DiscountAmount,
		order.DeliveryPrice,
		order.Total,
		order.PromoCode,
		string(order.Status),
		string(order.PaymentStatus),
		string(order.PaymentMethod),
		order.TransactionID,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_number", order.OrderNumber).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts the item snapshots within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, position, product_id, title, image, size, firmness, unit_price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID,
			item.OrderID,
			item.Position,
			item.ProductID,
			item.Title,
			item.Image,
			item.Size,
			item.Firmness,
			item.UnitPrice,
			item.Quantity,
			item.Total,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	return r.getOne(ctx, "id = $1", id)
}

// GetByOrderNumber retrieves an order by its human-readable number along with its items.
func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error) {
	return r.getOne(ctx, "order_number = $1", orderNumber)
}

func (r *orderRepository) getOne(ctx context.Context, where string, key any) (*model.Order, []model.OrderItem, error) {
	orderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE ` + where

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, orderQuery, key), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Interface("key", key).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Interface("key", key).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.getItems(ctx, order.ID)
	if err != nil {
		return nil, nil, err
	}

	return &order, items, nil
}

func (r *orderRepository) getItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	itemsQuery := `
		SELECT id, order_id, position, product_id, title, image, size, firmness, unit_price, quantity, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.Position,
			&item.ProductID,
			&item.Title,
			&item.Image,
			&item.Size,
			&item.Firmness,
			&item.UnitPrice,
			&item.Quantity,
			&item.Total,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// List retrieves orders newest first.
func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus sets the fulfilment status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1
	`, id, string(status))
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkPaid flips payment_status to paid from pending or failed. Paid and
// refunded orders are left as they are.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET payment_status = $2, transaction_id = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status IN ($4, $5)
	`, id, string(model.PaymentStatusPaid), transactionID,
		string(model.PaymentStatusPending), string(model.PaymentStatusFailed))
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkPaymentFailed records a declined or expired payment for a pending or
// previously failed order.
func (r *orderRepository) MarkPaymentFailed(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders
		SET payment_status = $2, transaction_id = $3, updated_at = NOW()
		WHERE id = $1 AND payment_status IN ($4, $2)
	`, id, string(model.PaymentStatusFailed), transactionID, string(model.PaymentStatusPending))
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark payment failed")
		return false, fmt.Errorf("failed to mark payment failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
