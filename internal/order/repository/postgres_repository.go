package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/ridloal/skincare-store-api/internal/order/domain"
	"github.com/ridloal/skincare-store-api/internal/platform/logger"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListOrders returns orders newest-first, optionally restricted to the
	// given statuses. Items are always populated.
	ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error)
	// ListPaymentProofRefs returns every payment proof reference currently
	// attached to an order. Used by the upload sweep.
	ListPaymentProofRefs(ctx context.Context) ([]string, error)
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

// CreateOrderWithItems stores the order and its items in one transaction.
func (r *postgresOrderRepository) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	orderQuery := `INSERT INTO orders (total, status, customer_name, customer_email, customer_phone, customer_address, payment_proof, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`

	order.CreatedAt = time.Now()
	if order.Status == "" {
		order.Status = domain.StatusPending
	}

	var proof sql.NullString
	if order.PaymentProof != nil {
		proof = sql.NullString{String: *order.PaymentProof, Valid: true}
	}

	err = tx.QueryRowContext(ctx, orderQuery,
		order.Total, order.Status,
		order.CustomerInfo.Name, order.CustomerInfo.Email, order.CustomerInfo.Phone, order.CustomerInfo.Address,
		proof, order.CreatedAt,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to insert order", err)
		return err
	}

	itemStmt, err := tx.PrepareContext(ctx, `INSERT INTO order_items (order_id, product_id, name, price, quantity)
                                            VALUES ($1, $2, $3, $4, $5) RETURNING id`)
	if err != nil {
		logger.Error("CreateOrderWithItems: failed to prepare item statement", err)
		return err
	}
	defer itemStmt.Close()

	for i := range items {
		items[i].OrderID = order.ID
		err = itemStmt.QueryRowContext(ctx, items[i].OrderID, items[i].ProductID, items[i].Name, items[i].Price, items[i].Quantity).
			Scan(&items[i].ID)
		if err != nil {
			logger.Error("CreateOrderWithItems: failed to insert order item "+items[i].ProductID, err)
			return err
		}
	}
	order.Items = items

	return tx.Commit()
}

func (r *postgresOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT id, total, status, customer_name, customer_email, customer_phone, customer_address, payment_proof, created_at
              FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		logger.Error("GetOrderByID: query failed", err)
		return nil, err
	}

	items, err := r.itemsForOrders(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

func (r *postgresOrderRepository) ListOrders(ctx context.Context, statuses []domain.OrderStatus) ([]domain.Order, error) {
	query := `SELECT id, total, status, customer_name, customer_email, customer_phone, customer_address, payment_proof, created_at
              FROM orders`
	args := []interface{}{}
	if len(statuses) > 0 {
		strs := make([]string, len(statuses))
		for i, s := range statuses {
			strs[i] = string(s)
		}
		query += ` WHERE status = ANY($1)`
		args = append(args, pq.Array(strs))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("ListOrders: query failed", err)
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			logger.Error("ListOrders: scan failed", err)
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListOrders: rows iteration error", err)
		return nil, err
	}

	if len(ids) == 0 {
		return orders, nil
	}
	itemsByOrder, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (*domain.Order, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, newStatus, orderID)
	if err != nil {
		logger.Error("UpdateOrderStatus: exec failed for "+orderID, err)
		return nil, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	return r.GetOrderByID(ctx, orderID)
}

func (r *postgresOrderRepository) ListPaymentProofRefs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payment_proof FROM orders WHERE payment_proof IS NOT NULL`)
	if err != nil {
		logger.Error("ListPaymentProofRefs: query failed", err)
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			logger.Error("ListPaymentProofRefs: scan failed", err)
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var proof sql.NullString
	err := row.Scan(
		&o.ID, &o.Total, &o.Status,
		&o.CustomerInfo.Name, &o.CustomerInfo.Email, &o.CustomerInfo.Phone, &o.CustomerInfo.Address,
		&proof, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if proof.Valid {
		o.PaymentProof = &proof.String
	}
	return &o, nil
}

func (r *postgresOrderRepository) itemsForOrders(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, name, price, quantity
              FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		logger.Error("itemsForOrders: query failed", err)
		return nil, err
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			logger.Error("itemsForOrders: scan failed", err)
			return nil, err
		}
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}
	return itemsByOrder, rows.Err()
}
