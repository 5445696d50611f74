package repository

import (
	"context"
	"time"

	"vetclinic/internal/domain/order"
	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, ord *order.Order) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO orders
			(id, customer_id, total_cents, status, payment_method, payment_status, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, ord.ID(), ord.CustomerID(), ord.TotalCents(), ord.Status().String(),
		ord.PaymentMethod().String(), ord.PaymentStatus().String(), ord.ShippingAddress(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	for _, item := range ord.Items() {
		_, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, price_cents)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), id, item.ProductID(), item.Quantity(), item.PriceCents())
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order item", err)
		}
	}

	return id, nil
}

func (r *OrderRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	var (
		orderID, customerID                   uuid.UUID
		totalCents                            int64
		status, paymentMethod, paymentStatus  string
		shippingAddress                       string
		createdAt, updatedAt                  time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT id, customer_id, total_cents, status, payment_method, payment_status,
			shipping_address, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&orderID, &customerID, &totalCents, &status, &paymentMethod, &paymentStatus,
		&shippingAddress, &createdAt, &updatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	st, err := order.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt order status", err)
	}
	method, err := order.NewPaymentMethod(paymentMethod)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt payment method", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT product_id, quantity, price_cents
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var (
			productID  uuid.UUID
			quantity   int
			priceCents int64
		)
		if err := rows.Scan(&productID, &quantity, &priceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		items = append(items, order.ReconstructItem(productID, quantity, priceCents))
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read order items", rows.Err())
	}

	return order.ReconstructOrder(
		orderID, customerID, totalCents, st, method,
		order.PaymentStatus(paymentStatus), shippingAddress,
		items, createdAt, updatedAt,
	), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status order.Status, paymentStatus order.PaymentStatus) error {
	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET status = $2, payment_status = $3, updated_at = now()
		WHERE id = $1
	`, id, status.String(), paymentStatus.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
