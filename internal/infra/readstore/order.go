package readstore

import (
	"context"

	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderReadStore struct {
	pool db.DBTX
}

func NewOrderReadStore(pool db.DBTX) *OrderReadStore {
	return &OrderReadStore{pool: pool}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var v queries.OrderView
	err := s.pool.QueryRow(ctx, `
		SELECT id, customer_id, total_cents, status, payment_method, payment_status,
			shipping_address, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&v.ID, &v.CustomerID, &v.TotalCents, &v.Status, &v.PaymentMethod, &v.PaymentStatus,
		&v.ShippingAddress, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT oi.product_id, p.name, oi.quantity, oi.price_cents
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
	`, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item queries.OrderItemView
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		v.Items = append(v.Items, item)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read order items", rows.Err())
	}
	return &v, nil
}

func (s *OrderReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*queries.OrderListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, total_cents, status, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`, customerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	var items []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(&item.ID, &item.TotalCents, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		items = append(items, &item)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to list orders", rows.Err())
	}
	return items, nil
}
