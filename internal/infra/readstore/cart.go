package readstore

import (
	"context"

	"vetclinic/internal/domain/cart"
	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartReadStore struct {
	pool db.DBTX
}

func NewCartReadStore(pool db.DBTX) *CartReadStore {
	return &CartReadStore{pool: pool}
}

// ForCustomer returns the customer's cart with product names joined in.
// A customer with no cart yet gets an empty view.
func (s *CartReadStore) ForCustomer(ctx context.Context, customerID uuid.UUID) (*queries.CartView, error) {
	var cartID uuid.UUID
	err := s.pool.QueryRow(ctx, `
		SELECT id FROM carts WHERE customer_id = $1
	`, customerID).Scan(&cartID)
	if err != nil {
		if infra.IsNoRows(err) {
			return &queries.CartView{CustomerID: customerID, Items: []queries.CartItemView{}}, nil
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}

	view := &queries.CartView{ID: cartID, CustomerID: customerID, Items: []queries.CartItemView{}}

	rows, err := s.pool.Query(ctx, `
		SELECT ci.id, ci.product_id, p.name, ci.quantity, ci.price_cents
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at
	`, cartID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read cart items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item queries.CartItemView
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		view.TotalCents += int64(item.Quantity) * item.PriceCents
		view.Items = append(view.Items, item)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read cart items", rows.Err())
	}
	return view, nil
}

// SnapshotForCustomer is the command-side validation read. It returns
// ErrCartNotFound when no cart row exists yet.
func (s *CartReadStore) SnapshotForCustomer(ctx context.Context, customerID uuid.UUID) (*shared.CartSnapshot, error) {
	var cartID uuid.UUID
	err := s.pool.QueryRow(ctx, `
		SELECT id FROM carts WHERE customer_id = $1
	`, customerID).Scan(&cartID)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrCartNotFound
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}
	return s.snapshot(ctx, cartID, customerID)
}

func (s *CartReadStore) SnapshotByID(ctx context.Context, cartID uuid.UUID) (*shared.CartSnapshot, error) {
	var customerID uuid.UUID
	err := s.pool.QueryRow(ctx, `
		SELECT customer_id FROM carts WHERE id = $1
	`, cartID).Scan(&customerID)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrCartNotFound
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}
	return s.snapshot(ctx, cartID, customerID)
}

func (s *CartReadStore) snapshot(ctx context.Context, cartID, customerID uuid.UUID) (*shared.CartSnapshot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, quantity, price_cents
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at
	`, cartID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read cart items", err)
	}
	defer rows.Close()

	snap := &shared.CartSnapshot{ID: cartID, CustomerID: customerID}
	for rows.Next() {
		var (
			itemID, productID uuid.UUID
			quantity          int
			priceCents        int64
		)
		if err := rows.Scan(&itemID, &productID, &quantity, &priceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		snap.Items = append(snap.Items, cart.ReconstructItem(itemID, productID, quantity, priceCents))
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read cart items", rows.Err())
	}
	return snap, nil
}
