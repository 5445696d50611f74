package repository

import (
	"context"

	"vetclinic/internal/domain/cart"
	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// GetOrCreate returns the customer's cart id, creating the row lazily. The
// ON CONFLICT arm makes concurrent first-touches converge on one cart.
func (r *CartRepository) GetOrCreate(ctx context.Context, tx db.DBTX, customerID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO carts (id, customer_id)
		VALUES ($1, $2)
		ON CONFLICT (customer_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
		RETURNING id
	`, uuid.New(), customerID).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to get or create cart", err)
	}
	return id, nil
}

func (r *CartRepository) ItemsForUpdate(ctx context.Context, tx db.DBTX, cartID uuid.UUID) (*shared.CartSnapshot, error) {
	var customerID uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT customer_id FROM carts WHERE id = $1 FOR UPDATE`, cartID,
	).Scan(&customerID)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock cart", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT id, product_id, quantity, price_cents
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at ASC
		FOR UPDATE
	`, cartID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock cart items", err)
	}
	defer rows.Close()

	var items []cart.Item
	for rows.Next() {
		var (
			itemID, productID uuid.UUID
			quantity          int
			priceCents        int64
		)
		if err := rows.Scan(&itemID, &productID, &quantity, &priceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart item", err)
		}
		items = append(items, cart.ReconstructItem(itemID, productID, quantity, priceCents))
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to read cart items", rows.Err())
	}

	return &shared.CartSnapshot{ID: cartID, CustomerID: customerID, Items: items}, nil
}

func (r *CartRepository) UpsertItem(ctx context.Context, tx db.DBTX, cartID uuid.UUID, itemID, productID uuid.UUID, quantity int, priceCents int64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, price_cents)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
	`, itemID, cartID, productID, quantity, priceCents)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert cart item", err)
	}
	return nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, tx db.DBTX, itemID uuid.UUID, quantity int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE cart_items
		SET quantity = $2, updated_at = now()
		WHERE id = $1
	`, itemID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to update cart item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, tx db.DBTX, itemID uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete cart item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("cart item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, tx db.DBTX, cartID uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return infra.WrapRepoErr("failed to clear cart", err)
	}
	return nil
}
