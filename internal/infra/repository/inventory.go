package repository

import (
	"context"

	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"

	"github.com/google/uuid"
)

type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Reserve is a single conditional UPDATE: the decrement and the sufficiency
// check are one statement, so no interleaving can oversell. Zero rows
// affected means either missing record or not enough stock; a follow-up read
// tells them apart.
func (r *InventoryRepository) Reserve(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) error {
	tag, err := tx.Exec(ctx, `
		UPDATE inventory_records
		SET registered_quantity = registered_quantity - $2,
			updated_at = now()
		WHERE product_id = $1
			AND registered_quantity >= $2
	`, productID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve stock", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM inventory_records WHERE product_id = $1)`,
		productID,
	).Scan(&exists); err != nil {
		return infra.WrapRepoErr("failed to check inventory record", err)
	}
	if !exists {
		return infra.WrapRepoErr("inventory record not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("insufficient stock", nil, infra.KindConflict)
}

func (r *InventoryRepository) Restock(ctx context.Context, tx db.DBTX, productID uuid.UUID, qty int) (int, error) {
	var newQuantity int
	err := tx.QueryRow(ctx, `
		UPDATE inventory_records
		SET registered_quantity = registered_quantity + $2,
			updated_at = now()
		WHERE product_id = $1
		RETURNING registered_quantity
	`, productID, qty).Scan(&newQuantity)
	if err != nil {
		if infra.IsNoRows(err) {
			return 0, infra.WrapRepoErr("inventory record not found", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to restock", err)
	}
	return newQuantity, nil
}
