package readstore

import (
	"context"

	"vetclinic/internal/infra"
	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"
	"vetclinic/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProductReadStore struct {
	pool db.DBTX
}

func NewProductReadStore(pool db.DBTX) *ProductReadStore {
	return &ProductReadStore{pool: pool}
}

func (s *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var snap shared.ProductSnapshot
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, price_cents, is_active
		FROM products
		WHERE id = $1
	`, id).Scan(&snap.ID, &snap.Name, &snap.PriceCents, &snap.Active)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrProductNotFound
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return &snap, nil
}

func (s *ProductReadStore) InventoryByProduct(ctx context.Context, productID uuid.UUID) (*shared.InventorySnapshot, error) {
	var snap shared.InventorySnapshot
	err := s.pool.QueryRow(ctx, `
		SELECT product_id, registered_quantity, real_quantity, min_stock_level, max_stock_level
		FROM inventory_records
		WHERE product_id = $1
	`, productID).Scan(
		&snap.ProductID, &snap.RegisteredQuantity, &snap.RealQuantity,
		&snap.MinStockLevel, &snap.MaxStockLevel,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrProductNotFound
		}
		return nil, infra.WrapRepoErr("failed to find inventory record", err)
	}
	return &snap, nil
}

func (s *ProductReadStore) FindInventoryView(ctx context.Context, productID uuid.UUID) (*queries.InventoryView, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT ir.product_id, p.name, ir.registered_quantity, ir.real_quantity,
			ir.min_stock_level, ir.max_stock_level
		FROM inventory_records ir
		JOIN products p ON p.id = ir.product_id
		WHERE ir.product_id = $1
	`, productID)
	v, err := scanInventoryView(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, errs.ErrProductNotFound
		}
		return nil, infra.WrapRepoErr("failed to find inventory record", err)
	}
	return v, nil
}

// ListLowStock returns products whose registered quantity fell to or below
// their minimum stock level.
func (s *ProductReadStore) ListLowStock(ctx context.Context) ([]*queries.InventoryView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT ir.product_id, p.name, ir.registered_quantity, ir.real_quantity,
			ir.min_stock_level, ir.max_stock_level
		FROM inventory_records ir
		JOIN products p ON p.id = ir.product_id
		WHERE ir.registered_quantity <= ir.min_stock_level
		ORDER BY p.name
	`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list low stock records", err)
	}
	defer rows.Close()

	var views []*queries.InventoryView
	for rows.Next() {
		v, err := scanInventoryView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan inventory record", err)
		}
		views = append(views, v)
	}
	if rows.Err() != nil {
		return nil, infra.WrapRepoErr("failed to list low stock records", rows.Err())
	}
	return views, nil
}

func scanInventoryView(row pgxRow) (*queries.InventoryView, error) {
	var v queries.InventoryView
	err := row.Scan(
		&v.ProductID, &v.ProductName, &v.RegisteredQuantity, &v.RealQuantity,
		&v.MinStockLevel, &v.MaxStockLevel,
	)
	if err != nil {
		return nil, err
	}
	v.LowStock = v.RegisteredQuantity <= v.MinStockLevel
	return &v, nil
}
