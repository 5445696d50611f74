package queries

import (
	"context"

	"vetclinic/internal/domain/user"
	"vetclinic/internal/pkg/errs"

	"github.com/google/uuid"
)

type InventoryQueries interface {
	GetByProduct(ctx context.Context, actor user.Actor, productID uuid.UUID) (*InventoryView, error)
	// ListLowStock surfaces products at or below their minimum stock level.
	ListLowStock(ctx context.Context, actor user.Actor) ([]*InventoryView, error)
}

type InventoryViewRepo interface {
	FindInventoryView(ctx context.Context, productID uuid.UUID) (*InventoryView, error)
	ListLowStock(ctx context.Context) ([]*InventoryView, error)
}

type inventoryQueriesImpl struct {
	repo InventoryViewRepo
}

func NewInventoryQueries(repo InventoryViewRepo) InventoryQueries {
	return &inventoryQueriesImpl{repo: repo}
}

func (q *inventoryQueriesImpl) GetByProduct(ctx context.Context, actor user.Actor, productID uuid.UUID) (*InventoryView, error) {
	if !actor.IsStaff() {
		return nil, errs.ErrForbidden
	}
	return q.repo.FindInventoryView(ctx, productID)
}

func (q *inventoryQueriesImpl) ListLowStock(ctx context.Context, actor user.Actor) ([]*InventoryView, error) {
	if !actor.IsStaff() {
		return nil, errs.ErrForbidden
	}
	return q.repo.ListLowStock(ctx)
}
