package response

import (
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type InventoryResponse struct {
	ProductID          uuid.UUID `json:"productId"`
	ProductName        string    `json:"productName"`
	RegisteredQuantity int       `json:"registeredQuantity"`
	RealQuantity       int       `json:"realQuantity"`
	MinStockLevel      int       `json:"minStockLevel"`
	MaxStockLevel      int       `json:"maxStockLevel"`
	LowStock           bool      `json:"lowStock"`
}

func FromInventoryView(v *queries.InventoryView) *InventoryResponse {
	var resp InventoryResponse
	copyView(&resp, v)
	return &resp
}

func FromInventoryViews(views []*queries.InventoryView) []*InventoryResponse {
	out := make([]*InventoryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromInventoryView(v))
	}
	return out
}
