package response

import (
	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type CartItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"priceCents"`
}

type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	CustomerID uuid.UUID          `json:"customerId"`
	Items      []CartItemResponse `json:"items"`
	TotalCents int64              `json:"totalCents"`
}

func FromCartView(v *queries.CartView) *CartResponse {
	var resp CartResponse
	copyView(&resp, v)
	if resp.Items == nil {
		resp.Items = []CartItemResponse{}
	}
	return &resp
}

type AddCartItemResponse struct {
	ItemID uuid.UUID `json:"itemId"`
}
