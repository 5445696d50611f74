package response

import (
	"time"

	"vetclinic/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"priceCents"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	CustomerID      uuid.UUID           `json:"customerId"`
	TotalCents      int64               `json:"totalCents"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	ShippingAddress string              `json:"shippingAddress"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type OrderListResponse struct {
	ID         uuid.UUID `json:"id"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	copyView(&resp, v)
	if resp.Items == nil {
		resp.Items = []OrderItemResponse{}
	}
	return &resp
}

func FromOrderListItems(items []*queries.OrderListItem) []*OrderListResponse {
	out := make([]*OrderListResponse, 0, len(items))
	for _, item := range items {
		var resp OrderListResponse
		copyView(&resp, item)
		out = append(out, &resp)
	}
	return out
}

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"orderId"`
}
