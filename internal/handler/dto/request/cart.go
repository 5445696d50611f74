package request

import "github.com/google/uuid"

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	PaymentMethod   string `json:"payment_method" binding:"required"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}
