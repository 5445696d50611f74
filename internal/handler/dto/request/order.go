package request

type AdvanceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}
