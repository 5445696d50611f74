package api

import (
	"errors"
	"net/http"

	reqdto "vetclinic/internal/handler/dto/request"
	resdto "vetclinic/internal/handler/dto/response"
	"vetclinic/internal/handler/middleware"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/commands"
	"vetclinic/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderCommands commands.OrderCommands
	orderQueries  queries.OrderQueries
}

func NewOrderHandler(orderCommands commands.OrderCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		orderCommands: orderCommands,
		orderQueries:  orderQueries,
	}
}

// @Summary Checkout
// @Description Convert the cart into an order, reserving stock for every line
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	orderID, err := h.orderCommands.Checkout(c.Request.Context(), actor, req)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CheckoutResponse{OrderID: orderID})
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary List own orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.OrderListResponse
// @Router /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items, err := h.orderQueries.ListByCustomer(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderListItems(items))
}

// @Summary Cancel order
// @Description Cancel the order and restock every line
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	if err := h.orderCommands.CancelOrder(c.Request.Context(), actor, id); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Advance order status
// @Description Move the order forward through its fulfillment states. Staff only.
// @Tags orders
// @Accept json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body reqdto.AdvanceOrderRequest true "Target status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (h *OrderHandler) Advance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req reqdto.AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.orderCommands.AdvanceOrder(c.Request.Context(), actor, id, req.Status); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Mark order paid
// @Tags orders
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Router /orders/{id}/pay [post]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	if err := h.orderCommands.MarkOrderPaid(c.Request.Context(), actor, id); err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order data"})
	case errors.Is(err, errs.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cart is empty"})
	case errors.Is(err, errs.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for one or more items"})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Order state does not allow this operation"})
	case errors.Is(err, errs.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, errs.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
	case errors.Is(err, errs.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, errs.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this order"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
