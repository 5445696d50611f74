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

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Get own cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	view, err := h.cartQueries.GetForCustomer(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add item to cart
// @Description Adds a product to the cart, capturing the current price
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Item to add"
// @Success 201 {object} resdto.AddCartItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	itemID, err := h.cartCommands.AddItem(c.Request.Context(), actor, req)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.AddCartItemResponse{ItemID: itemID})
}

// @Summary Change cart item quantity
// @Tags cart
// @Accept json
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Param request body reqdto.UpdateCartItemRequest true "New quantity"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items/{itemId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	var req reqdto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.cartCommands.UpdateItemQuantity(c.Request.Context(), actor, itemID, req.Quantity); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Remove cart item
// @Tags cart
// @Security BearerAuth
// @Param itemId path string true "Cart item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /cart/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	if err := h.cartCommands.RemoveItem(c.Request.Context(), actor, itemID); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Clear cart
// @Tags cart
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.cartCommands.ClearCart(c.Request.Context(), actor); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart data"})
	case errors.Is(err, errs.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, errs.ErrCartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart or item not found"})
	case errors.Is(err, errs.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this cart"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
