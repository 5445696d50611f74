package api

import (
	"errors"
	"net/http"

	resdto "vetclinic/internal/handler/dto/response"
	"vetclinic/internal/handler/middleware"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryQueries queries.InventoryQueries
}

func NewInventoryHandler(inventoryQueries queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{inventoryQueries: inventoryQueries}
}

// @Summary Get inventory record for a product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} resdto.InventoryResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /inventory/{productId} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	view, err := h.inventoryQueries.GetByProduct(c.Request.Context(), actor, productID)
	if err != nil {
		h.respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInventoryView(view))
}

// @Summary List low-stock products
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.InventoryResponse
// @Failure 403 {object} map[string]string
// @Router /inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	views, err := h.inventoryQueries.ListLowStock(c.Request.Context(), actor)
	if err != nil {
		h.respondInventoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromInventoryViews(views))
}

func (h *InventoryHandler) respondInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
