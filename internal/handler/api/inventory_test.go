//go:build unit

package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"vetclinic/internal/domain/user"
	"vetclinic/internal/handler/api"
	resdto "vetclinic/internal/handler/dto/response"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/usecase/queries"
	"vetclinic/tests/common/httptest"
	queriesmock "vetclinic/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type InventoryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockInventoryQueries
	handler     *api.InventoryHandler
	actorRole   user.Role
}

func (s *InventoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockInventoryQueries(s.mockCtrl)
	s.handler = api.NewInventoryHandler(s.mockQueries)

	s.actorRole = user.RoleStaff

	// Stand-in for the auth middleware.
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", s.actorRole)
	})

	s.router.GET("/inventory/low-stock", s.handler.ListLowStock)
	s.router.GET("/inventory/:productId", s.handler.Get)
}

func (s *InventoryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInventoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(InventoryHandlerTestSuite))
}

func (s *InventoryHandlerTestSuite) TestGet() {
	productID := uuid.New()
	url := fmt.Sprintf("/inventory/%s", productID)

	s.Run("success: returns the inventory record", func() {
		view := &queries.InventoryView{
			ProductID:          productID,
			ProductName:        "Worming Tablets",
			RegisteredQuantity: 4,
			RealQuantity:       4,
			MinStockLevel:      5,
			MaxStockLevel:      50,
			LowStock:           true,
		}
		s.mockQueries.EXPECT().GetByProduct(gomock.Any(), gomock.Any(), productID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response resdto.InventoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(productID, response.ProductID)
		s.True(response.LowStock)
	})

	s.Run("error: 403 for customers", func() {
		s.actorRole = user.RoleCustomer
		s.mockQueries.EXPECT().GetByProduct(gomock.Any(), gomock.Any(), productID).
			Return(nil, errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 404 for an unknown product", func() {
		s.actorRole = user.RoleStaff
		s.mockQueries.EXPECT().GetByProduct(gomock.Any(), gomock.Any(), productID).
			Return(nil, errs.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})

	s.Run("error: 400 on malformed product ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/inventory/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product ID format")
	})
}

func (s *InventoryHandlerTestSuite) TestListLowStock() {
	url := "/inventory/low-stock"

	s.Run("success: returns low-stock records", func() {
		views := []*queries.InventoryView{
			{ProductID: uuid.New(), ProductName: "Worming Tablets", RegisteredQuantity: 2, MinStockLevel: 5, LowStock: true},
			{ProductID: uuid.New(), ProductName: "Flea Treatment", RegisteredQuantity: 5, MinStockLevel: 5, LowStock: true},
		}
		s.mockQueries.EXPECT().ListLowStock(gomock.Any(), gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.InventoryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("error: 403 for customers", func() {
		s.actorRole = user.RoleCustomer
		s.mockQueries.EXPECT().ListLowStock(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}
