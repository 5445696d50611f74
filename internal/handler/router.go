package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vetclinic/internal/domain/user"
	"vetclinic/internal/handler/api"
	"vetclinic/internal/handler/middleware"
	"vetclinic/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	appointmentHandler *api.AppointmentHandler,
	cartHandler *api.CartHandler,
	orderHandler *api.OrderHandler,
	inventoryHandler *api.InventoryHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, appointmentHandler, cartHandler, orderHandler, inventoryHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	appointmentHandler *api.AppointmentHandler,
	cartHandler *api.CartHandler,
	orderHandler *api.OrderHandler,
	inventoryHandler *api.InventoryHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			staffOnly := authMiddleware.RequireRoleAtLeast(user.RoleStaff)
			adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.Book},
				{Method: http.MethodGet, Path: "", Handler: appointmentHandler.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.Get},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: appointmentHandler.Approve, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: appointmentHandler.Reject, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: appointmentHandler.Complete, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: appointmentHandler.Cancel},
				{Method: http.MethodPost, Path: "/:id/no-show", Handler: appointmentHandler.MarkNoShow, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/reschedule", Handler: appointmentHandler.Reschedule},
				{Method: http.MethodDelete, Path: "/:id", Handler: appointmentHandler.Delete, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		providers := apiGroup.Group("/providers")
		providers.Use(authMiddleware.RequireAuth())
		{
			addRoutes(providers, []route{
				{Method: http.MethodGet, Path: "/:providerId/appointments", Handler: appointmentHandler.ListProviderDay},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: cartHandler.Get},
				{Method: http.MethodDelete, Path: "", Handler: cartHandler.Clear},
				{Method: http.MethodPost, Path: "/items", Handler: cartHandler.AddItem},
				{Method: http.MethodPut, Path: "/items/:itemId", Handler: cartHandler.UpdateItem},
				{Method: http.MethodDelete, Path: "/items/:itemId", Handler: cartHandler.RemoveItem},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			staffOnly := authMiddleware.RequireRoleAtLeast(user.RoleStaff)
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "/checkout", Handler: orderHandler.Checkout},
				{Method: http.MethodGet, Path: "", Handler: orderHandler.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: orderHandler.Cancel},
				{Method: http.MethodPut, Path: "/:id/status", Handler: orderHandler.Advance, Mw: []gin.HandlerFunc{staffOnly}},
				{Method: http.MethodPost, Path: "/:id/pay", Handler: orderHandler.MarkPaid, Mw: []gin.HandlerFunc{staffOnly}},
			})
		}

		inventory := apiGroup.Group("/inventory")
		inventory.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleStaff))
		{
			addRoutes(inventory, []route{
				{Method: http.MethodGet, Path: "/low-stock", Handler: inventoryHandler.ListLowStock},
				{Method: http.MethodGet, Path: "/:productId", Handler: inventoryHandler.Get},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
