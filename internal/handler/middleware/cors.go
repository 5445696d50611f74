package middleware

import (
	"log/slog"

	"vetclinic/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware opens the API to the clinic dashboard origins from
// CORS_ALLOW_ORIGINS. Credentials stay enabled for cookie-based auth.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	slog.Info("cors configured",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", cfg.AllowCredentials)

	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
