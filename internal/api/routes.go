package api

import (
	"log"

	"github.com/dynbilliards/backend/internal/api/handlers"
	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/dynbilliards/backend/internal/config"
	"github.com/dynbilliards/backend/internal/middleware"
	"github.com/dynbilliards/backend/internal/runs"
	"github.com/dynbilliards/backend/internal/ws"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, catalog *billiards.Catalog, journal *runs.Journal, wsServer *ws.Server) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/config", handlers.GetConfig(cfg))

		tables := v1.Group("/tables")
		{
			tables.GET("", handlers.ListTables(catalog))
			tables.GET("/:type", handlers.GetTable(catalog))
			tables.GET("/:type/preview", handlers.TablePreview(catalog, cfg.PreviewDir))
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", handlers.CreateSession(cfg, catalog))
			sessions.GET("/ws", middleware.WebSocketCORSCheck(cfg), wsServer.HandleWebSocket)
		}

		v1.GET("/runs", handlers.ListRuns(journal))
	}
}
