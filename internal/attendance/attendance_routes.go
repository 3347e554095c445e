package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("/", handler.GetAll)
		attendance.GET("/export/",
			middleware.RateLimitByIP(0.2, 2), // export berat, batasi
			handler.Export,
		)
		attendance.GET("/:id/", handler.GetByID)

		attendance.POST("/",
			middleware.RateLimitByIP(2, 10),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		attendance.PUT("/:id/", middleware.RateLimitByIP(2, 5), handler.Update)
		attendance.PATCH("/:id/", middleware.RateLimitByIP(2, 5), handler.Patch)
		attendance.DELETE("/:id/", middleware.RateLimitByIP(1, 3), handler.Delete)
	}
}
