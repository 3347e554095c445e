package employee

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	employees := r.Group("/employees")
	{
		employees.GET("/", handler.GetAll)

		employees.GET("/options/",
			middleware.RateLimitByIP(5, 20), // ringan, dipanggil tiap form attendance dibuka
			handler.GetOptions,
		)

		employees.GET("/:id/", handler.GetByID)

		employees.POST("/",
			middleware.RateLimitByIP(2, 5),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id/", middleware.RateLimitByIP(2, 5), handler.Update)
		employees.PATCH("/:id/", middleware.RateLimitByIP(2, 5), handler.Patch)
		employees.DELETE("/:id/", middleware.RateLimitByIP(1, 3), handler.Delete)
	}
}
