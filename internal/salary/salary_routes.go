package salary

import (
	"github.com/sims96/lesims-hrm-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	salaries := r.Group("/salaries")
	{
		salaries.GET("", handler.GetAll)
		salaries.GET("/:id", handler.GetById)
		salaries.PUT("/:id", handler.Update)
		salaries.POST("/:id/pay", handler.MarkAsPaid)
		salaries.DELETE("/:id", handler.Delete)
	}

	runs := r.Group("/payroll-runs")
	{
		runs.POST("", middleware.Idempotency(rdb), handler.RunPayroll)
		runs.GET("/:year/:month/progress", handler.GetRunProgress)
	}
}
