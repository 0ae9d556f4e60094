package sanction

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	sanctions := r.Group("/sanctions")
	{
		sanctions.GET("", handler.GetAll)
		sanctions.GET("/:id", handler.GetById)
		sanctions.POST("", handler.Create)
		sanctions.PUT("/:id", handler.Update)
		sanctions.DELETE("/:id", handler.Delete)
	}
}
