package advance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	advances := r.Group("/advances")
	{
		advances.GET("", handler.GetAll)
		advances.GET("/:id", handler.GetById)
		advances.POST("", handler.Create)
		advances.PUT("/:id", handler.Update)
		advances.POST("/:id/settle", handler.Settle)
		advances.DELETE("/:id", handler.Delete)
	}
}
