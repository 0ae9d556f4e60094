package debt

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	debts := r.Group("/debts")
	{
		debts.GET("", handler.GetAll)
		debts.GET("/:id", handler.GetById)
		debts.POST("", handler.Create)
		debts.PUT("/:id", handler.Update)
		debts.POST("/:id/settle", handler.Settle)
		debts.DELETE("/:id", handler.Delete)
	}
}
