package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
)

// SetupTillRoutes registra as rotas de caixa e vendas
func SetupTillRoutes(router *gin.RouterGroup, tillController *controller.TillController, saleController *controller.SaleController, guard Guard) {
	tills := router.Group("/tills")
	tills.Use(guard.Authenticated(), controller.RequireID(till.ErrTillNotFound))
	{
		tills.POST("", tillController.Open)
		tills.GET("", tillController.List)
		tills.GET("/current", tillController.Current)
		tills.GET("/:id", tillController.Get)
		tills.GET("/:id/summary", tillController.Summary)
		tills.POST("/:id/close", tillController.Close)
	}

	sales := router.Group("/sales")
	sales.Use(guard.Authenticated(), controller.RequireID(sale.ErrSaleNotFound))
	{
		sales.POST("", saleController.Settle)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
	}
}
