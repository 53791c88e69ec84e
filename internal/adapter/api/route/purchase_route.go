package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
)

// SetupPurchaseRoutes registra as rotas de compras e fornecedores
func SetupPurchaseRoutes(router *gin.RouterGroup, purchaseController *controller.PurchaseController, supplierController *controller.SupplierController, guard Guard) {
	purchases := router.Group("/purchases")
	purchases.Use(guard.Authenticated(), guard.Roles(managers...), controller.RequireID(purchase.ErrPurchaseNotFound))
	{
		purchases.POST("", purchaseController.Create)
		purchases.GET("", purchaseController.List)
		purchases.GET("/:id", purchaseController.Get)
		purchases.PATCH("/:id/complete", purchaseController.Complete)
		purchases.PATCH("/:id/cancel", purchaseController.Cancel)
	}

	suppliers := router.Group("/suppliers")
	suppliers.Use(guard.Authenticated(), guard.Roles(managers...), controller.RequireID(purchase.ErrSupplierNotFound))
	{
		suppliers.POST("", supplierController.Create)
		suppliers.GET("", supplierController.List)
		suppliers.GET("/:id", supplierController.Get)
		suppliers.PUT("/:id", supplierController.Update)
		suppliers.DELETE("/:id", supplierController.Delete)
	}
}
