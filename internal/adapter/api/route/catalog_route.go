package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
)

// SetupCatalogRoutes registra as rotas de produtos e categorias
func SetupCatalogRoutes(router *gin.RouterGroup, productController *controller.ProductController, categoryController *controller.CategoryController, guard Guard) {
	products := router.Group("/products")
	products.Use(guard.Authenticated(), controller.RequireID(product.ErrProductNotFound))
	{
		products.GET("", productController.List)
		products.GET("/critical-stock", productController.CriticalStock)
		products.GET("/expiring", productController.Expiring)
		products.GET("/code/:code", productController.GetByCode)
		products.GET("/:id", productController.Get)

		products.POST("", guard.Roles(managers...), productController.Create)
		products.POST("/import", guard.Roles(managers...), productController.Import)
		products.PUT("/:id", guard.Roles(managers...), productController.Update)
		products.PATCH("/:id/status", guard.Roles(managers...), productController.UpdateStatus)
		products.PATCH("/:id/stock", guard.Roles(managers...), productController.AdjustStock)
		products.DELETE("/:id", guard.Roles(managers...), productController.Delete)
	}

	categories := router.Group("/categories")
	categories.Use(guard.Authenticated(), controller.RequireID(product.ErrCategoryNotFound))
	{
		categories.GET("", categoryController.List)
		categories.GET("/:id", categoryController.Get)

		categories.POST("", guard.Roles(managers...), categoryController.Create)
		categories.PUT("/:id", guard.Roles(managers...), categoryController.Update)
		categories.DELETE("/:id", guard.Roles(managers...), categoryController.Delete)
	}
}
