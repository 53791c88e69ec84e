package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
)

// SetupCustomerRoutes registra as rotas de clientes e contas a receber
func SetupCustomerRoutes(router *gin.RouterGroup, customerController *controller.CustomerController, receivableController *controller.ReceivableController, guard Guard) {
	customers := router.Group("/customers")
	customers.Use(guard.Authenticated(), controller.RequireID(customer.ErrCustomerNotFound))
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.PATCH("/:id/status", customerController.UpdateStatus)
		customers.DELETE("/:id", guard.Roles(managers...), customerController.Delete)
		customers.GET("/:id/credit", customerController.Credit)
		customers.GET("/:id/receivables", customerController.Receivables)
		customers.POST("/:id/payments", customerController.Pay)
	}

	receivables := router.Group("/receivables")
	receivables.Use(guard.Authenticated(), controller.RequireID(customer.ErrReceivableNotFound))
	{
		receivables.GET("/:id", receivableController.Get)
		receivables.POST("/:id/payments", receivableController.Pay)
	}
}
