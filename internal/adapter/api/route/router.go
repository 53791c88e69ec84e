// Package route registra as rotas HTTP da API.
package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
	"github.com/hugohenrick/pdv-conveniencia/pkg/auth"
)

// Controllers agrupa os controllers registrados no roteador
type Controllers struct {
	Auth       *controller.AuthController
	User       *controller.UserController
	Product    *controller.ProductController
	Category   *controller.CategoryController
	Customer   *controller.CustomerController
	Receivable *controller.ReceivableController
	Till       *controller.TillController
	Sale       *controller.SaleController
	Purchase   *controller.PurchaseController
	Supplier   *controller.SupplierController
	Health     *controller.HealthController
}

// Guard monta os middlewares de autenticação e autorização. Com Required
// falso, requisições sem token passam sem usuário.
type Guard struct {
	JWT      *auth.JWTService
	Required bool
}

// Authenticated valida o token JWT
func (g Guard) Authenticated() gin.HandlerFunc {
	return auth.JWTAuthMiddleware(g.JWT, g.Required)
}

// Roles restringe a rota aos papéis informados
func (g Guard) Roles(roles ...user.Role) gin.HandlerFunc {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return auth.RoleAuthMiddleware(g.Required, names...)
}

// managers são os papéis que alteram cadastros e estoque
var managers = []user.Role{user.RoleAdmin, user.RoleManager}

// Setup registra todas as rotas sob basePath
func Setup(router *gin.Engine, basePath string, c Controllers, guard Guard) {
	router.GET("/health", c.Health.Health)

	api := router.Group(basePath)
	api.GET("/health", c.Health.Health)

	SetupAuthRoutes(api, c.Auth, guard)
	SetupUserRoutes(api, c.User, guard)
	SetupCatalogRoutes(api, c.Product, c.Category, guard)
	SetupCustomerRoutes(api, c.Customer, c.Receivable, guard)
	SetupTillRoutes(api, c.Till, c.Sale, guard)
	SetupPurchaseRoutes(api, c.Purchase, c.Supplier, guard)
}
