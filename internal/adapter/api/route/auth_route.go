package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
)

// SetupAuthRoutes configura as rotas para autenticação e configuração inicial
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, guard Guard) {
	authRouter := router.Group("/auth")
	{
		// Rotas públicas
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/refresh", authController.RefreshToken)

		authRouter.GET("/me", guard.Authenticated(), authController.Me)
	}

	// Criação do primeiro administrador, sem autenticação
	router.POST("/setup/admin", authController.SetupAdmin)
}

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController, guard Guard) {
	userRouter := router.Group("/users")
	userRouter.Use(guard.Authenticated(), guard.Roles(user.RoleAdmin), controller.RequireID(user.ErrUserNotFound))
	{
		userRouter.POST("", userController.Create)
		userRouter.GET("", userController.List)
		userRouter.GET("/:id", userController.Get)
		userRouter.PATCH("/:id/status", userController.UpdateStatus)
	}
}
