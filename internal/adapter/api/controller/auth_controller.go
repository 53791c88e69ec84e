package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/account"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/hugohenrick/pdv-conveniencia/pkg/auth"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	accounts *account.Service
	logger   logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(accounts *account.Service, logger logger.Logger) *AuthController {
	return &AuthController{
		accounts: accounts,
		logger:   logger,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.accounts.Login(ctx.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, toLoginResponse(session))
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Description Aceita um token expirado com assinatura válida
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBindError(ctx, err)
		return
	}

	session, err := c.accounts.Refresh(ctx.Request.Context(), request.RefreshToken)
	if err != nil {
		if err == auth.ErrInvalidToken || err == auth.ErrInvalidClaims {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, apperror.KindUnauthorized, "Token inválido", err.Error()))
			return
		}
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, toLoginResponse(session))
}

// Me retorna o usuário autenticado
// @Summary Usuário atual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	current, ok := auth.GetCurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, apperror.KindUnauthorized, "Autenticação requerida", ""))
		return
	}

	u, err := c.accounts.GetUser(ctx.Request.Context(), current.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// SetupAdmin cria o primeiro administrador da loja
// @Summary Configuração inicial
// @Description Só funciona enquanto não houver usuários cadastrados
// @Tags auth
// @Accept json
// @Produce json
// @Param admin body dto.SetupAdminRequest true "Dados do administrador"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Dados inválidos ou configuração já realizada"
// @Router /setup/admin [post]
func (c *AuthController) SetupAdmin(ctx *gin.Context) {
	var request dto.SetupAdminRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBindError(ctx, err)
		return
	}

	u, err := c.accounts.SetupAdmin(ctx.Request.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

func toLoginResponse(s *account.Session) dto.LoginResponse {
	return dto.LoginResponse{
		User:         dto.ToUserResponse(s.User),
		AccessToken:  s.Token,
		RefreshToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}
