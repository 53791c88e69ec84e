package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/account"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	accounts *account.Service
	logger   logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(accounts *account.Service, logger logger.Logger) *UserController {
	return &UserController{
		accounts: accounts,
		logger:   logger,
	}
}

// Create cria um novo usuário
// @Summary Criar usuário
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email já cadastrado"
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.UserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	u, err := c.accounts.CreateUser(ctx.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// Get retorna um usuário pelo ID
// @Summary Buscar usuário
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	u, err := c.accounts.GetUser(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// List lista os usuários
// @Summary Listar usuários
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.UserListResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	pg := pagination(ctx)
	users, err := c.accounts.ListUsers(ctx.Request.Context(), pg.PageSize, pg.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	res := dto.UserListResponse{
		Data:     make([]dto.UserResponse, 0, len(users)),
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}
	for _, u := range users {
		res.Data = append(res.Data, dto.ToUserResponse(u))
	}
	ctx.JSON(http.StatusOK, res)
}

// UpdateStatus ativa ou desativa um usuário
// @Summary Alterar status do usuário
// @Tags users
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Param status body dto.UserStatusRequest true "Novo status"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id}/status [patch]
func (c *UserController) UpdateStatus(ctx *gin.Context) {
	var req dto.UserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	if err := c.accounts.SetUserStatus(ctx.Request.Context(), ctx.Param("id"), req.Status); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
