package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/intake"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// SupplierController gerencia as requisições relacionadas a fornecedores
type SupplierController struct {
	intake *intake.Engine
	logger logger.Logger
}

// NewSupplierController cria uma nova instância de SupplierController
func NewSupplierController(intake *intake.Engine, logger logger.Logger) *SupplierController {
	return &SupplierController{
		intake: intake,
		logger: logger,
	}
}

// Create cria um fornecedor
// @Summary Criar fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body dto.SupplierRequest true "Dados do fornecedor"
// @Success 201 {object} dto.SupplierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "CNPJ já cadastrado"
// @Router /suppliers [post]
func (c *SupplierController) Create(ctx *gin.Context) {
	var req dto.SupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	s, err := c.intake.CreateSupplier(ctx.Request.Context(), req.ToFields())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToSupplierResponse(s))
}

// Get retorna um fornecedor
// @Summary Buscar fornecedor
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 200 {object} dto.SupplierResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /suppliers/{id} [get]
func (c *SupplierController) Get(ctx *gin.Context) {
	s, err := c.intake.GetSupplier(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSupplierResponse(s))
}

// List lista os fornecedores
// @Summary Listar fornecedores
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Busca por nome ou CNPJ"
// @Success 200 {array} dto.SupplierResponse
// @Router /suppliers [get]
func (c *SupplierController) List(ctx *gin.Context) {
	suppliers, err := c.intake.ListSuppliers(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.ToSupplierResponse(s))
	}
	ctx.JSON(http.StatusOK, out)
}

// Update atualiza um fornecedor
// @Summary Atualizar fornecedor
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Param supplier body dto.SupplierRequest true "Dados do fornecedor"
// @Success 200 {object} dto.SupplierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /suppliers/{id} [put]
func (c *SupplierController) Update(ctx *gin.Context) {
	var req dto.SupplierRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	s, err := c.intake.UpdateSupplier(ctx.Request.Context(), ctx.Param("id"), req.ToFields())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSupplierResponse(s))
}

// Delete remove um fornecedor sem compras
// @Summary Excluir fornecedor
// @Tags suppliers
// @Security BearerAuth
// @Param id path string true "ID do fornecedor"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Fornecedor com compras"
// @Router /suppliers/{id} [delete]
func (c *SupplierController) Delete(ctx *gin.Context) {
	if err := c.intake.DeleteSupplier(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
