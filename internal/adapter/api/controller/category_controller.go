package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// CategoryController gerencia as requisições relacionadas a categorias
type CategoryController struct {
	catalog *catalog.Service
	logger  logger.Logger
}

// NewCategoryController cria uma nova instância de CategoryController
func NewCategoryController(catalog *catalog.Service, logger logger.Logger) *CategoryController {
	return &CategoryController{
		catalog: catalog,
		logger:  logger,
	}
}

// Create cria uma categoria
// @Summary Criar categoria
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CategoryRequest true "Dados da categoria"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	cat, err := c.catalog.CreateCategory(ctx.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// Get retorna uma categoria
// @Summary Buscar categoria
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	cat, err := c.catalog.GetCategory(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// List lista as categorias
// @Summary Listar categorias
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.catalog.ListCategories(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.ToCategoryResponse(cat))
	}
	ctx.JSON(http.StatusOK, out)
}

// Update atualiza uma categoria
// @Summary Atualizar categoria
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Param category body dto.CategoryRequest true "Dados da categoria"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	cat, err := c.catalog.UpdateCategory(ctx.Request.Context(), ctx.Param("id"), req.Name, req.Description)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// Delete remove uma categoria sem produtos
// @Summary Excluir categoria
// @Tags categories
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Categoria em uso"
// @Router /categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	if err := c.catalog.DeleteCategory(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
