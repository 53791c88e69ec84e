package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/excel"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// ProductController gerencia as requisições relacionadas a produtos
type ProductController struct {
	catalog *catalog.Service
	logger  logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(catalog *catalog.Service, logger logger.Logger) *ProductController {
	return &ProductController{
		catalog: catalog,
		logger:  logger,
	}
}

// Create cria um novo produto
// @Summary Criar produto
// @Description Cadastra um produto no catálogo
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Categoria não encontrada"
// @Failure 409 {object} dto.ErrorResponse "Código duplicado"
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	p, err := c.catalog.CreateProduct(ctx.Request.Context(), fields)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// Get retorna um produto pelo ID
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.catalog.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// GetByCode retorna um produto ativo pelo código de barras
// @Summary Buscar produto por código
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param code path string true "Código do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/code/{code} [get]
func (c *ProductController) GetByCode(ctx *gin.Context) {
	p, err := c.catalog.GetProductByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// List retorna a lista de produtos
// @Summary Listar produtos
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param search query string false "Busca por nome ou código"
// @Param category_id query string false "Filtrar por categoria"
// @Param active query bool false "Somente produtos ativos"
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.ProductListResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	pg := pagination(ctx)
	onlyActive, _ := strconv.ParseBool(ctx.Query("active"))

	products, total, err := c.catalog.ListProducts(ctx.Request.Context(), product.Filter{
		Search:     ctx.Query("search"),
		CategoryID: ctx.Query("category_id"),
		OnlyActive: onlyActive,
		Limit:      pg.PageSize,
		Offset:     pg.Offset(),
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ProductListResponse{
		Data:     dto.ToProductResponses(products),
		PageMeta: pg.Meta(total),
	})
}

// Update atualiza um produto
// @Summary Atualizar produto
// @Description Atualiza os dados cadastrais. O estoque não é alterado por esta rota.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	p, err := c.catalog.UpdateProduct(ctx.Request.Context(), ctx.Param("id"), fields)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// UpdateStatus ativa ou desativa um produto
// @Summary Ativar/desativar produto
// @Tags products
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param status body dto.ActiveRequest true "Novo estado"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Código em uso por outro produto ativo"
// @Router /products/{id}/status [patch]
func (c *ProductController) UpdateStatus(ctx *gin.Context) {
	var req dto.ActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	if err := c.catalog.SetProductActive(ctx.Request.Context(), ctx.Param("id"), *req.Active); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AdjustStock soma um delta ao estoque do produto
// @Summary Ajustar estoque
// @Description Ajuste manual (perdas, inventário). O saldo nunca fica negativo.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param adjust body dto.StockAdjustRequest true "Quantidade a somar (negativa para baixa)"
// @Success 200 {object} dto.StockResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Estoque insuficiente"
// @Router /products/{id}/stock [patch]
func (c *ProductController) AdjustStock(ctx *gin.Context) {
	var req dto.StockAdjustRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	id := ctx.Param("id")
	stock, err := c.catalog.AdjustStock(ctx.Request.Context(), id, req.Delta)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StockResponse{ProductID: id, Stock: stock})
}

// Delete remove um produto
// @Summary Excluir produto
// @Description Exclusão definitiva. Produtos com vendas ou compras devem ser desativados.
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Produto referenciado"
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.catalog.DeleteProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CriticalStock lista os produtos com estoque no mínimo ou abaixo dele
// @Summary Estoque crítico
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProductResponse
// @Router /products/critical-stock [get]
func (c *ProductController) CriticalStock(ctx *gin.Context) {
	products, err := c.catalog.CriticalStock(ctx.Request.Context())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// Expiring lista os produtos que vencem dentro da janela informada
// @Summary Produtos a vencer
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param days query int false "Janela em dias (padrão configurado)"
// @Success 200 {array} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /products/expiring [get]
func (c *ProductController) Expiring(ctx *gin.Context) {
	var within time.Duration
	if raw := ctx.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			respondError(ctx, c.logger, apperror.Validation("parâmetro days inválido"))
			return
		}
		within = time.Duration(days) * 24 * time.Hour
	}

	products, err := c.catalog.ExpiringProducts(ctx.Request.Context(), within)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToProductResponses(products))
}

// Import cadastra produtos a partir de uma planilha xlsx
// @Summary Importar produtos
// @Description Colunas aceitas: código, nome, preço venda, preço custo, estoque, estoque mínimo, validade, categoria id
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Planilha .xlsx"
// @Success 200 {object} catalog.ImportResult
// @Failure 400 {object} dto.ErrorResponse
// @Router /products/import [post]
func (c *ProductController) Import(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		respondBindError(ctx, err)
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	defer file.Close()

	rows, err := excel.ParseProductRows(file)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	res, err := c.catalog.ImportProducts(ctx.Request.Context(), rows)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
