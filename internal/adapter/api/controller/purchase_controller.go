package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/intake"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// PurchaseController gerencia as requisições de compras e fornecedores
type PurchaseController struct {
	intake *intake.Engine
	logger logger.Logger
}

// NewPurchaseController cria uma nova instância de PurchaseController
func NewPurchaseController(intake *intake.Engine, logger logger.Logger) *PurchaseController {
	return &PurchaseController{
		intake: intake,
		logger: logger,
	}
}

// Create registra uma compra e dá entrada no estoque
// @Summary Registrar compra
// @Description Soma as quantidades ao estoque e atualiza o preço de custo de cada produto
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body dto.PurchaseRequest true "Fornecedor e itens"
// @Success 201 {object} dto.CreatePurchaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Fornecedor ou produto não encontrado"
// @Router /purchases [post]
func (c *PurchaseController) Create(ctx *gin.Context) {
	var req dto.PurchaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	if err := req.CheckIDs(); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	p, err := c.intake.RecordPurchase(ctx.Request.Context(), req.SupplierID, req.ItemRequests(), actorID(ctx, req.CreatorID))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreatePurchaseResponse{
		PurchaseID: p.ID,
		Total:      dto.Money(p.Total),
		Status:     p.Status,
	})
}

// Get retorna uma compra com seus itens
// @Summary Buscar compra
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da compra"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /purchases/{id} [get]
func (c *PurchaseController) Get(ctx *gin.Context) {
	p, err := c.intake.GetPurchase(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToPurchaseResponse(p))
}

// List retorna as compras filtradas por fornecedor, status e período
// @Summary Listar compras
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param supplier_id query string false "ID do fornecedor"
// @Param status query string false "Status" Enums(pending, completed, cancelled)
// @Param period query string false "Período" Enums(today, yesterday, last7days, month, lastmonth, year, all, custom)
// @Param from query string false "Início (AAAA-MM-DD)"
// @Param to query string false "Fim (AAAA-MM-DD)"
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.PurchaseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /purchases [get]
func (c *PurchaseController) List(ctx *gin.Context) {
	p, from, to, err := parseRange(ctx)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	pg := pagination(ctx)

	purchases, total, err := c.intake.ListPurchases(ctx.Request.Context(), intake.ListFilter{
		SupplierID: ctx.Query("supplier_id"),
		Status:     purchase.Status(ctx.Query("status")),
		Period:     p,
		From:       from,
		To:         to,
		Limit:      pg.PageSize,
		Offset:     pg.Offset(),
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	res := dto.PurchaseListResponse{
		Data:     make([]dto.PurchaseResponse, 0, len(purchases)),
		PageMeta: pg.Meta(total),
	}
	for _, p := range purchases {
		res.Data = append(res.Data, dto.ToPurchaseResponse(p))
	}
	ctx.JSON(http.StatusOK, res)
}

// Complete marca uma compra pendente como concluída
// @Summary Concluir compra
// @Description Altera apenas o status; o estoque já entrou no registro da compra
// @Tags purchases
// @Security BearerAuth
// @Param id path string true "ID da compra"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Transição de status inválida"
// @Router /purchases/{id}/complete [patch]
func (c *PurchaseController) Complete(ctx *gin.Context) {
	if err := c.intake.MarkPurchaseCompleted(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Cancel cancela uma compra e estorna o estoque
// @Summary Cancelar compra
// @Tags purchases
// @Security BearerAuth
// @Param id path string true "ID da compra"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Transição inválida ou unidades já vendidas"
// @Router /purchases/{id}/cancel [patch]
func (c *PurchaseController) Cancel(ctx *gin.Context) {
	if err := c.intake.CancelPurchase(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
