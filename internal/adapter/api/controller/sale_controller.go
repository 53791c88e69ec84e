package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/settlement"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// SaleController gerencia as requisições de venda
type SaleController struct {
	engine *settlement.Engine
	logger logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(engine *settlement.Engine, logger logger.Logger) *SaleController {
	return &SaleController{
		engine: engine,
		logger: logger,
	}
}

// Settle fecha uma venda no caixa aberto
// @Summary Fechar venda
// @Description Valida estoque e pagamentos, baixa o estoque e, para convênio, gera a conta a receber. Tudo ou nada.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body dto.SettleSaleRequest true "Itens, pagamentos e desconto"
// @Success 201 {object} dto.SettleSaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Produto ou cliente não encontrado"
// @Failure 409 {object} dto.ErrorResponse "Sem caixa aberto ou estoque insuficiente"
// @Failure 422 {object} dto.ErrorResponse "Pagamento insuficiente ou limite de crédito excedido"
// @Router /sales [post]
func (c *SaleController) Settle(ctx *gin.Context) {
	var req dto.SettleSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	settleReq, err := req.ToSettleRequest()
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	settleReq.SellerID = actorID(ctx, settleReq.SellerID)
	if err := dto.CheckIDs(settleReq.SellerID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	res, err := c.engine.SettleSale(ctx.Request.Context(), settleReq)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToSettleSaleResponse(res))
}

// Get retorna uma venda com itens e pagamentos
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.engine.GetSale(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List retorna as vendas filtradas por caixa, cliente e período
// @Summary Listar vendas
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param till_id query string false "ID do caixa"
// @Param customer_id query string false "ID do cliente"
// @Param period query string false "Período" Enums(today, yesterday, last7days, month, lastmonth, year, all, custom)
// @Param from query string false "Início (AAAA-MM-DD)"
// @Param to query string false "Fim (AAAA-MM-DD)"
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	p, from, to, err := parseRange(ctx)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	pg := pagination(ctx)

	sales, total, err := c.engine.ListSales(ctx.Request.Context(), settlement.ListFilter{
		TillID:     ctx.Query("till_id"),
		CustomerID: ctx.Query("customer_id"),
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

	res := dto.SaleListResponse{
		Data:     make([]dto.SaleResponse, 0, len(sales)),
		PageMeta: pg.Meta(total),
	}
	for _, s := range sales {
		res.Data = append(res.Data, dto.ToSaleResponse(s))
	}
	ctx.JSON(http.StatusOK, res)
}
