package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	tillservice "github.com/hugohenrick/pdv-conveniencia/internal/service/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// TillController gerencia as requisições de abertura e fechamento de caixa
type TillController struct {
	tills  *tillservice.Service
	logger logger.Logger
}

// NewTillController cria uma nova instância de TillController
func NewTillController(tills *tillservice.Service, logger logger.Logger) *TillController {
	return &TillController{
		tills:  tills,
		logger: logger,
	}
}

// Open abre um novo caixa
// @Summary Abrir caixa
// @Description Só pode existir um caixa aberto por vez
// @Tags tills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param till body dto.OpenTillRequest true "Valor inicial"
// @Success 201 {object} dto.OpenTillResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Já existe um caixa aberto"
// @Router /tills [post]
func (c *TillController) Open(ctx *gin.Context) {
	var req dto.OpenTillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	operatorID := actorID(ctx, req.OperatorID)
	if err := dto.CheckIDs(operatorID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	t, err := c.tills.OpenTill(ctx.Request.Context(), req.OpeningFloat, operatorID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OpenTillResponse{
		TillID:       t.ID,
		OperatorID:   t.OperatorID,
		OpeningFloat: dto.Money(t.OpeningFloat),
		OpenedAt:     t.OpenedAt,
	})
}

// Close fecha um caixa aberto
// @Summary Fechar caixa
// @Description Fechamento = valor inicial + vendas líquidas. Com o valor contado, informa a diferença.
// @Tags tills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Param till body dto.CloseTillRequest false "Valor contado na gaveta"
// @Success 200 {object} dto.CloseTillResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Caixa já fechado"
// @Router /tills/{id}/close [post]
func (c *TillController) Close(ctx *gin.Context) {
	var req dto.CloseTillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(ctx, err)
		return
	}

	t, err := c.tills.CloseTill(ctx.Request.Context(), ctx.Param("id"), req.CountedAmount)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCloseTillResponse(t))
}

// Current retorna o caixa aberto
// @Summary Caixa atual
// @Tags tills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TillResponse
// @Failure 404 {object} dto.ErrorResponse "Nenhum caixa aberto"
// @Router /tills/current [get]
func (c *TillController) Current(ctx *gin.Context) {
	t, err := c.tills.CurrentTill(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, till.ErrNoOpenTill) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, apperror.KindNoOpenTill, apperror.MessageOf(err), ""))
			return
		}
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTillResponse(t))
}

// Get retorna um caixa pelo ID
// @Summary Buscar caixa
// @Tags tills
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Success 200 {object} dto.TillResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tills/{id} [get]
func (c *TillController) Get(ctx *gin.Context) {
	t, err := c.tills.GetTill(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTillResponse(t))
}

// Summary retorna o resumo de vendas e os totais por forma de pagamento
// @Summary Resumo do caixa
// @Tags tills
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Success 200 {object} dto.TillSummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tills/{id}/summary [get]
func (c *TillController) Summary(ctx *gin.Context) {
	id := ctx.Param("id")
	summary, err := c.tills.SalesSummary(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	methods, err := c.tills.PaymentMethodTotals(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTillSummaryResponse(summary, methods))
}

// List retorna o histórico de caixas
// @Summary Histórico de caixas
// @Tags tills
// @Produce json
// @Security BearerAuth
// @Param period query string false "Período" Enums(today, yesterday, last7days, month, lastmonth, year, all, custom)
// @Param from query string false "Início (AAAA-MM-DD), para period=custom"
// @Param to query string false "Fim (AAAA-MM-DD), para period=custom"
// @Success 200 {array} dto.TillResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tills [get]
func (c *TillController) List(ctx *gin.Context) {
	p, from, to, err := parseRange(ctx)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	tills, err := c.tills.ListTills(ctx.Request.Context(), p, from, to)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	out := make([]dto.TillResponse, 0, len(tills))
	for _, t := range tills {
		out = append(out, dto.ToTillResponse(t))
	}
	ctx.JSON(http.StatusOK, out)
}
