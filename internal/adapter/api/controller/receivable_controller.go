package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/ledger"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// ReceivableController gerencia as contas a receber
type ReceivableController struct {
	ledger *ledger.Service
	logger logger.Logger
}

// NewReceivableController cria uma nova instância de ReceivableController
func NewReceivableController(ledger *ledger.Service, logger logger.Logger) *ReceivableController {
	return &ReceivableController{
		ledger: ledger,
		logger: logger,
	}
}

// Get retorna uma conta a receber com seus pagamentos
// @Summary Buscar conta a receber
// @Tags receivables
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da conta"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /receivables/{id} [get]
func (c *ReceivableController) Get(ctx *gin.Context) {
	rec, err := c.ledger.GetReceivable(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToReceivableResponse(rec))
}

// Pay registra um pagamento em uma conta específica
// @Summary Pagar conta a receber
// @Tags receivables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da conta"
// @Param payment body dto.PaymentRequest true "Pagamento"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Conta já quitada"
// @Failure 422 {object} dto.ErrorResponse "Valor acima do saldo"
// @Router /receivables/{id}/payments [post]
func (c *ReceivableController) Pay(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	payment, err := c.ledger.ApplyPayment(ctx.Request.Context(), ctx.Param("id"), req.Amount, req.Method)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}
