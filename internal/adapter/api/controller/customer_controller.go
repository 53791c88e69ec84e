package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/ledger"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes e suas contas
type CustomerController struct {
	ledger *ledger.Service
	logger logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(ledger *ledger.Service, logger logger.Logger) *CustomerController {
	return &CustomerController{
		ledger: ledger,
		logger: logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cadastra um cliente com limite de crédito (convênio)
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Documento já cadastrado"
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	cust, err := c.ledger.CreateCustomer(ctx.Request.Context(), req.ToFields())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(cust))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	cust, err := c.ledger.GetCustomer(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// List retorna a lista de clientes
// @Summary Listar clientes
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Busca por nome ou documento"
// @Param active query bool false "Somente clientes ativos"
// @Param page query int false "Número da página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.CustomerListResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	pg := pagination(ctx)
	onlyActive, _ := strconv.ParseBool(ctx.Query("active"))

	customers, total, err := c.ledger.ListCustomers(ctx.Request.Context(), customer.Filter{
		Search:     ctx.Query("search"),
		OnlyActive: onlyActive,
		Limit:      pg.PageSize,
		Offset:     pg.Offset(),
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	res := dto.CustomerListResponse{
		Data:     make([]dto.CustomerResponse, 0, len(customers)),
		PageMeta: pg.Meta(total),
	}
	for _, cust := range customers {
		res.Data = append(res.Data, dto.ToCustomerResponse(cust))
	}
	ctx.JSON(http.StatusOK, res)
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description O documento não é alterado
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	cust, err := c.ledger.UpdateCustomer(ctx.Request.Context(), ctx.Param("id"), req.ToFields())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// UpdateStatus ativa ou desativa um cliente
// @Summary Ativar/desativar cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param status body dto.ActiveRequest true "Novo estado"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Documento em uso por outro cliente ativo"
// @Router /customers/{id}/status [patch]
func (c *CustomerController) UpdateStatus(ctx *gin.Context) {
	var req dto.ActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}
	cust, err := c.ledger.SetCustomerActive(ctx.Request.Context(), ctx.Param("id"), *req.Active)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// Delete desativa um cliente. O histórico de contas é preservado.
// @Summary Desativar cliente
// @Tags customers
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	if _, err := c.ledger.SetCustomerActive(ctx.Request.Context(), ctx.Param("id"), false); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Credit retorna o limite, o total em aberto e o crédito disponível
// @Summary Crédito do cliente
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CreditResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/credit [get]
func (c *CustomerController) Credit(ctx *gin.Context) {
	id := ctx.Param("id")
	cust, err := c.ledger.GetCustomer(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	available, err := c.ledger.AvailableCredit(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CreditResponse{
		CustomerID:  id,
		CreditLimit: dto.Money(cust.CreditLimit),
		TotalOwed:   dto.Money(cust.CreditLimit.Sub(available)),
		Available:   dto.Money(available),
	})
}

// Receivables lista as contas a receber do cliente
// @Summary Contas do cliente
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Success 200 {array} dto.ReceivableResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/receivables [get]
func (c *CustomerController) Receivables(ctx *gin.Context) {
	receivables, err := c.ledger.ListReceivables(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	out := make([]dto.ReceivableResponse, 0, len(receivables))
	for _, r := range receivables {
		out = append(out, dto.ToReceivableResponse(r))
	}
	ctx.JSON(http.StatusOK, out)
}

// Pay distribui um pagamento entre as contas em aberto, da mais antiga para a mais nova
// @Summary Pagamento FIFO
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do cliente"
// @Param payment body dto.PaymentRequest true "Pagamento"
// @Success 201 {object} dto.FIFOPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Nenhuma conta em aberto"
// @Router /customers/{id}/payments [post]
func (c *CustomerController) Pay(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	res, err := c.ledger.ApplyPaymentFIFO(ctx.Request.Context(), ctx.Param("id"), req.Amount, req.Method)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToFIFOPaymentResponse(res.Payments, res.Leftover))
}
