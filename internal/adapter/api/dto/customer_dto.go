package dto

import (
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// CustomerRequest representa a requisição de cliente
type CustomerRequest struct {
	PersonType   customer.PersonType `json:"person_type" example:"PF"`
	Name         string              `json:"name" binding:"required"`
	Document     string              `json:"document" example:"123.456.789-09"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	CreditLimit  decimal.Decimal     `json:"credit_limit" swaggertype:"string" example:"300.00"`
	PaymentTerm  int                 `json:"payment_term" example:"30"`
	Observations string              `json:"observations"`
}

// ToFields converte a requisição para os campos do domínio
func (r CustomerRequest) ToFields() customer.Fields {
	return customer.Fields{
		PersonType:   r.PersonType,
		Name:         r.Name,
		Document:     r.Document,
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		CreditLimit:  r.CreditLimit,
		PaymentTerm:  r.PaymentTerm,
		Observations: r.Observations,
	}
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID           string              `json:"id"`
	PersonType   customer.PersonType `json:"person_type"`
	Name         string              `json:"name"`
	Document     string              `json:"document"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	CreditLimit  string              `json:"credit_limit" example:"300.00"`
	PaymentTerm  int                 `json:"payment_term"`
	TotalOwed    string              `json:"total_owed" example:"42.90"`
	Status       customer.Status     `json:"status"`
	Observations string              `json:"observations"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// CustomerListResponse representa a resposta de lista de clientes
type CustomerListResponse struct {
	Data []CustomerResponse `json:"data"`
	PageMeta
}

// CreditResponse representa a situação de crédito do cliente
type CreditResponse struct {
	CustomerID  string `json:"customer_id"`
	CreditLimit string `json:"credit_limit"`
	TotalOwed   string `json:"total_owed"`
	Available   string `json:"available"`
}

// PaymentRequest representa um pagamento de conta a receber
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"40.00"`
	Method string          `json:"method" binding:"required" example:"pix"`
}

// PaymentResponse representa um pagamento registrado
type PaymentResponse struct {
	PaymentID    string    `json:"payment_id"`
	ReceivableID string    `json:"receivable_id"`
	Amount       string    `json:"amount"`
	Method       string    `json:"method"`
	PaidAt       time.Time `json:"paid_at"`
}

// FIFOPaymentResponse representa um pagamento distribuído entre as contas
type FIFOPaymentResponse struct {
	PaymentIDs []string          `json:"payment_ids"`
	Payments   []PaymentResponse `json:"payments"`
	Leftover   string            `json:"leftover" example:"0.00"`
}

// ReceivableResponse representa uma conta a receber
type ReceivableResponse struct {
	ID          string                    `json:"id"`
	CustomerID  string                    `json:"customer_id"`
	SaleID      *string                   `json:"sale_id"`
	Amount      string                    `json:"amount"`
	PaidAmount  string                    `json:"paid_amount"`
	Outstanding string                    `json:"outstanding"`
	DueDate     string                    `json:"due_date" example:"2024-04-01"`
	Status      customer.ReceivableStatus `json:"status"`
	PaidAt      *time.Time                `json:"paid_at"`
	CreatedAt   time.Time                 `json:"created_at"`
	Payments    []PaymentResponse         `json:"payments"`
}

// ToCustomerResponse converte um cliente do domínio para DTO de resposta
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		PersonType:   c.PersonType,
		Name:         c.Name,
		Document:     c.Document,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		CreditLimit:  Money(c.CreditLimit),
		PaymentTerm:  c.PaymentTerm,
		TotalOwed:    Money(c.TotalOwed),
		Status:       c.Status,
		Observations: c.Observations,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToPaymentResponse converte um pagamento do domínio para DTO de resposta
func ToPaymentResponse(p *customer.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.ID,
		ReceivableID: p.ReceivableID,
		Amount:       Money(p.Amount),
		Method:       p.Method,
		PaidAt:       p.PaidAt,
	}
}

// ToFIFOPaymentResponse converte o resultado de um pagamento distribuído
func ToFIFOPaymentResponse(payments []*customer.Payment, leftover decimal.Decimal) FIFOPaymentResponse {
	res := FIFOPaymentResponse{
		PaymentIDs: make([]string, 0, len(payments)),
		Payments:   make([]PaymentResponse, 0, len(payments)),
		Leftover:   Money(leftover),
	}
	for _, p := range payments {
		res.PaymentIDs = append(res.PaymentIDs, p.ID)
		res.Payments = append(res.Payments, ToPaymentResponse(p))
	}
	return res
}

// ToReceivableResponse converte uma conta a receber do domínio
func ToReceivableResponse(r *customer.Receivable) ReceivableResponse {
	res := ReceivableResponse{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		SaleID:      r.SaleID,
		Amount:      Money(r.Amount),
		PaidAmount:  Money(r.PaidAmount),
		Outstanding: Money(r.Outstanding()),
		DueDate:     r.DueDate.Format(DateLayout),
		Status:      r.Status,
		PaidAt:      r.PaidAt,
		CreatedAt:   r.CreatedAt,
		Payments:    make([]PaymentResponse, 0, len(r.Payments)),
	}
	for i := range r.Payments {
		res.Payments = append(res.Payments, ToPaymentResponse(&r.Payments[i]))
	}
	return res
}
