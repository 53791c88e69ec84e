package dto

import (
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/settlement"
	"github.com/shopspring/decimal"
)

// SaleItemRequest representa um item vendido
type SaleItemRequest struct {
	ProductID string `json:"product_id" example:"3f1c2a9e-0d7b-4a53-9a59-5b0e3c1d2f10"`
	Quantity  int    `json:"quantity" example:"2"`
}

// TenderRequest representa uma forma de pagamento da venda
type TenderRequest struct {
	Method sale.Method     `json:"method" example:"cash" enums:"cash,debit,credit,pix,store_credit"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"50.00"`
}

// SettleSaleRequest representa o fechamento de uma venda. Sem seller_id o
// usuário autenticado é o vendedor.
type SettleSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	Tenders       []TenderRequest   `json:"tenders"`
	Discount      decimal.Decimal   `json:"discount" swaggertype:"string" example:"0.00"`
	SellerID      string            `json:"seller_id"`
	CustomerID    *string           `json:"customer_id"`
	CreditDueDate *string           `json:"credit_due_date" example:"2024-04-10"`
}

// ToSettleRequest converte a requisição para o motor de vendas
func (r SettleSaleRequest) ToSettleRequest() (settlement.SettleRequest, error) {
	dueDate, err := ParseDate(r.CreditDueDate)
	if err != nil {
		return settlement.SettleRequest{}, err
	}
	req := settlement.SettleRequest{
		Items:         make([]settlement.ItemRequest, 0, len(r.Items)),
		Tenders:       make([]settlement.TenderRequest, 0, len(r.Tenders)),
		Discount:      r.Discount,
		SellerID:      r.SellerID,
		CreditDueDate: dueDate,
	}
	if r.CustomerID != nil && *r.CustomerID != "" {
		if err := CheckIDs(*r.CustomerID); err != nil {
			return settlement.SettleRequest{}, err
		}
		req.CustomerID = r.CustomerID
	}
	for _, it := range r.Items {
		if err := CheckIDs(it.ProductID); err != nil {
			return settlement.SettleRequest{}, err
		}
		req.Items = append(req.Items, settlement.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	for _, t := range r.Tenders {
		req.Tenders = append(req.Tenders, settlement.TenderRequest{Method: t.Method, Amount: t.Amount})
	}
	return req, nil
}

// SettleSaleResponse representa o resultado da venda
type SettleSaleResponse struct {
	SaleID   string `json:"sale_id"`
	NetTotal string `json:"net_total" example:"45.00"`
	Change   string `json:"change" example:"5.00"`
}

// SaleItemResponse representa um item de venda
type SaleItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

// SalePaymentResponse representa um pagamento de venda
type SalePaymentResponse struct {
	Method     sale.Method `json:"method"`
	Amount     string      `json:"amount"`
	CustomerID *string     `json:"customer_id,omitempty"`
}

// SaleResponse representa uma venda
type SaleResponse struct {
	ID         string                `json:"id"`
	TillID     string                `json:"till_id"`
	SellerID   string                `json:"seller_id"`
	CustomerID *string               `json:"customer_id"`
	GrossTotal string                `json:"gross_total"`
	Discount   string                `json:"discount"`
	NetTotal   string                `json:"net_total"`
	Status     string                `json:"status"`
	CreatedAt  time.Time             `json:"created_at"`
	Items      []SaleItemResponse    `json:"items"`
	Payments   []SalePaymentResponse `json:"payments"`
}

// SaleListResponse representa a resposta de lista de vendas
type SaleListResponse struct {
	Data []SaleResponse `json:"data"`
	PageMeta
}

// ToSettleSaleResponse converte o resultado do motor de vendas
func ToSettleSaleResponse(r *settlement.SettleResult) SettleSaleResponse {
	return SettleSaleResponse{
		SaleID:   r.SaleID,
		NetTotal: Money(r.NetTotal),
		Change:   Money(r.Change),
	}
}

// ToSaleResponse converte uma venda do domínio para DTO de resposta
func ToSaleResponse(s *sale.Sale) SaleResponse {
	res := SaleResponse{
		ID:         s.ID,
		TillID:     s.TillID,
		SellerID:   s.SellerID,
		CustomerID: s.CustomerID,
		GrossTotal: Money(s.Gross),
		Discount:   Money(s.Discount),
		NetTotal:   Money(s.Net),
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		Items:      make([]SaleItemResponse, 0, len(s.Items)),
		Payments:   make([]SalePaymentResponse, 0, len(s.Payments)),
	}
	for _, it := range s.Items {
		res.Items = append(res.Items, SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: Money(it.UnitPrice),
			LineTotal: Money(it.LineTotal),
		})
	}
	for _, p := range s.Payments {
		res.Payments = append(res.Payments, SalePaymentResponse{
			Method:     p.Method,
			Amount:     Money(p.Amount),
			CustomerID: p.CustomerID,
		})
	}
	return res
}
