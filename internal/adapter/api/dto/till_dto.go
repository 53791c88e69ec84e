package dto

import (
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/shopspring/decimal"
)

// OpenTillRequest representa a abertura de caixa. Sem operator_id o
// usuário autenticado é o operador.
type OpenTillRequest struct {
	OpeningFloat decimal.Decimal `json:"opening_float" swaggertype:"string" example:"100.00"`
	OperatorID   string          `json:"operator_id"`
}

// OpenTillResponse representa o caixa aberto
type OpenTillResponse struct {
	TillID       string    `json:"till_id"`
	OperatorID   string    `json:"operator_id"`
	OpeningFloat string    `json:"opening_float"`
	OpenedAt     time.Time `json:"opened_at"`
}

// CloseTillRequest representa o fechamento de caixa
type CloseTillRequest struct {
	CountedAmount *decimal.Decimal `json:"counted_amount" swaggertype:"string" example:"120.00"`
}

// CloseTillResponse representa o caixa fechado
type CloseTillResponse struct {
	TillID        string    `json:"till_id"`
	ClosingTotal  string    `json:"closing_total" example:"125.00"`
	CountedAmount *string   `json:"counted_amount"`
	Difference    *string   `json:"difference" example:"-5.00"`
	ClosedAt      time.Time `json:"closed_at"`
}

// TillResponse representa um caixa
type TillResponse struct {
	ID            string      `json:"id"`
	OperatorID    string      `json:"operator_id"`
	Status        till.Status `json:"status"`
	OpenedAt      time.Time   `json:"opened_at"`
	OpeningFloat  string      `json:"opening_float"`
	ClosedAt      *time.Time  `json:"closed_at"`
	ClosingTotal  *string     `json:"closing_total"`
	CountedAmount *string     `json:"counted_amount"`
	Difference    *string     `json:"difference"`
}

// MethodTotalResponse representa o total de uma forma de pagamento
type MethodTotalResponse struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
	Total  string `json:"total"`
}

// TillSummaryResponse representa o resumo de vendas de um caixa
type TillSummaryResponse struct {
	TillID     string                `json:"till_id"`
	SalesCount int                   `json:"sales_count"`
	Gross      string                `json:"gross"`
	Discount   string                `json:"discount"`
	Net        string                `json:"net"`
	Methods    []MethodTotalResponse `json:"methods"`
}

// ToTillResponse converte um caixa do domínio para DTO de resposta
func ToTillResponse(t *till.Till) TillResponse {
	return TillResponse{
		ID:            t.ID,
		OperatorID:    t.OperatorID,
		Status:        t.Status(),
		OpenedAt:      t.OpenedAt,
		OpeningFloat:  Money(t.OpeningFloat),
		ClosedAt:      t.ClosedAt,
		ClosingTotal:  MoneyPtr(t.ClosingTotal),
		CountedAmount: MoneyPtr(t.CountedAmount),
		Difference:    MoneyPtr(t.Difference),
	}
}

// ToCloseTillResponse converte um caixa recém-fechado
func ToCloseTillResponse(t *till.Till) CloseTillResponse {
	res := CloseTillResponse{
		TillID:        t.ID,
		CountedAmount: MoneyPtr(t.CountedAmount),
		Difference:    MoneyPtr(t.Difference),
	}
	if t.ClosingTotal != nil {
		res.ClosingTotal = Money(*t.ClosingTotal)
	}
	if t.ClosedAt != nil {
		res.ClosedAt = *t.ClosedAt
	}
	return res
}

// ToTillSummaryResponse junta o resumo e os totais por forma de pagamento
func ToTillSummaryResponse(s *till.SalesSummary, methods []till.MethodTotal) TillSummaryResponse {
	res := TillSummaryResponse{
		TillID:     s.TillID,
		SalesCount: s.SalesCount,
		Gross:      Money(s.Gross),
		Discount:   Money(s.Discount),
		Net:        Money(s.Net),
		Methods:    make([]MethodTotalResponse, 0, len(methods)),
	}
	for _, m := range methods {
		res.Methods = append(res.Methods, MethodTotalResponse{Method: m.Method, Count: m.Count, Total: Money(m.Total)})
	}
	return res
}
