package till

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrTillNotFound    = apperror.New(apperror.KindNotFound, "caixa não encontrado")
	ErrTillAlreadyOpen = apperror.New(apperror.KindTillAlreadyOpen, "já existe um caixa aberto")
	ErrNoOpenTill      = apperror.New(apperror.KindNoOpenTill, "nenhum caixa aberto")
	ErrAlreadyClosed   = apperror.New(apperror.KindAlreadyClosed, "caixa já está fechado")
	ErrInvalidAmount   = apperror.New(apperror.KindInvalidAmount, "valor inicial não pode ser negativo")
	ErrEmptyOperator   = apperror.Validation("operador não informado")
)

// Status é derivado da data de fechamento
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Till representa uma sessão de caixa
type Till struct {
	ID            string           `json:"id"`
	OperatorID    string           `json:"operator_id"`
	OpenedAt      time.Time        `json:"opened_at"`
	OpeningFloat  decimal.Decimal  `json:"opening_float"`  // Valor inicial
	ClosedAt      *time.Time       `json:"closed_at"`      // Nulo enquanto aberto
	ClosingTotal  *decimal.Decimal `json:"closing_total"`  // Valor inicial + vendas
	CountedAmount *decimal.Decimal `json:"counted_amount"` // Valor contado na gaveta
	Difference    *decimal.Decimal `json:"difference"`     // Contado - fechamento
}

// NewTill cria uma sessão aberta
func NewTill(openingFloat decimal.Decimal, operatorID string, openedAt time.Time) (*Till, error) {
	if openingFloat.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if err := domain.CheckCents(openingFloat); err != nil {
		return nil, err
	}
	if operatorID == "" {
		return nil, ErrEmptyOperator
	}
	return &Till{
		ID:           uuid.New().String(),
		OperatorID:   operatorID,
		OpenedAt:     openedAt,
		OpeningFloat: openingFloat,
	}, nil
}

// Status retorna a situação do caixa
func (t *Till) Status() Status {
	if t.ClosedAt == nil {
		return StatusOpen
	}
	return StatusClosed
}

// IsOpen indica se o caixa ainda aceita vendas
func (t *Till) IsOpen() bool {
	return t.ClosedAt == nil
}

// Close calcula o fechamento a partir do total líquido das vendas
func (t *Till) Close(salesNetTotal decimal.Decimal, counted *decimal.Decimal, at time.Time) error {
	if !t.IsOpen() {
		return ErrAlreadyClosed
	}
	if counted != nil && counted.IsNegative() {
		return apperror.New(apperror.KindInvalidAmount, "valor contado não pode ser negativo")
	}
	if counted != nil {
		if err := domain.CheckCents(*counted); err != nil {
			return err
		}
	}

	total := t.OpeningFloat.Add(salesNetTotal)
	closedAt := at
	t.ClosedAt = &closedAt
	t.ClosingTotal = &total
	if counted != nil {
		c := *counted
		diff := c.Sub(total)
		t.CountedAmount = &c
		t.Difference = &diff
	}
	return nil
}

// SalesSummary agrega as vendas de um caixa
type SalesSummary struct {
	TillID     string          `json:"till_id"`
	SalesCount int             `json:"sales_count"`
	Gross      decimal.Decimal `json:"gross"`
	Discount   decimal.Decimal `json:"discount"`
	Net        decimal.Decimal `json:"net"`
}

// MethodTotal agrega os pagamentos de um caixa por forma de pagamento
type MethodTotal struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}
