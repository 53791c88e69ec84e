package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrReceivableNotFound = apperror.New(apperror.KindNotFound, "conta a receber não encontrada")
	ErrInvalidAmount      = apperror.New(apperror.KindInvalidAmount, "valor deve ser maior que zero")
	ErrAlreadyPaid        = apperror.New(apperror.KindAlreadyPaid, "conta a receber já está quitada")
	ErrOverpayment        = apperror.New(apperror.KindOverpayment, "valor excede o saldo em aberto")
	ErrEmptyMethod        = apperror.Validation("forma de pagamento não informada")
)

// ReceivableStatus representa a situação de uma conta a receber
type ReceivableStatus string

const (
	ReceivablePending ReceivableStatus = "pending"
	ReceivablePartial ReceivableStatus = "partial"
	ReceivablePaid    ReceivableStatus = "paid"
)

// Receivable representa um valor devido pelo cliente (conta a receber)
type Receivable struct {
	ID         string           `json:"id"`
	CustomerID string           `json:"customer_id"`
	SaleID     *string          `json:"sale_id"`
	Amount     decimal.Decimal  `json:"amount"`
	PaidAmount decimal.Decimal  `json:"paid_amount"` // Soma dos pagamentos registrados
	DueDate    time.Time        `json:"due_date"`
	Status     ReceivableStatus `json:"status"`
	PaidAt     *time.Time       `json:"paid_at"`
	CreatedAt  time.Time        `json:"created_at"`
	Payments   []Payment        `json:"payments,omitempty"`
}

// Payment representa um pagamento (total ou parcial) de uma conta
type Payment struct {
	ID           string          `json:"id"`
	ReceivableID string          `json:"receivable_id"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	PaidAt       time.Time       `json:"paid_at"`
}

// NewReceivable cria uma conta pendente
func NewReceivable(customerID string, saleID *string, amount decimal.Decimal, dueDate, createdAt time.Time) (*Receivable, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := domain.CheckCents(amount); err != nil {
		return nil, err
	}
	return &Receivable{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		SaleID:     saleID,
		Amount:     amount,
		PaidAmount: decimal.Zero,
		DueDate:    dueDate,
		Status:     ReceivablePending,
		CreatedAt:  createdAt,
	}, nil
}

// Outstanding retorna o saldo em aberto
func (r *Receivable) Outstanding() decimal.Decimal {
	out := r.Amount.Sub(r.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// IsOpen indica se a conta ainda recebe pagamentos
func (r *Receivable) IsOpen() bool {
	return r.Status == ReceivablePending || r.Status == ReceivablePartial
}

// RegisterPayment aplica um pagamento e recalcula a situação.
// Uma conta quitada nunca volta para pendente ou parcial.
func (r *Receivable) RegisterPayment(amount decimal.Decimal, method string, at time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := domain.CheckCents(amount); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, ErrEmptyMethod
	}
	if r.Status == ReceivablePaid {
		return nil, ErrAlreadyPaid
	}
	if amount.GreaterThan(r.Outstanding()) {
		return nil, ErrOverpayment
	}

	r.PaidAmount = r.PaidAmount.Add(amount)
	if r.PaidAmount.GreaterThanOrEqual(r.Amount) {
		r.Status = ReceivablePaid
		paidAt := at
		r.PaidAt = &paidAt
	} else {
		r.Status = ReceivablePartial
	}

	p := Payment{
		ID:           uuid.New().String(),
		ReceivableID: r.ID,
		Amount:       amount,
		Method:       method,
		PaidAt:       at,
	}
	r.Payments = append(r.Payments, p)
	return &p, nil
}
