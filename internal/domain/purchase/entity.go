package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrPurchaseNotFound        = apperror.New(apperror.KindNotFound, "compra não encontrada")
	ErrEmptyItems              = apperror.Validation("a compra precisa de ao menos um item")
	ErrInvalidQuantity         = apperror.Validation("quantidade deve ser maior ou igual a 1")
	ErrNegativeCost            = apperror.Validation("custo unitário não pode ser negativo")
	ErrEmptySupplier           = apperror.Validation("fornecedor não informado")
	ErrEmptyCreator            = apperror.Validation("responsável pela compra não informado")
	ErrInvalidStatusTransition = apperror.New(apperror.KindInvalidStatusTransition, "transição de status inválida")
)

// Status representa a situação de uma compra
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Purchase representa uma entrada de mercadorias de um fornecedor.
// O estoque é incrementado uma única vez, no registro da compra.
type Purchase struct {
	ID         string          `json:"id"`
	SupplierID string          `json:"supplier_id"`
	CreatedBy  string          `json:"created_by"`
	Total      decimal.Decimal `json:"total"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Items      []Item          `json:"items"`
}

// Item é uma linha da compra
type Item struct {
	ID         string          `json:"id"`
	PurchaseID string          `json:"purchase_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// NewPurchase valida os itens e calcula o total
func NewPurchase(supplierID, createdBy string, items []Item, at time.Time) (*Purchase, error) {
	if supplierID == "" {
		return nil, ErrEmptySupplier
	}
	if createdBy == "" {
		return nil, ErrEmptyCreator
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	p := &Purchase{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		CreatedBy:  createdBy,
		Status:     StatusPending,
		CreatedAt:  at,
		UpdatedAt:  at,
	}

	total := decimal.Zero
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if it.UnitCost.IsNegative() {
			return nil, ErrNegativeCost
		}
		if err := domain.CheckCents(it.UnitCost); err != nil {
			return nil, err
		}
		it.ID = uuid.New().String()
		it.PurchaseID = p.ID
		it.LineTotal = it.UnitCost.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(it.LineTotal)
		p.Items = append(p.Items, it)
	}
	p.Total = total
	return p, nil
}

// Complete marca a compra como concluída. Não altera estoque.
func (p *Purchase) Complete(at time.Time) error {
	if p.Status != StatusPending {
		return ErrInvalidStatusTransition
	}
	p.Status = StatusCompleted
	p.UpdatedAt = at
	return nil
}

// Cancel cancela a compra. O chamador deve estornar o estoque dos itens.
func (p *Purchase) Cancel(at time.Time) error {
	if p.Status == StatusCancelled {
		return ErrInvalidStatusTransition
	}
	p.Status = StatusCancelled
	p.UpdatedAt = at
	return nil
}
