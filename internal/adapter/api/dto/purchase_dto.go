package dto

import (
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/intake"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest representa um item recebido
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity" example:"12"`
	UnitCost  decimal.Decimal `json:"unit_cost" swaggertype:"string" example:"3.20"`
}

// PurchaseRequest representa o registro de uma compra. Sem creator_id o
// usuário autenticado é o responsável.
type PurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
	CreatorID  string                `json:"creator_id"`
}

// CheckIDs valida fornecedor, criador e produtos informados
func (r PurchaseRequest) CheckIDs() error {
	ids := []string{r.SupplierID, r.CreatorID}
	for _, it := range r.Items {
		ids = append(ids, it.ProductID)
	}
	return CheckIDs(ids...)
}

// ItemRequests converte os itens para o motor de compras
func (r PurchaseRequest) ItemRequests() []intake.ItemRequest {
	out := make([]intake.ItemRequest, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, intake.ItemRequest{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	return out
}

// CreatePurchaseResponse representa a compra registrada
type CreatePurchaseResponse struct {
	PurchaseID string          `json:"purchase_id"`
	Total      string          `json:"total"`
	Status     purchase.Status `json:"status"`
}

// PurchaseItemResponse representa um item de compra
type PurchaseItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitCost  string `json:"unit_cost"`
	LineTotal string `json:"line_total"`
}

// PurchaseResponse representa uma compra
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	SupplierID string                 `json:"supplier_id"`
	CreatedBy  string                 `json:"created_by"`
	Total      string                 `json:"total"`
	Status     purchase.Status        `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	Items      []PurchaseItemResponse `json:"items"`
}

// PurchaseListResponse representa a resposta de lista de compras
type PurchaseListResponse struct {
	Data []PurchaseResponse `json:"data"`
	PageMeta
}

// SupplierRequest representa os dados de um fornecedor
type SupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	Document    string `json:"document" binding:"required" example:"12.345.678/0001-90"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ContactName string `json:"contact_name"`
}

// ToFields converte a requisição para os campos do domínio
func (r SupplierRequest) ToFields() purchase.SupplierFields {
	return purchase.SupplierFields{
		Name:        r.Name,
		Document:    r.Document,
		Email:       r.Email,
		Phone:       r.Phone,
		ContactName: r.ContactName,
	}
}

// SupplierResponse representa um fornecedor
type SupplierResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Document    string    `json:"document"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ContactName string    `json:"contact_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToPurchaseResponse converte uma compra do domínio para DTO de resposta
func ToPurchaseResponse(p *purchase.Purchase) PurchaseResponse {
	res := PurchaseResponse{
		ID:         p.ID,
		SupplierID: p.SupplierID,
		CreatedBy:  p.CreatedBy,
		Total:      Money(p.Total),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Items:      make([]PurchaseItemResponse, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		res.Items = append(res.Items, PurchaseItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  Money(it.UnitCost),
			LineTotal: Money(it.LineTotal),
		})
	}
	return res
}

// ToSupplierResponse converte um fornecedor do domínio para DTO de resposta
func ToSupplierResponse(s *purchase.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Document:    s.Document,
		Email:       s.Email,
		Phone:       s.Phone,
		ContactName: s.ContactName,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
