package dto

import (
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductRequest representa os dados de criação ou alteração de produto
type ProductRequest struct {
	Code        string          `json:"code" binding:"required" example:"7891000100103"`
	Name        string          `json:"name" binding:"required" example:"Refrigerante lata 350ml"`
	Description string          `json:"description"`
	SellPrice   decimal.Decimal `json:"sell_price" swaggertype:"string" example:"5.50"`
	CostPrice   decimal.Decimal `json:"cost_price" swaggertype:"string" example:"3.20"`
	Stock       int             `json:"stock" example:"24"`
	MinStock    int             `json:"min_stock" example:"6"`
	CategoryID  *string         `json:"category_id"`
	ExpiresAt   *string         `json:"expires_at" example:"2024-12-31"`
}

// ToFields converte a requisição para os campos do domínio
func (r ProductRequest) ToFields() (product.Fields, error) {
	expiresAt, err := ParseDate(r.ExpiresAt)
	if err != nil {
		return product.Fields{}, err
	}
	if r.CategoryID != nil {
		if err := CheckIDs(*r.CategoryID); err != nil {
			return product.Fields{}, err
		}
	}
	return product.Fields{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		SellPrice:   r.SellPrice,
		CostPrice:   r.CostPrice,
		Stock:       r.Stock,
		MinStock:    r.MinStock,
		CategoryID:  r.CategoryID,
		ExpiresAt:   expiresAt,
	}, nil
}

// ActiveRequest ativa ou desativa um cadastro
type ActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SellPrice   string    `json:"sell_price" example:"5.50"`
	CostPrice   string    `json:"cost_price" example:"3.20"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
	CategoryID  *string   `json:"category_id"`
	ExpiresAt   *string   `json:"expires_at"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse representa a resposta de lista de produtos
type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
	PageMeta
}

// StockAdjustRequest representa um ajuste manual de estoque
type StockAdjustRequest struct {
	Delta int `json:"delta" binding:"required" example:"-2"`
}

// StockResponse representa o saldo após um ajuste
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// CategoryRequest representa os dados de uma categoria
type CategoryRequest struct {
	Name        string `json:"name" binding:"required" example:"Bebidas"`
	Description string `json:"description"`
}

// CategoryResponse representa a resposta de categoria
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converte um produto do domínio para DTO de resposta
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		SellPrice:   Money(p.SellPrice),
		CostPrice:   Money(p.CostPrice),
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		CategoryID:  p.CategoryID,
		ExpiresAt:   FormatDate(p.ExpiresAt),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converte uma lista de produtos
func ToProductResponses(products []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ToCategoryResponse converte uma categoria do domínio para DTO de resposta
func ToCategoryResponse(c *product.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
