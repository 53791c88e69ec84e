package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = apperror.Validation("nome não pode ser vazio")
	ErrEmptyCode         = apperror.Validation("código não pode ser vazio")
	ErrNegativePrice     = apperror.Validation("preço não pode ser negativo")
	ErrNegativeStock     = apperror.Validation("estoque não pode ser negativo")
	ErrProductNotFound   = apperror.New(apperror.KindNotFound, "produto não encontrado")
	ErrProductInactive   = apperror.New(apperror.KindProductInactive, "produto inativo")
	ErrDuplicateCode     = apperror.New(apperror.KindDuplicateCode, "já existe um produto ativo com este código")
	ErrInsufficientStock = apperror.New(apperror.KindInsufficientStock, "estoque insuficiente")
	ErrReferenced        = apperror.New(apperror.KindReferencedByTransaction, "produto possui vendas ou compras registradas")
	ErrCategoryNotFound  = apperror.New(apperror.KindCategoryNotFound, "categoria não encontrada")
	ErrCategoryInUse     = apperror.New(apperror.KindCategoryInUse, "categoria possui produtos vinculados")
	ErrDuplicateCategory = apperror.New(apperror.KindValidation, "já existe uma categoria com este nome")
	ErrEmptyCategoryName = apperror.Validation("nome da categoria não pode ser vazio")
)

// Product representa um item do catálogo
type Product struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`        // Código de barras / código interno
	Name        string          `json:"name"`        // Nome
	Description string          `json:"description"` // Descrição
	SellPrice   decimal.Decimal `json:"sell_price"`  // Preço de venda
	CostPrice   decimal.Decimal `json:"cost_price"`  // Preço de custo (última compra)
	Stock       int             `json:"stock"`       // Estoque atual em unidades
	MinStock    int             `json:"min_stock"`   // Estoque mínimo
	CategoryID  *string         `json:"category_id"` // Categoria (opcional)
	ExpiresAt   *time.Time      `json:"expires_at"`  // Validade (opcional)
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Fields são os dados editáveis de um produto
type Fields struct {
	Code        string
	Name        string
	Description string
	SellPrice   decimal.Decimal
	CostPrice   decimal.Decimal
	Stock       int
	MinStock    int
	CategoryID  *string
	ExpiresAt   *time.Time
}

// NewProduct cria um novo produto ativo
func NewProduct(f Fields) (*Product, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	if f.Stock < 0 {
		return nil, ErrNegativeStock
	}

	now := time.Now()
	p := &Product{
		ID:        uuid.New().String(),
		Stock:     f.Stock,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.apply(f)
	return p, nil
}

// Update altera os dados cadastrais. O estoque só muda por vendas, compras e
// ajustes, portanto Fields.Stock é ignorado aqui.
func (p *Product) Update(f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}
	p.apply(f)
	p.UpdatedAt = time.Now()
	return nil
}

// IsCritical indica se o estoque atingiu o mínimo
func (p *Product) IsCritical() bool {
	return p.Active && p.Stock <= p.MinStock
}

// ExpiresBefore indica se a validade vence antes de t
func (p *Product) ExpiresBefore(t time.Time) bool {
	return p.Active && p.ExpiresAt != nil && p.ExpiresAt.Before(t)
}

func (p *Product) apply(f Fields) {
	p.Code = strings.TrimSpace(f.Code)
	p.Name = strings.TrimSpace(f.Name)
	p.Description = f.Description
	p.SellPrice = f.SellPrice
	p.CostPrice = f.CostPrice
	p.MinStock = f.MinStock
	p.CategoryID = f.CategoryID
	p.ExpiresAt = f.ExpiresAt
}

func (f Fields) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(f.Code) == "" {
		return ErrEmptyCode
	}
	if f.SellPrice.IsNegative() || f.CostPrice.IsNegative() {
		return ErrNegativePrice
	}
	if err := domain.CheckCents(f.SellPrice, f.CostPrice); err != nil {
		return err
	}
	if f.MinStock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Category agrupa produtos
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCategory cria uma nova categoria
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	now := time.Now()
	return &Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
