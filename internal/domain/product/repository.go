package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Filter define os critérios de listagem de produtos
type Filter struct {
	Search     string // Busca por nome ou código
	CategoryID string
	OnlyActive bool
	Limit      int
	Offset     int
}

// Repository define as operações de persistência de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// Update atualiza os dados cadastrais de um produto
	Update(ctx context.Context, p *Product) error

	// Delete remove definitivamente um produto sem movimentações
	Delete(ctx context.Context, id string) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDForUpdate busca um produto bloqueando a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Product, error)

	// FindByCode busca um produto ativo pelo código
	FindByCode(ctx context.Context, code string) (*Product, error)

	// ExistsActiveCode verifica se há outro produto ativo com o código
	ExistsActiveCode(ctx context.Context, code, excludeID string) (bool, error)

	// List lista produtos e retorna o total sem paginação
	List(ctx context.Context, filter Filter) ([]*Product, int, error)

	// SetStock grava o novo saldo de estoque
	SetStock(ctx context.Context, id string, stock int) error

	// SetCostPrice grava o preço de custo da última compra
	SetCostPrice(ctx context.Context, id string, cost decimal.Decimal) error

	// SetActive ativa ou inativa um produto
	SetActive(ctx context.Context, id string, active bool) error

	// ListCritical lista produtos ativos com estoque menor ou igual ao mínimo
	ListCritical(ctx context.Context) ([]*Product, error)

	// ListExpiringBefore lista produtos ativos com validade anterior a t
	ListExpiringBefore(ctx context.Context, t time.Time) ([]*Product, error)

	// CountByCategory conta produtos (ativos ou não) da categoria
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// CategoryRepository define as operações de persistência de categorias
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}
