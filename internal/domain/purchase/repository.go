package purchase

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
)

// Filter define os critérios de listagem de compras
type Filter struct {
	SupplierID string
	Status     Status
	Range      period.Range
	Limit      int
	Offset     int
}

// Repository define as operações de persistência de compras
type Repository interface {
	// Create grava a compra com seus itens
	Create(ctx context.Context, p *Purchase) error

	// FindByID busca uma compra com seus itens
	FindByID(ctx context.Context, id string) (*Purchase, error)

	// FindByIDForUpdate busca uma compra bloqueando a linha
	FindByIDForUpdate(ctx context.Context, id string) (*Purchase, error)

	// UpdateStatus grava a nova situação
	UpdateStatus(ctx context.Context, p *Purchase) error

	// List lista compras com itens, mais recentes primeiro
	List(ctx context.Context, filter Filter) ([]*Purchase, int, error)
}

// SupplierRepository define as operações de persistência de fornecedores
type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Supplier, error)
	ExistsDocument(ctx context.Context, document, excludeID string) (bool, error)
	List(ctx context.Context, search string) ([]*Supplier, error)
}
