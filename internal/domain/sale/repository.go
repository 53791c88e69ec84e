package sale

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
)

// Filter define os critérios de listagem de vendas
type Filter struct {
	TillID     string
	CustomerID string
	Range      period.Range
	Limit      int
	Offset     int
}

// Repository define as operações de persistência de vendas
type Repository interface {
	// Create grava a venda com itens e pagamentos
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda com itens e pagamentos
	FindByID(ctx context.Context, id string) (*Sale, error)

	// List lista vendas com itens e pagamentos, mais recentes primeiro
	List(ctx context.Context, filter Filter) ([]*Sale, int, error)
}
