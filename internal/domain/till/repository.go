package till

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
)

// Repository define as operações de persistência de caixas
type Repository interface {
	// Create grava um caixa aberto. Deve falhar com ErrTillAlreadyOpen se
	// outro caixa aberto existir.
	Create(ctx context.Context, t *Till) error

	// FindByID busca um caixa pelo ID
	FindByID(ctx context.Context, id string) (*Till, error)

	// FindByIDForUpdate busca um caixa bloqueando a linha
	FindByIDForUpdate(ctx context.Context, id string) (*Till, error)

	// FindOpen retorna o caixa aberto mais recente
	FindOpen(ctx context.Context) (*Till, error)

	// FindOpenForShare retorna o caixa aberto com bloqueio compartilhado,
	// impedindo o fechamento concorrente durante uma venda
	FindOpenForShare(ctx context.Context) (*Till, error)

	// Close grava o fechamento apenas se o caixa ainda estiver aberto.
	// Retorna false quando nenhuma linha foi alterada.
	Close(ctx context.Context, t *Till) (bool, error)

	// List lista caixas abertos no período, mais recentes primeiro
	List(ctx context.Context, r period.Range) ([]*Till, error)

	// SalesSummary agrega as vendas do caixa
	SalesSummary(ctx context.Context, tillID string) (*SalesSummary, error)

	// PaymentTotals agrega os pagamentos do caixa por forma de pagamento
	PaymentTotals(ctx context.Context, tillID string) ([]MethodTotal, error)
}
