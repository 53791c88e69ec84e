package customer

import (
	"context"

	"github.com/shopspring/decimal"
)

// Filter define os critérios de listagem de clientes
type Filter struct {
	Search     string // Busca por nome ou documento
	OnlyActive bool
	Limit      int
	Offset     int
}

// Repository define as operações de persistência de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// Update atualiza um cliente existente
	Update(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByIDForUpdate busca um cliente bloqueando a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, id string) (*Customer, error)

	// ExistsActiveDocument verifica se outro cliente ativo usa o documento
	ExistsActiveDocument(ctx context.Context, document, excludeID string) (bool, error)

	// List lista clientes e retorna o total sem paginação
	List(ctx context.Context, filter Filter) ([]*Customer, int, error)

	// SetTotalOwed grava o total em aberto recalculado
	SetTotalOwed(ctx context.Context, id string, total decimal.Decimal) error
}

// ReceivableRepository define as operações de persistência de contas a receber
type ReceivableRepository interface {
	// Create cria uma conta a receber
	Create(ctx context.Context, r *Receivable) error

	// FindByID busca uma conta com seus pagamentos
	FindByID(ctx context.Context, id string) (*Receivable, error)

	// FindByIDForUpdate busca uma conta bloqueando a linha
	FindByIDForUpdate(ctx context.Context, id string) (*Receivable, error)

	// ListByCustomer lista todas as contas de um cliente, mais antigas primeiro
	ListByCustomer(ctx context.Context, customerID string) ([]*Receivable, error)

	// ListOpenForUpdate lista as contas pendentes ou parciais de um cliente
	// ordenadas por vencimento, bloqueando as linhas
	ListOpenForUpdate(ctx context.Context, customerID string) ([]*Receivable, error)

	// CreatePayment registra um pagamento
	CreatePayment(ctx context.Context, p *Payment) error

	// UpdateStatus grava a situação e a data de quitação
	UpdateStatus(ctx context.Context, r *Receivable) error

	// OpenBalance soma o saldo em aberto (valor menos pagamentos) das contas
	// pendentes e parciais do cliente
	OpenBalance(ctx context.Context, customerID string) (decimal.Decimal, error)
}
