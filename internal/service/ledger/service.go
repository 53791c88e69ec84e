// Package ledger mantém os clientes com conta na loja e suas contas a receber.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service implementa o livro de clientes
type Service struct {
	tx          domain.Transactor
	customers   customer.Repository
	receivables customer.ReceivableRepository
	logger      logger.Logger
	defaultTerm int
	now         func() time.Time
}

// NewService cria uma nova instância de Service. defaultTermDays é o prazo
// usado quando o cliente não tem prazo próprio.
func NewService(tx domain.Transactor, customers customer.Repository, receivables customer.ReceivableRepository, log logger.Logger, defaultTermDays int) *Service {
	if defaultTermDays <= 0 {
		defaultTermDays = 30
	}
	return &Service{
		tx:          tx,
		customers:   customers,
		receivables: receivables,
		logger:      log,
		defaultTerm: defaultTermDays,
		now:         time.Now,
	}
}

// FIFOResult descreve a distribuição de um pagamento entre as contas
type FIFOResult struct {
	Payments []*customer.Payment `json:"payments"`
	Leftover decimal.Decimal     `json:"leftover"` // Valor que sobrou sem conta para quitar
}

// CreateCustomer cadastra um cliente
func (s *Service) CreateCustomer(ctx context.Context, f customer.Fields) (*customer.Customer, error) {
	c, err := customer.NewCustomer(f)
	if err != nil {
		return nil, err
	}
	exists, err := s.customers.ExistsActiveDocument(ctx, c.Document, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar documento do cliente: %w", err)
	}
	if exists {
		return nil, customer.ErrDuplicateTaxID
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("cliente cadastrado", "customer_id", c.ID)
	return c, nil
}

// UpdateCustomer altera os dados de um cliente
func (s *Service) UpdateCustomer(ctx context.Context, id string, f customer.Fields) (*customer.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(f); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetCustomerActive ativa ou inativa um cliente
func (s *Service) SetCustomerActive(ctx context.Context, id string, active bool) (*customer.Customer, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		exists, err := s.customers.ExistsActiveDocument(ctx, c.Document, c.ID)
		if err != nil {
			return nil, fmt.Errorf("erro ao verificar documento do cliente: %w", err)
		}
		if exists {
			return nil, customer.ErrDuplicateTaxID
		}
		c.Activate()
	} else {
		c.Deactivate()
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCustomer busca um cliente pelo ID
func (s *Service) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// ListCustomers lista clientes com filtro e paginação
func (s *Service) ListCustomers(ctx context.Context, f customer.Filter) ([]*customer.Customer, int, error) {
	return s.customers.List(ctx, f)
}

// AvailableCredit retorna o limite menos o saldo em aberto das contas
// pendentes e parciais. Pode ser negativo se o limite foi reduzido.
func (s *Service) AvailableCredit(ctx context.Context, customerID string) (decimal.Decimal, error) {
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	open, err := s.receivables.OpenBalance(ctx, customerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao calcular saldo em aberto: %w", err)
	}
	return c.CreditLimit.Sub(open), nil
}

// DueDateFor calcula o vencimento padrão para o cliente
func (s *Service) DueDateFor(c *customer.Customer) time.Time {
	return c.DueDate(s.now(), s.defaultTerm)
}

// RecordReceivable cria uma conta pendente. Deve ser chamado dentro da
// transação da venda que originou a dívida.
func (s *Service) RecordReceivable(ctx context.Context, customerID string, saleID *string, amount decimal.Decimal, dueDate time.Time) (*customer.Receivable, error) {
	rec, err := customer.NewReceivable(customerID, saleID, amount, dueDate, s.now())
	if err != nil {
		return nil, err
	}
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.receivables.Create(ctx, rec); err != nil {
			return err
		}
		return s.refreshTotalOwed(ctx, customerID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("conta a receber registrada", "receivable_id", rec.ID, "customer_id", customerID, "amount", amount.String())
	return rec, nil
}

// ApplyPayment registra um pagamento em uma conta específica
func (s *Service) ApplyPayment(ctx context.Context, receivableID string, amount decimal.Decimal, method string) (*customer.Payment, error) {
	if !amount.IsPositive() {
		return nil, customer.ErrInvalidAmount
	}
	if err := domain.CheckCents(amount); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, customer.ErrEmptyMethod
	}

	var payment *customer.Payment
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		rec, err := s.receivables.FindByIDForUpdate(ctx, receivableID)
		if err != nil {
			return err
		}
		payment, err = s.pay(ctx, rec, amount, method)
		if err != nil {
			return err
		}
		return s.refreshTotalOwed(ctx, rec.CustomerID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pagamento registrado", "receivable_id", receivableID, "payment_id", payment.ID, "amount", amount.String())
	return payment, nil
}

// ApplyPaymentFIFO distribui o valor entre as contas em aberto do cliente,
// da que vence primeiro para a última
func (s *Service) ApplyPaymentFIFO(ctx context.Context, customerID string, amount decimal.Decimal, method string) (*FIFOResult, error) {
	if !amount.IsPositive() {
		return nil, customer.ErrInvalidAmount
	}
	if err := domain.CheckCents(amount); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, customer.ErrEmptyMethod
	}

	result := &FIFOResult{}
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.customers.FindByIDForUpdate(ctx, customerID); err != nil {
			return err
		}
		open, err := s.receivables.ListOpenForUpdate(ctx, customerID)
		if err != nil {
			return fmt.Errorf("erro ao listar contas em aberto: %w", err)
		}
		if len(open) == 0 {
			return customer.ErrNoPendingReceivables
		}

		remaining := amount
		for _, rec := range open {
			if !remaining.IsPositive() {
				break
			}
			portion := decimal.Min(remaining, rec.Outstanding())
			if !portion.IsPositive() {
				continue
			}
			p, err := s.pay(ctx, rec, portion, method)
			if err != nil {
				return err
			}
			result.Payments = append(result.Payments, p)
			remaining = remaining.Sub(portion)
		}
		result.Leftover = remaining
		return s.refreshTotalOwed(ctx, customerID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("pagamento distribuído", "customer_id", customerID, "payments", len(result.Payments), "leftover", result.Leftover.String())
	return result, nil
}

// GetReceivable busca uma conta com seus pagamentos
func (s *Service) GetReceivable(ctx context.Context, id string) (*customer.Receivable, error) {
	return s.receivables.FindByID(ctx, id)
}

// ListReceivables lista as contas de um cliente
func (s *Service) ListReceivables(ctx context.Context, customerID string) ([]*customer.Receivable, error) {
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.receivables.ListByCustomer(ctx, customerID)
}

func (s *Service) pay(ctx context.Context, rec *customer.Receivable, amount decimal.Decimal, method string) (*customer.Payment, error) {
	p, err := rec.RegisterPayment(amount, method, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.receivables.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	if err := s.receivables.UpdateStatus(ctx, rec); err != nil {
		return nil, err
	}
	return p, nil
}

// refreshTotalOwed recalcula o total devido a partir das contas
func (s *Service) refreshTotalOwed(ctx context.Context, customerID string) error {
	total, err := s.receivables.OpenBalance(ctx, customerID)
	if err != nil {
		return fmt.Errorf("erro ao recalcular total devido: %w", err)
	}
	return s.customers.SetTotalOwed(ctx, customerID, total)
}
