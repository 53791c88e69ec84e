package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName            = apperror.Validation("nome não pode ser vazio")
	ErrEmptyDocument        = apperror.Validation("documento não pode ser vazio")
	ErrNegativeCreditLimit  = apperror.Validation("limite de crédito não pode ser negativo")
	ErrNegativePaymentTerm  = apperror.Validation("prazo de pagamento não pode ser negativo")
	ErrCustomerNotFound     = apperror.New(apperror.KindCustomerNotFound, "cliente não encontrado")
	ErrCustomerInactive     = apperror.New(apperror.KindValidation, "cliente inativo")
	ErrDuplicateTaxID       = apperror.New(apperror.KindDuplicateTaxID, "já existe um cliente ativo com este documento")
	ErrCreditLimitExceeded  = apperror.New(apperror.KindCreditLimitExceeded, "limite de crédito excedido")
	ErrNoPendingReceivables = apperror.New(apperror.KindNoPendingReceivables, "cliente não possui contas em aberto")
)

// PersonType define o tipo de pessoa (física ou jurídica)
type PersonType string

const (
	PersonTypePF PersonType = "PF" // Pessoa Física
	PersonTypePJ PersonType = "PJ" // Pessoa Jurídica
)

// Status representa o estado do cliente
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer representa um cliente com conta (convênio) na loja
type Customer struct {
	ID           string          `json:"id"`
	PersonType   PersonType      `json:"person_type"`  // Tipo de Pessoa (PF/PJ)
	Name         string          `json:"name"`         // Nome/Razão Social
	Document     string          `json:"document"`     // CPF/CNPJ
	Email        string          `json:"email"`        // Email
	Phone        string          `json:"phone"`        // Telefone
	Address      string          `json:"address"`      // Endereço
	CreditLimit  decimal.Decimal `json:"credit_limit"` // Limite de Crédito
	PaymentTerm  int             `json:"payment_term"` // Prazo de Pagamento (em dias)
	TotalOwed    decimal.Decimal `json:"total_owed"`   // Total em aberto, recalculado a partir das contas
	Status       Status          `json:"status"`
	Observations string          `json:"observations"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Fields são os dados editáveis de um cliente
type Fields struct {
	PersonType   PersonType
	Name         string
	Document     string
	Email        string
	Phone        string
	Address      string
	CreditLimit  decimal.Decimal
	PaymentTerm  int
	Observations string
}

// NewCustomer cria um novo cliente
func NewCustomer(f Fields) (*Customer, error) {
	if strings.TrimSpace(f.Document) == "" {
		return nil, ErrEmptyDocument
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	if f.PersonType == "" {
		f.PersonType = PersonTypePF
	}

	now := time.Now()
	c := &Customer{
		ID:        uuid.New().String(),
		Document:  strings.TrimSpace(f.Document),
		TotalOwed: decimal.Zero,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.apply(f)
	return c, nil
}

// IsActive verifica se o cliente está ativo
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Activate ativa o cliente
func (c *Customer) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate desativa o cliente
func (c *Customer) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Update atualiza os dados do cliente. O documento não é alterado.
func (c *Customer) Update(f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}
	if f.PersonType == "" {
		f.PersonType = c.PersonType
	}
	c.apply(f)
	c.UpdatedAt = time.Now()
	return nil
}

// DueDate calcula o vencimento padrão de uma venda a prazo
func (c *Customer) DueDate(from time.Time, defaultTermDays int) time.Time {
	days := c.PaymentTerm
	if days <= 0 {
		days = defaultTermDays
	}
	return from.AddDate(0, 0, days)
}

func (c *Customer) apply(f Fields) {
	c.PersonType = f.PersonType
	c.Name = strings.TrimSpace(f.Name)
	c.Email = f.Email
	c.Phone = f.Phone
	c.Address = f.Address
	c.CreditLimit = f.CreditLimit
	c.PaymentTerm = f.PaymentTerm
	c.Observations = f.Observations
}

func (f Fields) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyName
	}
	if f.CreditLimit.IsNegative() {
		return ErrNegativeCreditLimit
	}
	if err := domain.CheckCents(f.CreditLimit); err != nil {
		return err
	}
	if f.PaymentTerm < 0 {
		return ErrNegativePaymentTerm
	}
	return nil
}
