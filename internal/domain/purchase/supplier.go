package purchase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
)

var (
	ErrSupplierNotFound      = apperror.New(apperror.KindSupplierNotFound, "fornecedor não encontrado")
	ErrDuplicateDocument     = apperror.New(apperror.KindDuplicateDocument, "já existe um fornecedor com este CNPJ")
	ErrSupplierReferenced    = apperror.New(apperror.KindReferencedByTransaction, "fornecedor possui compras registradas")
	ErrEmptySupplierName     = apperror.Validation("nome do fornecedor não pode ser vazio")
	ErrEmptySupplierDocument = apperror.Validation("CNPJ do fornecedor não pode ser vazio")
)

// Supplier representa um fornecedor
type Supplier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Document    string    `json:"document"` // CNPJ
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	ContactName string    `json:"contact_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierFields são os dados editáveis de um fornecedor
type SupplierFields struct {
	Name        string
	Document    string
	Email       string
	Phone       string
	ContactName string
}

// NewSupplier cria um novo fornecedor
func NewSupplier(f SupplierFields) (*Supplier, error) {
	if strings.TrimSpace(f.Document) == "" {
		return nil, ErrEmptySupplierDocument
	}
	if strings.TrimSpace(f.Name) == "" {
		return nil, ErrEmptySupplierName
	}
	now := time.Now()
	s := &Supplier{
		ID:        uuid.New().String(),
		Document:  strings.TrimSpace(f.Document),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.apply(f)
	return s, nil
}

// Update atualiza os dados do fornecedor. O CNPJ não é alterado.
func (s *Supplier) Update(f SupplierFields) error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptySupplierName
	}
	s.apply(f)
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Supplier) apply(f SupplierFields) {
	s.Name = strings.TrimSpace(f.Name)
	s.Email = f.Email
	s.Phone = f.Phone
	s.ContactName = f.ContactName
}
