package intake

import (
	"context"
	"fmt"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
)

// CreateSupplier cadastra um fornecedor
func (e *Engine) CreateSupplier(ctx context.Context, f purchase.SupplierFields) (*purchase.Supplier, error) {
	s, err := purchase.NewSupplier(f)
	if err != nil {
		return nil, err
	}
	exists, err := e.suppliers.ExistsDocument(ctx, s.Document, "")
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar CNPJ do fornecedor: %w", err)
	}
	if exists {
		return nil, purchase.ErrDuplicateDocument
	}
	if err := e.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	e.logger.Info("fornecedor cadastrado", "supplier_id", s.ID)
	return s, nil
}

// UpdateSupplier altera os dados de um fornecedor
func (e *Engine) UpdateSupplier(ctx context.Context, id string, f purchase.SupplierFields) (*purchase.Supplier, error) {
	s, err := e.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Update(f); err != nil {
		return nil, err
	}
	if err := e.suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetSupplier busca um fornecedor pelo ID
func (e *Engine) GetSupplier(ctx context.Context, id string) (*purchase.Supplier, error) {
	return e.suppliers.FindByID(ctx, id)
}

// ListSuppliers lista fornecedores pelo nome ou CNPJ
func (e *Engine) ListSuppliers(ctx context.Context, search string) ([]*purchase.Supplier, error) {
	return e.suppliers.List(ctx, search)
}

// DeleteSupplier remove um fornecedor sem compras
func (e *Engine) DeleteSupplier(ctx context.Context, id string) error {
	if err := e.suppliers.Delete(ctx, id); err != nil {
		return err
	}
	e.logger.Info("fornecedor removido", "supplier_id", id)
	return nil
}
