package repository

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
)

const supplierColumns = `id, name, document, email, phone, contact_name, created_at, updated_at`

// SupplierRepository implementa a interface purchase.SupplierRepository
type SupplierRepository struct {
	db *database.PostgresDB
}

// NewSupplierRepository cria uma nova instância de SupplierRepository
func NewSupplierRepository(db *database.PostgresDB) purchase.SupplierRepository {
	return &SupplierRepository{db: db}
}

// Create implementa purchase.SupplierRepository.Create
func (r *SupplierRepository) Create(ctx context.Context, s *purchase.Supplier) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.Name, s.Document, s.Email, s.Phone, s.ContactName, s.CreatedAt, s.UpdatedAt)
	return translate(err, nil, "criar fornecedor")
}

// Update implementa purchase.SupplierRepository.Update
func (r *SupplierRepository) Update(ctx context.Context, s *purchase.Supplier) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE suppliers SET name = $2, email = $3, phone = $4, contact_name = $5, updated_at = $6 WHERE id = $1`,
		s.ID, s.Name, s.Email, s.Phone, s.ContactName, s.UpdatedAt)
	if err != nil {
		return translate(err, nil, "atualizar fornecedor")
	}
	if tag.RowsAffected() == 0 {
		return purchase.ErrSupplierNotFound
	}
	return nil
}

// Delete implementa purchase.SupplierRepository.Delete
func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, purchase.ErrSupplierNotFound, purchase.ErrSupplierReferenced, "excluir fornecedor")
	}
	if tag.RowsAffected() == 0 {
		return purchase.ErrSupplierNotFound
	}
	return nil
}

// FindByID implementa purchase.SupplierRepository.FindByID
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*purchase.Supplier, error) {
	var s purchase.Supplier
	err := r.db.Querier(ctx).QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Document, &s.Email, &s.Phone, &s.ContactName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err, purchase.ErrSupplierNotFound, "buscar fornecedor")
	}
	return &s, nil
}

// ExistsDocument implementa purchase.SupplierRepository.ExistsDocument
func (r *SupplierRepository) ExistsDocument(ctx context.Context, document, excludeID string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM suppliers WHERE document = $1 AND id::text <> $2)`,
		document, excludeID).Scan(&exists)
	return exists, translate(err, nil, "verificar CNPJ do fornecedor")
}

// List implementa purchase.SupplierRepository.List
func (r *SupplierRepository) List(ctx context.Context, search string) ([]*purchase.Supplier, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR document ILIKE '%' || $1 || '%'
		ORDER BY name ASC`, search)
	if err != nil {
		return nil, translate(err, nil, "listar fornecedores")
	}
	defer rows.Close()

	var suppliers []*purchase.Supplier
	for rows.Next() {
		var s purchase.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Document, &s.Email, &s.Phone, &s.ContactName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, translate(err, nil, "ler fornecedor")
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, translate(rows.Err(), nil, "iterar fornecedores")
}
