package repository

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
)

// CategoryRepository implementa a interface product.CategoryRepository
type CategoryRepository struct {
	db *database.PostgresDB
}

// NewCategoryRepository cria uma nova instância de CategoryRepository
func NewCategoryRepository(db *database.PostgresDB) product.CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create implementa product.CategoryRepository.Create
func (r *CategoryRepository) Create(ctx context.Context, c *product.Category) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	return translate(err, nil, "criar categoria")
}

// Update implementa product.CategoryRepository.Update
func (r *CategoryRepository) Update(ctx context.Context, c *product.Category) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE categories SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.UpdatedAt)
	if err != nil {
		return translate(err, nil, "atualizar categoria")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrCategoryNotFound
	}
	return nil
}

// Delete implementa product.CategoryRepository.Delete
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, product.ErrCategoryNotFound, product.ErrCategoryInUse, "excluir categoria")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrCategoryNotFound
	}
	return nil
}

// FindByID implementa product.CategoryRepository.FindByID
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*product.Category, error) {
	var c product.Category
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err, product.ErrCategoryNotFound, "buscar categoria")
	}
	return &c, nil
}

// List implementa product.CategoryRepository.List
func (r *CategoryRepository) List(ctx context.Context) ([]*product.Category, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, translate(err, nil, "listar categorias")
	}
	defer rows.Close()

	var categories []*product.Category
	for rows.Next() {
		var c product.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, translate(err, nil, "ler categoria")
		}
		categories = append(categories, &c)
	}
	return categories, translate(rows.Err(), nil, "iterar categorias")
}
