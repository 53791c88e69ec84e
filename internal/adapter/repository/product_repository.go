package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const productColumns = `id, code, name, description, sell_price, cost_price, stock,
	min_stock, category_id, expires_at, active, created_at, updated_at`

// ProductRepository implementa a interface product.Repository usando PostgreSQL
type ProductRepository struct {
	db *database.PostgresDB
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *database.PostgresDB) product.Repository {
	return &ProductRepository{db: db}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Code, p.Name, p.Description, p.SellPrice, p.CostPrice, p.Stock,
		p.MinStock, p.CategoryID, p.ExpiresAt, p.Active, p.CreatedAt, p.UpdatedAt)
	return translate(err, nil, "criar produto")
}

// Update implementa product.Repository.Update. O estoque não é alterado aqui.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE products SET
			code = $2, name = $3, description = $4, sell_price = $5, cost_price = $6,
			min_stock = $7, category_id = $8, expires_at = $9, active = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Description, p.SellPrice, p.CostPrice,
		p.MinStock, p.CategoryID, p.ExpiresAt, p.Active, p.UpdatedAt)
	if err != nil {
		return translate(err, nil, "atualizar produto")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// Delete implementa product.Repository.Delete
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateDelete(err, product.ErrProductNotFound, product.ErrReferenced, "excluir produto")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	return p, translate(err, product.ErrProductNotFound, "buscar produto")
}

// FindByIDForUpdate implementa product.Repository.FindByIDForUpdate
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
	p, err := scanProduct(row)
	return p, translate(err, product.ErrProductNotFound, "bloquear produto")
}

// FindByCode implementa product.Repository.FindByCode
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	row := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = $1 AND active`, code)
	p, err := scanProduct(row)
	return p, translate(err, product.ErrProductNotFound, "buscar produto por código")
}

// ExistsActiveCode implementa product.Repository.ExistsActiveCode
func (r *ProductRepository) ExistsActiveCode(ctx context.Context, code, excludeID string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE code = $1 AND active AND id::text <> $2)`,
		code, excludeID).Scan(&exists)
	return exists, translate(err, nil, "verificar código do produto")
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]*product.Product, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args), len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.OnlyActive {
		where = append(where, "active")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM products`+clause, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, nil, "contar produtos")
	}

	query := `SELECT ` + productColumns + ` FROM products` + clause + ` ORDER BY name ASC` + pageClause(&args, f.Limit, f.Offset)
	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, nil, "listar produtos")
	}
	products, err := scanProducts(rows)
	return products, total, err
}

// SetStock implementa product.Repository.SetStock
func (r *ProductRepository) SetStock(ctx context.Context, id string, stock int) error {
	return r.setColumn(ctx, id, "stock", stock)
}

// SetCostPrice implementa product.Repository.SetCostPrice
func (r *ProductRepository) SetCostPrice(ctx context.Context, id string, cost decimal.Decimal) error {
	return r.setColumn(ctx, id, "cost_price", cost)
}

// SetActive implementa product.Repository.SetActive
func (r *ProductRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.setColumn(ctx, id, "active", active)
}

func (r *ProductRepository) setColumn(ctx context.Context, id, column string, value any) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE products SET `+column+` = $2, updated_at = NOW() WHERE id = $1`, id, value)
	if err != nil {
		return translate(err, nil, "atualizar "+column+" do produto")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

// ListCritical implementa product.Repository.ListCritical
func (r *ProductRepository) ListCritical(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE active AND stock <= min_stock
		ORDER BY stock ASC, name ASC`)
	if err != nil {
		return nil, translate(err, nil, "listar estoque crítico")
	}
	return scanProducts(rows)
}

// ListExpiringBefore implementa product.Repository.ListExpiringBefore
func (r *ProductRepository) ListExpiringBefore(ctx context.Context, t time.Time) ([]*product.Product, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE active AND expires_at IS NOT NULL AND expires_at < $1
		ORDER BY expires_at ASC`, t)
	if err != nil {
		return nil, translate(err, nil, "listar produtos a vencer")
	}
	return scanProducts(rows)
}

// CountByCategory implementa product.Repository.CountByCategory
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	return count, translate(err, nil, "contar produtos da categoria")
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.SellPrice, &p.CostPrice, &p.Stock,
		&p.MinStock, &p.CategoryID, &p.ExpiresAt, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]*product.Product, error) {
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, nil, "iterar produtos")
	}
	return products, nil
}

// pageClause acrescenta LIMIT e OFFSET aos argumentos. limit <= 0 não limita.
func pageClause(args *[]any, limit, offset int) string {
	clause := ""
	if limit > 0 {
		*args = append(*args, limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(*args))
	}
	if offset > 0 {
		*args = append(*args, offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(*args))
	}
	return clause
}
