package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const purchaseColumns = `id, supplier_id, created_by, total, status, created_at, updated_at`

// PurchaseRepository implementa a interface purchase.Repository
type PurchaseRepository struct {
	db *database.PostgresDB
}

// NewPurchaseRepository cria uma nova instância de PurchaseRepository
func NewPurchaseRepository(db *database.PostgresDB) purchase.Repository {
	return &PurchaseRepository{db: db}
}

// Create implementa purchase.Repository.Create
func (r *PurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	q := r.db.Querier(ctx)

	_, err := q.Exec(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.SupplierID, p.CreatedBy, p.Total, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return translate(err, nil, "gravar compra")
	}

	for _, it := range p.Items {
		_, err := q.Exec(ctx,
			`INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_cost, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, p.ID, it.ProductID, it.Quantity, it.UnitCost, it.LineTotal)
		if err != nil {
			return translate(err, nil, "gravar item da compra")
		}
	}
	return nil
}

// FindByID implementa purchase.Repository.FindByID
func (r *PurchaseRepository) FindByID(ctx context.Context, id string) (*purchase.Purchase, error) {
	return r.find(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// FindByIDForUpdate implementa purchase.Repository.FindByIDForUpdate
func (r *PurchaseRepository) FindByIDForUpdate(ctx context.Context, id string) (*purchase.Purchase, error) {
	return r.find(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseRepository) find(ctx context.Context, query, id string) (*purchase.Purchase, error) {
	p, err := scanPurchase(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, purchase.ErrPurchaseNotFound, "buscar compra")
	}
	if err := r.attachItems(ctx, []*purchase.Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateStatus implementa purchase.Repository.UpdateStatus
func (r *PurchaseRepository) UpdateStatus(ctx context.Context, p *purchase.Purchase) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE purchases SET status = $2, updated_at = $3 WHERE id = $1`, p.ID, p.Status, p.UpdatedAt)
	if err != nil {
		return translate(err, nil, "atualizar situação da compra")
	}
	if tag.RowsAffected() == 0 {
		return purchase.ErrPurchaseNotFound
	}
	return nil
}

// List implementa purchase.Repository.List
func (r *PurchaseRepository) List(ctx context.Context, f purchase.Filter) ([]*purchase.Purchase, int, error) {
	var (
		where []string
		args  []any
	)
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	clause, args := rangeClause("created_at", f.Range, args, where...)

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM purchases`+clause, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, nil, "contar compras")
	}

	query := `SELECT ` + purchaseColumns + ` FROM purchases` + clause + ` ORDER BY created_at DESC` + pageClause(&args, f.Limit, f.Offset)
	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, nil, "listar compras")
	}

	var purchases []*purchase.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			rows.Close()
			return nil, 0, translate(err, nil, "ler compra")
		}
		purchases = append(purchases, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err, nil, "iterar compras")
	}

	if err := r.attachItems(ctx, purchases); err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

func (r *PurchaseRepository) attachItems(ctx context.Context, purchases []*purchase.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	ids := make([]string, len(purchases))
	byID := make(map[string]*purchase.Purchase, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, purchase_id, product_id, quantity, unit_cost, line_total
		FROM purchase_items WHERE purchase_id::text = ANY($1) ORDER BY purchase_id, id`, ids)
	if err != nil {
		return translate(err, nil, "listar itens das compras")
	}
	defer rows.Close()

	for rows.Next() {
		var it purchase.Item
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitCost, &it.LineTotal); err != nil {
			return translate(err, nil, "ler item da compra")
		}
		byID[it.PurchaseID].Items = append(byID[it.PurchaseID].Items, it)
	}
	return translate(rows.Err(), nil, "iterar itens das compras")
}

func scanPurchase(row pgx.Row) (*purchase.Purchase, error) {
	var p purchase.Purchase
	err := row.Scan(&p.ID, &p.SupplierID, &p.CreatedBy, &p.Total, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
