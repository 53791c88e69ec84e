package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `id, till_id, seller_id, customer_id, gross_total, discount, net_total, status, created_at`

// SaleRepository implementa a interface sale.Repository. Vendas são lidas
// em linhas planas (venda, itens, pagamentos) e montadas aqui.
type SaleRepository struct {
	db *database.PostgresDB
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *database.PostgresDB) sale.Repository {
	return &SaleRepository{db: db}
}

// Create implementa sale.Repository.Create. Deve ser chamado dentro de uma
// transação para gravar venda, itens e pagamentos juntos.
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	q := r.db.Querier(ctx)

	_, err := q.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.TillID, s.SellerID, s.CustomerID, s.Gross, s.Discount, s.Net, s.Status, s.CreatedAt)
	if err != nil {
		return translate(err, nil, "gravar venda")
	}

	for _, it := range s.Items {
		_, err := q.Exec(ctx,
			`INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, s.ID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal)
		if err != nil {
			return translate(err, nil, "gravar item da venda")
		}
	}

	for _, p := range s.Payments {
		_, err := q.Exec(ctx,
			`INSERT INTO sale_payments (id, sale_id, method, amount, customer_id)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, s.ID, p.Method, p.Amount, p.CustomerID)
		if err != nil {
			return translate(err, nil, "gravar pagamento da venda")
		}
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	s, err := scanSale(r.db.Querier(ctx).QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, sale.ErrSaleNotFound, "buscar venda")
	}
	if err := r.attach(ctx, []*sale.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, f sale.Filter) ([]*sale.Sale, int, error) {
	var (
		where []string
		args  []any
	)
	if f.TillID != "" {
		args = append(args, f.TillID)
		where = append(where, fmt.Sprintf("till_id = $%d", len(args)))
	}
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		where = append(where, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	clause, args := rangeClause("created_at", f.Range, args, where...)

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM sales`+clause, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, nil, "contar vendas")
	}

	query := `SELECT ` + saleColumns + ` FROM sales` + clause + ` ORDER BY created_at DESC` + pageClause(&args, f.Limit, f.Offset)
	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, nil, "listar vendas")
	}

	var sales []*sale.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, 0, translate(err, nil, "ler venda")
		}
		sales = append(sales, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err, nil, "iterar vendas")
	}

	if err := r.attach(ctx, sales); err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

// attach carrega itens e pagamentos das vendas com uma consulta para cada tabela
func (r *SaleRepository) attach(ctx context.Context, sales []*sale.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	ids := make([]string, len(sales))
	byID := make(map[string]*sale.Sale, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		byID[s.ID] = s
	}

	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price, line_total
		FROM sale_items WHERE sale_id::text = ANY($1) ORDER BY sale_id, id`, ids)
	if err != nil {
		return translate(err, nil, "listar itens das vendas")
	}
	for rows.Next() {
		var it sale.Item
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			rows.Close()
			return translate(err, nil, "ler item da venda")
		}
		byID[it.SaleID].Items = append(byID[it.SaleID].Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return translate(err, nil, "iterar itens das vendas")
	}

	rows, err = r.db.Querier(ctx).Query(ctx,
		`SELECT id, sale_id, method, amount, customer_id
		FROM sale_payments WHERE sale_id::text = ANY($1) ORDER BY sale_id, id`, ids)
	if err != nil {
		return translate(err, nil, "listar pagamentos das vendas")
	}
	defer rows.Close()
	for rows.Next() {
		var p sale.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Method, &p.Amount, &p.CustomerID); err != nil {
			return translate(err, nil, "ler pagamento da venda")
		}
		byID[p.SaleID].Payments = append(byID[p.SaleID].Payments, p)
	}
	return translate(rows.Err(), nil, "iterar pagamentos das vendas")
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	err := row.Scan(&s.ID, &s.TillID, &s.SellerID, &s.CustomerID, &s.Gross, &s.Discount, &s.Net, &s.Status, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
