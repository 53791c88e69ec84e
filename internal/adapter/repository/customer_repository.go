package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const customerColumns = `id, person_type, name, document, email, phone, address, credit_limit,
	payment_term, total_owed, status, observations, created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *database.PostgresDB
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *database.PostgresDB) customer.Repository {
	return &CustomerRepository{db: db}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.PersonType, c.Name, c.Document, c.Email, c.Phone, c.Address, c.CreditLimit,
		c.PaymentTerm, c.TotalOwed, c.Status, c.Observations, c.CreatedAt, c.UpdatedAt)
	return translate(err, nil, "criar cliente")
}

// Update implementa customer.Repository.Update. total_owed é mantido pelo
// SetTotalOwed.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE customers SET
			person_type = $2, name = $3, email = $4, phone = $5, address = $6,
			credit_limit = $7, payment_term = $8, status = $9, observations = $10, updated_at = $11
		WHERE id = $1`,
		c.ID, c.PersonType, c.Name, c.Email, c.Phone, c.Address,
		c.CreditLimit, c.PaymentTerm, c.Status, c.Observations, c.UpdatedAt)
	if err != nil {
		return translate(err, nil, "atualizar cliente")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	row := r.db.Querier(ctx).QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	c, err := scanCustomer(row)
	return c, translate(err, customer.ErrCustomerNotFound, "buscar cliente")
}

// FindByIDForUpdate implementa customer.Repository.FindByIDForUpdate
func (r *CustomerRepository) FindByIDForUpdate(ctx context.Context, id string) (*customer.Customer, error) {
	row := r.db.Querier(ctx).QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCustomer(row)
	return c, translate(err, customer.ErrCustomerNotFound, "bloquear cliente")
}

// ExistsActiveDocument implementa customer.Repository.ExistsActiveDocument
func (r *CustomerRepository) ExistsActiveDocument(ctx context.Context, document, excludeID string) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE document = $1 AND status = 'active' AND id::text <> $2)`,
		document, excludeID).Scan(&exists)
	return exists, translate(err, nil, "verificar documento do cliente")
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, f customer.Filter) ([]*customer.Customer, int, error) {
	var (
		where []string
		args  []any
	)
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR document ILIKE $%d)", len(args), len(args)))
	}
	if f.OnlyActive {
		where = append(where, "status = 'active'")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM customers`+clause, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, nil, "contar clientes")
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + clause + ` ORDER BY name ASC` + pageClause(&args, f.Limit, f.Offset)
	rows, err := r.db.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, nil, "listar clientes")
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, translate(err, nil, "ler cliente")
		}
		customers = append(customers, c)
	}
	return customers, total, translate(rows.Err(), nil, "iterar clientes")
}

// SetTotalOwed implementa customer.Repository.SetTotalOwed
func (r *CustomerRepository) SetTotalOwed(ctx context.Context, id string, total decimal.Decimal) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE customers SET total_owed = $2, updated_at = NOW() WHERE id = $1`, id, total)
	if err != nil {
		return translate(err, nil, "atualizar total devido")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.PersonType, &c.Name, &c.Document, &c.Email, &c.Phone, &c.Address, &c.CreditLimit,
		&c.PaymentTerm, &c.TotalOwed, &c.Status, &c.Observations, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
