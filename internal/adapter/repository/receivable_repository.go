package repository

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// paid_amount é derivado dos pagamentos registrados
const receivableSelect = `SELECT r.id, r.customer_id, r.sale_id, r.amount,
	COALESCE((SELECT SUM(p.amount) FROM receivable_payments p WHERE p.receivable_id = r.id), 0),
	r.due_date, r.status, r.paid_at, r.created_at
	FROM receivables r`

// ReceivableRepository implementa a interface customer.ReceivableRepository
type ReceivableRepository struct {
	db *database.PostgresDB
}

// NewReceivableRepository cria uma nova instância de ReceivableRepository
func NewReceivableRepository(db *database.PostgresDB) customer.ReceivableRepository {
	return &ReceivableRepository{db: db}
}

// Create implementa customer.ReceivableRepository.Create
func (r *ReceivableRepository) Create(ctx context.Context, rec *customer.Receivable) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO receivables (id, customer_id, sale_id, amount, due_date, status, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.CustomerID, rec.SaleID, rec.Amount, rec.DueDate, rec.Status, rec.PaidAt, rec.CreatedAt)
	return translate(err, nil, "criar conta a receber")
}

// FindByID implementa customer.ReceivableRepository.FindByID
func (r *ReceivableRepository) FindByID(ctx context.Context, id string) (*customer.Receivable, error) {
	return r.find(ctx, receivableSelect+` WHERE r.id = $1`, id)
}

// FindByIDForUpdate implementa customer.ReceivableRepository.FindByIDForUpdate
func (r *ReceivableRepository) FindByIDForUpdate(ctx context.Context, id string) (*customer.Receivable, error) {
	return r.find(ctx, receivableSelect+` WHERE r.id = $1 FOR UPDATE OF r`, id)
}

func (r *ReceivableRepository) find(ctx context.Context, query, id string) (*customer.Receivable, error) {
	rec, err := scanReceivable(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, customer.ErrReceivableNotFound, "buscar conta a receber")
	}
	payments, err := r.payments(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.Payments = payments
	return rec, nil
}

// ListByCustomer implementa customer.ReceivableRepository.ListByCustomer
func (r *ReceivableRepository) ListByCustomer(ctx context.Context, customerID string) ([]*customer.Receivable, error) {
	return r.list(ctx, receivableSelect+` WHERE r.customer_id = $1 ORDER BY r.due_date ASC, r.created_at ASC`, customerID)
}

// ListOpenForUpdate implementa customer.ReceivableRepository.ListOpenForUpdate
func (r *ReceivableRepository) ListOpenForUpdate(ctx context.Context, customerID string) ([]*customer.Receivable, error) {
	return r.list(ctx, receivableSelect+`
		WHERE r.customer_id = $1 AND r.status IN ('pending', 'partial')
		ORDER BY r.due_date ASC, r.created_at ASC
		FOR UPDATE OF r`, customerID)
}

func (r *ReceivableRepository) list(ctx context.Context, query, customerID string) ([]*customer.Receivable, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, query, customerID)
	if err != nil {
		return nil, translate(err, nil, "listar contas a receber")
	}

	var receivables []*customer.Receivable
	for rows.Next() {
		rec, err := scanReceivable(rows)
		if err != nil {
			rows.Close()
			return nil, translate(err, nil, "ler conta a receber")
		}
		receivables = append(receivables, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, translate(err, nil, "iterar contas a receber")
	}

	// Os pagamentos são lidos depois de liberar o cursor
	for _, rec := range receivables {
		if rec.Payments, err = r.payments(ctx, rec.ID); err != nil {
			return nil, err
		}
	}
	return receivables, nil
}

func (r *ReceivableRepository) payments(ctx context.Context, receivableID string) ([]customer.Payment, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id, receivable_id, amount, method, paid_at
		FROM receivable_payments WHERE receivable_id = $1 ORDER BY paid_at ASC`, receivableID)
	if err != nil {
		return nil, translate(err, nil, "listar pagamentos")
	}
	defer rows.Close()

	var payments []customer.Payment
	for rows.Next() {
		var p customer.Payment
		if err := rows.Scan(&p.ID, &p.ReceivableID, &p.Amount, &p.Method, &p.PaidAt); err != nil {
			return nil, translate(err, nil, "ler pagamento")
		}
		payments = append(payments, p)
	}
	return payments, translate(rows.Err(), nil, "iterar pagamentos")
}

// CreatePayment implementa customer.ReceivableRepository.CreatePayment
func (r *ReceivableRepository) CreatePayment(ctx context.Context, p *customer.Payment) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO receivable_payments (id, receivable_id, amount, method, paid_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.ReceivableID, p.Amount, p.Method, p.PaidAt)
	return translate(err, nil, "registrar pagamento")
}

// UpdateStatus implementa customer.ReceivableRepository.UpdateStatus
func (r *ReceivableRepository) UpdateStatus(ctx context.Context, rec *customer.Receivable) error {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE receivables SET status = $2, paid_at = $3 WHERE id = $1`,
		rec.ID, rec.Status, rec.PaidAt)
	if err != nil {
		return translate(err, nil, "atualizar conta a receber")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrReceivableNotFound
	}
	return nil
}

// OpenBalance implementa customer.ReceivableRepository.OpenBalance
func (r *ReceivableRepository) OpenBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(r.amount - COALESCE(
			(SELECT SUM(p.amount) FROM receivable_payments p WHERE p.receivable_id = r.id), 0)), 0)
		FROM receivables r
		WHERE r.customer_id = $1 AND r.status IN ('pending', 'partial')`, customerID).Scan(&total)
	if err != nil {
		return decimal.Zero, translate(err, nil, "calcular saldo em aberto")
	}
	return total, nil
}

func scanReceivable(row pgx.Row) (*customer.Receivable, error) {
	var rec customer.Receivable
	err := row.Scan(&rec.ID, &rec.CustomerID, &rec.SaleID, &rec.Amount, &rec.PaidAmount,
		&rec.DueDate, &rec.Status, &rec.PaidAt, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
