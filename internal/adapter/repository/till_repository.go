package repository

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const tillColumns = `id, operator_id, opened_at, opening_float, closed_at, closing_total, counted_amount, difference`

// TillRepository implementa a interface till.Repository
type TillRepository struct {
	db *database.PostgresDB
}

// NewTillRepository cria uma nova instância de TillRepository
func NewTillRepository(db *database.PostgresDB) till.Repository {
	return &TillRepository{db: db}
}

// Create implementa till.Repository.Create. O índice ux_tills_single_open
// rejeita um segundo caixa aberto.
func (r *TillRepository) Create(ctx context.Context, t *till.Till) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO tills (`+tillColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.OperatorID, t.OpenedAt, t.OpeningFloat, t.ClosedAt, t.ClosingTotal, t.CountedAmount, t.Difference)
	return translate(err, nil, "abrir caixa")
}

// FindByID implementa till.Repository.FindByID
func (r *TillRepository) FindByID(ctx context.Context, id string) (*till.Till, error) {
	t, err := scanTill(r.db.Querier(ctx).QueryRow(ctx, `SELECT `+tillColumns+` FROM tills WHERE id = $1`, id))
	return t, translate(err, till.ErrTillNotFound, "buscar caixa")
}

// FindByIDForUpdate implementa till.Repository.FindByIDForUpdate
func (r *TillRepository) FindByIDForUpdate(ctx context.Context, id string) (*till.Till, error) {
	t, err := scanTill(r.db.Querier(ctx).QueryRow(ctx, `SELECT `+tillColumns+` FROM tills WHERE id = $1 FOR UPDATE`, id))
	return t, translate(err, till.ErrTillNotFound, "bloquear caixa")
}

// FindOpen implementa till.Repository.FindOpen
func (r *TillRepository) FindOpen(ctx context.Context) (*till.Till, error) {
	t, err := scanTill(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+tillColumns+` FROM tills WHERE closed_at IS NULL ORDER BY opened_at DESC LIMIT 1`))
	return t, translate(err, till.ErrNoOpenTill, "buscar caixa aberto")
}

// FindOpenForShare implementa till.Repository.FindOpenForShare
func (r *TillRepository) FindOpenForShare(ctx context.Context) (*till.Till, error) {
	t, err := scanTill(r.db.Querier(ctx).QueryRow(ctx,
		`SELECT `+tillColumns+` FROM tills WHERE closed_at IS NULL ORDER BY opened_at DESC LIMIT 1 FOR SHARE`))
	return t, translate(err, till.ErrNoOpenTill, "bloquear caixa aberto")
}

// Close implementa till.Repository.Close
func (r *TillRepository) Close(ctx context.Context, t *till.Till) (bool, error) {
	tag, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE tills SET closed_at = $2, closing_total = $3, counted_amount = $4, difference = $5
		WHERE id = $1 AND closed_at IS NULL`,
		t.ID, t.ClosedAt, t.ClosingTotal, t.CountedAmount, t.Difference)
	if err != nil {
		return false, translate(err, nil, "fechar caixa")
	}
	return tag.RowsAffected() == 1, nil
}

// List implementa till.Repository.List
func (r *TillRepository) List(ctx context.Context, rng period.Range) ([]*till.Till, error) {
	where, args := rangeClause("opened_at", rng, nil)
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT `+tillColumns+` FROM tills`+where+` ORDER BY opened_at DESC`, args...)
	if err != nil {
		return nil, translate(err, nil, "listar caixas")
	}
	defer rows.Close()

	var tills []*till.Till
	for rows.Next() {
		t, err := scanTill(rows)
		if err != nil {
			return nil, translate(err, nil, "ler caixa")
		}
		tills = append(tills, t)
	}
	return tills, translate(rows.Err(), nil, "iterar caixas")
}

// SalesSummary implementa till.Repository.SalesSummary
func (r *TillRepository) SalesSummary(ctx context.Context, tillID string) (*till.SalesSummary, error) {
	s := &till.SalesSummary{TillID: tillID}
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(gross_total), 0), COALESCE(SUM(discount), 0), COALESCE(SUM(net_total), 0)
		FROM sales WHERE till_id = $1`, tillID).
		Scan(&s.SalesCount, &s.Gross, &s.Discount, &s.Net)
	if err != nil {
		return nil, translate(err, nil, "resumir vendas do caixa")
	}
	return s, nil
}

// PaymentTotals implementa till.Repository.PaymentTotals
func (r *TillRepository) PaymentTotals(ctx context.Context, tillID string) ([]till.MethodTotal, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT p.method, COUNT(*), SUM(p.amount)
		FROM sale_payments p JOIN sales s ON s.id = p.sale_id
		WHERE s.till_id = $1
		GROUP BY p.method ORDER BY p.method`, tillID)
	if err != nil {
		return nil, translate(err, nil, "totalizar pagamentos do caixa")
	}
	defer rows.Close()

	var totals []till.MethodTotal
	for rows.Next() {
		var mt till.MethodTotal
		if err := rows.Scan(&mt.Method, &mt.Count, &mt.Total); err != nil {
			return nil, translate(err, nil, "ler total por forma de pagamento")
		}
		totals = append(totals, mt)
	}
	return totals, translate(rows.Err(), nil, "iterar totais por forma de pagamento")
}

func scanTill(row pgx.Row) (*till.Till, error) {
	var t till.Till
	err := row.Scan(&t.ID, &t.OperatorID, &t.OpenedAt, &t.OpeningFloat, &t.ClosedAt,
		&t.ClosingTotal, &t.CountedAmount, &t.Difference)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
