package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// Customers retorna o repositório de clientes
func (s *Store) Customers() customer.Repository { return &customerRepo{s} }

// Receivables retorna o repositório de contas a receber
func (s *Store) Receivables() customer.ReceivableRepository { return &receivableRepo{s} }

type customerRepo struct{ s *Store }

func (r *customerRepo) Create(ctx context.Context, c *customer.Customer) error {
	defer r.s.lock(ctx)()
	if c.IsActive() && r.documentTaken(c.Document, c.ID) {
		return customer.ErrDuplicateTaxID
	}
	r.s.data.customers[c.ID] = *c
	return nil
}

func (r *customerRepo) Update(ctx context.Context, c *customer.Customer) error {
	defer r.s.lock(ctx)()
	current, ok := r.s.data.customers[c.ID]
	if !ok {
		return customer.ErrCustomerNotFound
	}
	if c.IsActive() && r.documentTaken(c.Document, c.ID) {
		return customer.ErrDuplicateTaxID
	}
	updated := *c
	updated.TotalOwed = current.TotalOwed
	r.s.data.customers[c.ID] = updated
	return nil
}

func (r *customerRepo) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.data.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *customerRepo) FindByIDForUpdate(ctx context.Context, id string) (*customer.Customer, error) {
	return r.FindByID(ctx, id)
}

func (r *customerRepo) ExistsActiveDocument(ctx context.Context, document, excludeID string) (bool, error) {
	defer r.s.lock(ctx)()
	return r.documentTaken(document, excludeID), nil
}

func (r *customerRepo) documentTaken(document, excludeID string) bool {
	for id, c := range r.s.data.customers {
		if id != excludeID && c.IsActive() && c.Document == document {
			return true
		}
	}
	return false
}

func (r *customerRepo) List(ctx context.Context, f customer.Filter) ([]*customer.Customer, int, error) {
	defer r.s.lock(ctx)()
	var out []*customer.Customer
	for _, c := range r.s.data.customers {
		if f.OnlyActive && !c.IsActive() {
			continue
		}
		if f.Search != "" && !containsFold(c.Name, f.Search) && !containsFold(c.Document, f.Search) {
			continue
		}
		found := c
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func (r *customerRepo) SetTotalOwed(ctx context.Context, id string, total decimal.Decimal) error {
	defer r.s.lock(ctx)()
	c, ok := r.s.data.customers[id]
	if !ok {
		return customer.ErrCustomerNotFound
	}
	c.TotalOwed = total
	r.s.data.customers[id] = c
	return nil
}

type receivableRepo struct{ s *Store }

func (r *receivableRepo) Create(ctx context.Context, rec *customer.Receivable) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.customers[rec.CustomerID]; !ok {
		return customer.ErrCustomerNotFound
	}
	stored := *rec
	stored.Payments = nil
	stored.PaidAmount = decimal.Zero
	r.s.data.receivables[rec.ID] = stored
	return nil
}

func (r *receivableRepo) FindByID(ctx context.Context, id string) (*customer.Receivable, error) {
	defer r.s.lock(ctx)()
	rec, ok := r.s.data.receivables[id]
	if !ok {
		return nil, customer.ErrReceivableNotFound
	}
	return r.hydrate(rec), nil
}

func (r *receivableRepo) FindByIDForUpdate(ctx context.Context, id string) (*customer.Receivable, error) {
	return r.FindByID(ctx, id)
}

func (r *receivableRepo) ListByCustomer(ctx context.Context, customerID string) ([]*customer.Receivable, error) {
	defer r.s.lock(ctx)()
	out := r.filter(customerID, false)
	return out, nil
}

func (r *receivableRepo) ListOpenForUpdate(ctx context.Context, customerID string) ([]*customer.Receivable, error) {
	defer r.s.lock(ctx)()
	return r.filter(customerID, true), nil
}

func (r *receivableRepo) filter(customerID string, onlyOpen bool) []*customer.Receivable {
	var out []*customer.Receivable
	for _, rec := range r.s.data.receivables {
		if rec.CustomerID != customerID {
			continue
		}
		if onlyOpen && !rec.IsOpen() {
			continue
		}
		out = append(out, r.hydrate(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *receivableRepo) CreatePayment(ctx context.Context, p *customer.Payment) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.receivables[p.ReceivableID]; !ok {
		return customer.ErrReceivableNotFound
	}
	r.s.data.recPayments = append(r.s.data.recPayments, *p)
	return nil
}

func (r *receivableRepo) UpdateStatus(ctx context.Context, rec *customer.Receivable) error {
	defer r.s.lock(ctx)()
	stored, ok := r.s.data.receivables[rec.ID]
	if !ok {
		return customer.ErrReceivableNotFound
	}
	stored.Status = rec.Status
	stored.PaidAt = rec.PaidAt
	r.s.data.receivables[rec.ID] = stored
	return nil
}

func (r *receivableRepo) OpenBalance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	defer r.s.lock(ctx)()
	total := decimal.Zero
	for _, rec := range r.filter(customerID, true) {
		total = total.Add(rec.Outstanding())
	}
	return total, nil
}

// hydrate preenche pagamentos e valor pago a partir dos registros de pagamento
func (r *receivableRepo) hydrate(rec customer.Receivable) *customer.Receivable {
	rec.PaidAmount = decimal.Zero
	rec.Payments = nil
	for _, p := range r.s.data.recPayments {
		if p.ReceivableID == rec.ID {
			rec.PaidAmount = rec.PaidAmount.Add(p.Amount)
			rec.Payments = append(rec.Payments, p)
		}
	}
	return &rec
}
