package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/shopspring/decimal"
)

// Tills retorna o repositório de caixas
func (s *Store) Tills() till.Repository { return &tillRepo{s} }

// Sales retorna o repositório de vendas
func (s *Store) Sales() sale.Repository { return &saleRepo{s} }

type tillRepo struct{ s *Store }

func (r *tillRepo) Create(ctx context.Context, t *till.Till) error {
	defer r.s.lock(ctx)()
	for _, existing := range r.s.data.tills {
		if existing.IsOpen() {
			return till.ErrTillAlreadyOpen
		}
	}
	r.s.data.tills[t.ID] = *t
	return nil
}

func (r *tillRepo) FindByID(ctx context.Context, id string) (*till.Till, error) {
	defer r.s.lock(ctx)()
	t, ok := r.s.data.tills[id]
	if !ok {
		return nil, till.ErrTillNotFound
	}
	return &t, nil
}

func (r *tillRepo) FindByIDForUpdate(ctx context.Context, id string) (*till.Till, error) {
	return r.FindByID(ctx, id)
}

func (r *tillRepo) FindOpen(ctx context.Context) (*till.Till, error) {
	defer r.s.lock(ctx)()
	var current *till.Till
	for _, t := range r.s.data.tills {
		if !t.IsOpen() {
			continue
		}
		if current == nil || t.OpenedAt.After(current.OpenedAt) {
			found := t
			current = &found
		}
	}
	if current == nil {
		return nil, till.ErrNoOpenTill
	}
	return current, nil
}

func (r *tillRepo) FindOpenForShare(ctx context.Context) (*till.Till, error) {
	return r.FindOpen(ctx)
}

func (r *tillRepo) Close(ctx context.Context, t *till.Till) (bool, error) {
	defer r.s.lock(ctx)()
	stored, ok := r.s.data.tills[t.ID]
	if !ok || !stored.IsOpen() {
		return false, nil
	}
	r.s.data.tills[t.ID] = *t
	return true, nil
}

func (r *tillRepo) List(ctx context.Context, rng period.Range) ([]*till.Till, error) {
	defer r.s.lock(ctx)()
	var out []*till.Till
	for _, t := range r.s.data.tills {
		if rng.Contains(t.OpenedAt) {
			found := t
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.After(out[j].OpenedAt) })
	return out, nil
}

func (r *tillRepo) SalesSummary(ctx context.Context, tillID string) (*till.SalesSummary, error) {
	defer r.s.lock(ctx)()
	sum := &till.SalesSummary{TillID: tillID, Gross: decimal.Zero, Discount: decimal.Zero, Net: decimal.Zero}
	for _, s := range r.s.data.sales {
		if s.TillID != tillID {
			continue
		}
		sum.SalesCount++
		sum.Gross = sum.Gross.Add(s.Gross)
		sum.Discount = sum.Discount.Add(s.Discount)
		sum.Net = sum.Net.Add(s.Net)
	}
	return sum, nil
}

func (r *tillRepo) PaymentTotals(ctx context.Context, tillID string) ([]till.MethodTotal, error) {
	defer r.s.lock(ctx)()
	byMethod := map[string]*till.MethodTotal{}
	for _, s := range r.s.data.sales {
		if s.TillID != tillID {
			continue
		}
		for _, p := range s.Payments {
			mt, ok := byMethod[string(p.Method)]
			if !ok {
				mt = &till.MethodTotal{Method: string(p.Method), Total: decimal.Zero}
				byMethod[string(p.Method)] = mt
			}
			mt.Count++
			mt.Total = mt.Total.Add(p.Amount)
		}
	}
	out := make([]till.MethodTotal, 0, len(byMethod))
	for _, k := range sortedKeys(byMethod) {
		out = append(out, *byMethod[k])
	}
	return out, nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(ctx context.Context, s *sale.Sale) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.tills[s.TillID]; !ok {
		return till.ErrTillNotFound
	}
	r.s.data.sales[s.ID] = copySale(*s)
	return nil
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	defer r.s.lock(ctx)()
	s, ok := r.s.data.sales[id]
	if !ok {
		return nil, sale.ErrSaleNotFound
	}
	found := copySale(s)
	return &found, nil
}

func (r *saleRepo) List(ctx context.Context, f sale.Filter) ([]*sale.Sale, int, error) {
	defer r.s.lock(ctx)()
	var out []*sale.Sale
	for _, s := range r.s.data.sales {
		if f.TillID != "" && s.TillID != f.TillID {
			continue
		}
		if f.CustomerID != "" && (s.CustomerID == nil || *s.CustomerID != f.CustomerID) {
			continue
		}
		if !f.Range.Contains(s.CreatedAt) {
			continue
		}
		found := copySale(s)
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func copySale(s sale.Sale) sale.Sale {
	s.Items = append([]sale.Item(nil), s.Items...)
	s.Payments = append([]sale.Payment(nil), s.Payments...)
	return s
}
