package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
)

// Purchases retorna o repositório de compras
func (s *Store) Purchases() purchase.Repository { return &purchaseRepo{s} }

// Suppliers retorna o repositório de fornecedores
func (s *Store) Suppliers() purchase.SupplierRepository { return &supplierRepo{s} }

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.suppliers[p.SupplierID]; !ok {
		return purchase.ErrSupplierNotFound
	}
	r.s.data.purchases[p.ID] = copyPurchase(*p)
	return nil
}

func (r *purchaseRepo) FindByID(ctx context.Context, id string) (*purchase.Purchase, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.purchases[id]
	if !ok {
		return nil, purchase.ErrPurchaseNotFound
	}
	found := copyPurchase(p)
	return &found, nil
}

func (r *purchaseRepo) FindByIDForUpdate(ctx context.Context, id string) (*purchase.Purchase, error) {
	return r.FindByID(ctx, id)
}

func (r *purchaseRepo) UpdateStatus(ctx context.Context, p *purchase.Purchase) error {
	defer r.s.lock(ctx)()
	stored, ok := r.s.data.purchases[p.ID]
	if !ok {
		return purchase.ErrPurchaseNotFound
	}
	stored.Status = p.Status
	stored.UpdatedAt = p.UpdatedAt
	r.s.data.purchases[p.ID] = stored
	return nil
}

func (r *purchaseRepo) List(ctx context.Context, f purchase.Filter) ([]*purchase.Purchase, int, error) {
	defer r.s.lock(ctx)()
	var out []*purchase.Purchase
	for _, p := range r.s.data.purchases {
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if !f.Range.Contains(p.CreatedAt) {
			continue
		}
		found := copyPurchase(p)
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func copyPurchase(p purchase.Purchase) purchase.Purchase {
	p.Items = append([]purchase.Item(nil), p.Items...)
	return p
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(ctx context.Context, s *purchase.Supplier) error {
	defer r.s.lock(ctx)()
	if r.documentTaken(s.Document, s.ID) {
		return purchase.ErrDuplicateDocument
	}
	r.s.data.suppliers[s.ID] = *s
	return nil
}

func (r *supplierRepo) Update(ctx context.Context, s *purchase.Supplier) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.suppliers[s.ID]; !ok {
		return purchase.ErrSupplierNotFound
	}
	if r.documentTaken(s.Document, s.ID) {
		return purchase.ErrDuplicateDocument
	}
	r.s.data.suppliers[s.ID] = *s
	return nil
}

func (r *supplierRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.suppliers[id]; !ok {
		return purchase.ErrSupplierNotFound
	}
	for _, p := range r.s.data.purchases {
		if p.SupplierID == id {
			return purchase.ErrSupplierReferenced
		}
	}
	delete(r.s.data.suppliers, id)
	return nil
}

func (r *supplierRepo) FindByID(ctx context.Context, id string) (*purchase.Supplier, error) {
	defer r.s.lock(ctx)()
	s, ok := r.s.data.suppliers[id]
	if !ok {
		return nil, purchase.ErrSupplierNotFound
	}
	return &s, nil
}

func (r *supplierRepo) ExistsDocument(ctx context.Context, document, excludeID string) (bool, error) {
	defer r.s.lock(ctx)()
	return r.documentTaken(document, excludeID), nil
}

func (r *supplierRepo) documentTaken(document, excludeID string) bool {
	for id, s := range r.s.data.suppliers {
		if id != excludeID && s.Document == document {
			return true
		}
	}
	return false
}

func (r *supplierRepo) List(ctx context.Context, search string) ([]*purchase.Supplier, error) {
	defer r.s.lock(ctx)()
	var out []*purchase.Supplier
	for _, s := range r.s.data.suppliers {
		if search != "" && !containsFold(s.Name, search) && !containsFold(s.Document, search) {
			continue
		}
		found := s
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
