package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/shopspring/decimal"
)

// Products retorna o repositório de produtos
func (s *Store) Products() product.Repository { return &productRepo{s} }

// Categories retorna o repositório de categorias
func (s *Store) Categories() product.CategoryRepository { return &categoryRepo{s} }

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	defer r.s.lock(ctx)()
	d := r.s.data
	if p.Active && r.activeCodeTaken(p.Code, p.ID) {
		return product.ErrDuplicateCode
	}
	if p.CategoryID != nil {
		if _, ok := d.categories[*p.CategoryID]; !ok {
			return product.ErrCategoryNotFound
		}
	}
	d.products[p.ID] = *p
	return nil
}

func (r *productRepo) Update(ctx context.Context, p *product.Product) error {
	defer r.s.lock(ctx)()
	d := r.s.data
	current, ok := d.products[p.ID]
	if !ok {
		return product.ErrProductNotFound
	}
	if p.Active && r.activeCodeTaken(p.Code, p.ID) {
		return product.ErrDuplicateCode
	}
	if p.CategoryID != nil {
		if _, ok := d.categories[*p.CategoryID]; !ok {
			return product.ErrCategoryNotFound
		}
	}
	updated := *p
	updated.Stock = current.Stock
	d.products[p.ID] = updated
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	d := r.s.data
	if _, ok := d.products[id]; !ok {
		return product.ErrProductNotFound
	}
	for _, s := range d.sales {
		for _, it := range s.Items {
			if it.ProductID == id {
				return product.ErrReferenced
			}
		}
	}
	for _, p := range d.purchases {
		for _, it := range p.Items {
			if it.ProductID == id {
				return product.ErrReferenced
			}
		}
	}
	delete(d.products, id)
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

func (r *productRepo) FindByIDForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *productRepo) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	defer r.s.lock(ctx)()
	for _, p := range r.s.data.products {
		if p.Active && p.Code == code {
			found := p
			return &found, nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (r *productRepo) ExistsActiveCode(ctx context.Context, code, excludeID string) (bool, error) {
	defer r.s.lock(ctx)()
	return r.activeCodeTaken(code, excludeID), nil
}

func (r *productRepo) activeCodeTaken(code, excludeID string) bool {
	for id, p := range r.s.data.products {
		if id != excludeID && p.Active && p.Code == code {
			return true
		}
	}
	return false
}

func (r *productRepo) List(ctx context.Context, f product.Filter) ([]*product.Product, int, error) {
	defer r.s.lock(ctx)()
	var out []*product.Product
	for _, p := range r.s.data.products {
		if f.OnlyActive && !p.Active {
			continue
		}
		if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Code, f.Search) {
			continue
		}
		found := p
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, f.Limit, f.Offset), len(out), nil
}

func (r *productRepo) SetStock(ctx context.Context, id string, stock int) error {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if stock < 0 {
		return product.ErrInsufficientStock
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.s.data.products[id] = p
	return nil
}

func (r *productRepo) SetCostPrice(ctx context.Context, id string, cost decimal.Decimal) error {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	p.CostPrice = cost
	p.UpdatedAt = time.Now()
	r.s.data.products[id] = p
	return nil
}

func (r *productRepo) SetActive(ctx context.Context, id string, active bool) error {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.products[id]
	if !ok {
		return product.ErrProductNotFound
	}
	if active && !p.Active && r.activeCodeTaken(p.Code, id) {
		return product.ErrDuplicateCode
	}
	p.Active = active
	p.UpdatedAt = time.Now()
	r.s.data.products[id] = p
	return nil
}

func (r *productRepo) ListCritical(ctx context.Context) ([]*product.Product, error) {
	defer r.s.lock(ctx)()
	var out []*product.Product
	for _, p := range r.s.data.products {
		if p.IsCritical() {
			found := p
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	return out, nil
}

func (r *productRepo) ListExpiringBefore(ctx context.Context, t time.Time) ([]*product.Product, error) {
	defer r.s.lock(ctx)()
	var out []*product.Product
	for _, p := range r.s.data.products {
		if p.ExpiresBefore(t) {
			found := p
			out = append(out, &found)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(*out[j].ExpiresAt) })
	return out, nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	defer r.s.lock(ctx)()
	n := 0
	for _, p := range r.s.data.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, c *product.Category) error {
	defer r.s.lock(ctx)()
	if r.nameTaken(c.Name, c.ID) {
		return product.ErrDuplicateCategory
	}
	r.s.data.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Update(ctx context.Context, c *product.Category) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.categories[c.ID]; !ok {
		return product.ErrCategoryNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return product.ErrDuplicateCategory
	}
	r.s.data.categories[c.ID] = *c
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.data.categories[id]; !ok {
		return product.ErrCategoryNotFound
	}
	for _, p := range r.s.data.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			return product.ErrCategoryInUse
		}
	}
	delete(r.s.data.categories, id)
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (*product.Category, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, product.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*product.Category, error) {
	defer r.s.lock(ctx)()
	out := make([]*product.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		found := c
		out = append(out, &found)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) nameTaken(name, excludeID string) bool {
	for id, c := range r.s.data.categories {
		if id != excludeID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
