// Package memory implementa os repositórios em memória, usados quando a
// aplicação roda sem PostgreSQL (STORAGE_DRIVER=memory) e nos testes.
//
// Transações são serializadas por um único mutex. Em caso de erro o estado
// anterior à transação é restaurado.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
)

type txKey struct{}

// Store guarda todos os agregados em mapas protegidos por mutex
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	products    map[string]product.Product
	categories  map[string]product.Category
	customers   map[string]customer.Customer
	receivables map[string]customer.Receivable
	recPayments []customer.Payment
	tills       map[string]till.Till
	sales       map[string]sale.Sale
	suppliers   map[string]purchase.Supplier
	purchases   map[string]purchase.Purchase
	users       map[string]user.User
}

// NewStore cria um Store vazio
func NewStore() *Store {
	return &Store{data: &state{
		products:    map[string]product.Product{},
		categories:  map[string]product.Category{},
		customers:   map[string]customer.Customer{},
		receivables: map[string]customer.Receivable{},
		tills:       map[string]till.Till{},
		sales:       map[string]sale.Sale{},
		suppliers:   map[string]purchase.Supplier{},
		purchases:   map[string]purchase.Purchase{},
		users:       map[string]user.User{},
	}}
}

// Transaction executa fn com acesso exclusivo ao Store
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if r := recover(); r != nil {
			s.data = snapshot
			panic(r)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// Close existe para simetria com o PostgresDB
func (s *Store) Close() {}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock adquire o mutex fora de transações. Dentro de uma transação o mutex
// já pertence à chamada atual.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (st *state) clone() *state {
	c := &state{
		products:    make(map[string]product.Product, len(st.products)),
		categories:  make(map[string]product.Category, len(st.categories)),
		customers:   make(map[string]customer.Customer, len(st.customers)),
		receivables: make(map[string]customer.Receivable, len(st.receivables)),
		recPayments: append([]customer.Payment(nil), st.recPayments...),
		tills:       make(map[string]till.Till, len(st.tills)),
		sales:       make(map[string]sale.Sale, len(st.sales)),
		suppliers:   make(map[string]purchase.Supplier, len(st.suppliers)),
		purchases:   make(map[string]purchase.Purchase, len(st.purchases)),
		users:       make(map[string]user.User, len(st.users)),
	}
	copyMap(c.products, st.products)
	copyMap(c.categories, st.categories)
	copyMap(c.customers, st.customers)
	copyMap(c.receivables, st.receivables)
	copyMap(c.tills, st.tills)
	copyMap(c.sales, st.sales)
	copyMap(c.suppliers, st.suppliers)
	copyMap(c.purchases, st.purchases)
	copyMap(c.users, st.users)
	return c
}

func copyMap[V any](dst, src map[string]V) {
	for k, v := range src {
		dst[k] = v
	}
}

// paginate aplica offset e limit; limit <= 0 retorna tudo
func paginate[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return nil
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
