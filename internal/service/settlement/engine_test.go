package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/memory"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/intake"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/ledger"
	tillsvc "github.com/hugohenrick/pdv-conveniencia/internal/service/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store   *memory.Store
	engine  *Engine
	catalog *catalog.Service
	ledger  *ledger.Service
	tills   *tillsvc.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNopLogger()
	cat := catalog.NewService(store, store.Products(), store.Categories(), log, 30)
	led := ledger.NewService(store, store.Customers(), store.Receivables(), log, 30)
	tls := tillsvc.NewService(store, store.Tills(), log, time.UTC)
	eng := NewEngine(store, store.Tills(), store.Products(), store.Customers(), store.Sales(), cat, led, log, time.UTC)
	return &fixture{store: store, engine: eng, catalog: cat, ledger: led, tills: tls}
}

func (f *fixture) product(t *testing.T, code, price string, stock int) *product.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), product.Fields{Code: code, Name: "Produto " + code, SellPrice: dec(price), Stock: stock})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func (f *fixture) customer(t *testing.T, doc, limit string) *customer.Customer {
	t.Helper()
	c, err := f.ledger.CreateCustomer(context.Background(), customer.Fields{Name: "Cliente", Document: doc, CreditLimit: dec(limit), PaymentTerm: 10})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func (f *fixture) openTill(t *testing.T, float string) *till.Till {
	t.Helper()
	tl, err := f.tills.OpenTill(context.Background(), dec(float), "operador")
	if err != nil {
		t.Fatal(err)
	}
	return tl
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.catalog.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	return p.Stock
}

func TestSettleSaleAndCloseTill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tl := f.openTill(t, "100.00")
	p := f.product(t, "789", "12.50", 10)

	res, err := f.engine.SettleSale(ctx, SettleRequest{
		Items:    []ItemRequest{{ProductID: p.ID, Quantity: 2}},
		Tenders:  []TenderRequest{{Method: sale.MethodCash, Amount: dec("30.00")}},
		SellerID: "vendedor",
	})
	if err != nil {
		t.Fatalf("SettleSale() error = %v", err)
	}
	if !res.NetTotal.Equal(dec("25.00")) || !res.Change.Equal(dec("5.00")) {
		t.Errorf("resultado = %+v, want net 25.00 troco 5.00", res)
	}
	if got := f.stock(t, p.ID); got != 8 {
		t.Errorf("Stock = %d, want 8", got)
	}

	closed, err := f.tills.CloseTill(ctx, tl.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !closed.ClosingTotal.Equal(dec("125.00")) {
		t.Errorf("ClosingTotal = %s, want 125.00", closed.ClosingTotal)
	}
}

func TestSettleSaleWithDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openTill(t, "0")
	p := f.product(t, "1", "25.00", 5)
	c := f.customer(t, "111", "100")

	res, err := f.engine.SettleSale(ctx, SettleRequest{
		Items:      []ItemRequest{{ProductID: p.ID, Quantity: 2}},
		Tenders:    []TenderRequest{{Method: sale.MethodPix, Amount: dec("45.00")}},
		Discount:   dec("5.00"),
		SellerID:   "vendedor",
		CustomerID: &c.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.NetTotal.Equal(dec("45.00")) || !res.Change.IsZero() {
		t.Errorf("resultado = %+v", res)
	}

	recs, _ := f.ledger.ListReceivables(ctx, c.ID)
	if len(recs) != 0 {
		t.Errorf("len(receivables) = %d, want 0", len(recs))
	}

	s, err := f.engine.GetSale(ctx, res.SaleID)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Gross.Equal(dec("50.00")) || len(s.Items) != 1 || len(s.Payments) != 1 {
		t.Errorf("venda gravada = %+v", s)
	}
}

func TestSettleSaleRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		openTil bool
		req     func(p *product.Product, c *customer.Customer) SettleRequest
		wantErr error
	}{
		{
			name:    "no open till",
			openTil: false,
			req: func(p *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 1}}, Tenders: []TenderRequest{{sale.MethodCash, dec("10")}}, SellerID: "v"}
			},
			wantErr: till.ErrNoOpenTill,
		},
		{
			name:    "insufficient tender",
			openTil: true,
			req: func(p *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 5}}, Tenders: []TenderRequest{{sale.MethodCash, dec("40")}}, SellerID: "v"}
			},
			wantErr: sale.ErrInsufficientPayment,
		},
		{
			name:    "insufficient stock",
			openTil: true,
			req: func(p *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 6}, {p.ID, 5}}, Tenders: []TenderRequest{{sale.MethodCash, dec("200")}}, SellerID: "v"}
			},
			wantErr: product.ErrInsufficientStock,
		},
		{
			name:    "zero tender",
			openTil: true,
			req: func(p *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 1}}, Tenders: []TenderRequest{{sale.MethodCash, dec("0")}}, SellerID: "v"}
			},
			wantErr: sale.ErrInvalidTenderAmount,
		},
		{
			name:    "empty items",
			openTil: true,
			req: func(_ *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Tenders: []TenderRequest{{sale.MethodCash, dec("10")}}, SellerID: "v"}
			},
			wantErr: sale.ErrEmptyItems,
		},
		{
			name:    "store credit without customer",
			openTil: true,
			req: func(p *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 1}}, Tenders: []TenderRequest{{sale.MethodStoreCredit, dec("10")}}, SellerID: "v"}
			},
			wantErr: sale.ErrStoreCreditNeedsCustomer,
		},
		{
			name:    "discount above gross",
			openTil: true,
			req: func(p *product.Product, _ *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 1}}, Tenders: []TenderRequest{{sale.MethodCash, dec("10")}}, Discount: dec("10.01"), SellerID: "v"}
			},
			wantErr: sale.ErrDiscountExceedsTotal,
		},
		{
			name:    "credit above limit",
			openTil: true,
			req: func(p *product.Product, c *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 6}}, Tenders: []TenderRequest{{sale.MethodStoreCredit, dec("60")}}, SellerID: "v", CustomerID: &c.ID}
			},
			wantErr: customer.ErrCreditLimitExceeded,
		},
		{
			name:    "credit funding change",
			openTil: true,
			req: func(p *product.Product, c *customer.Customer) SettleRequest {
				return SettleRequest{Items: []ItemRequest{{p.ID, 1}}, Tenders: []TenderRequest{{sale.MethodStoreCredit, dec("20")}}, SellerID: "v", CustomerID: &c.ID}
			},
			wantErr: sale.ErrCreditExceedsTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var tl *till.Till
			if tt.openTil {
				tl = f.openTill(t, "0")
			}
			p := f.product(t, "1", "10.00", 10)
			c := f.customer(t, "111", "50")

			_, err := f.engine.SettleSale(ctx, tt.req(p, c))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SettleSale() error = %v, want %v", err, tt.wantErr)
			}
			if got := f.stock(t, p.ID); got != 10 {
				t.Errorf("Stock = %d, want 10", got)
			}
			if tl != nil {
				sum, _ := f.tills.SalesSummary(ctx, tl.ID)
				if sum.SalesCount != 0 {
					t.Errorf("SalesCount = %d, want 0", sum.SalesCount)
				}
			}
			recs, _ := f.ledger.ListReceivables(ctx, c.ID)
			if len(recs) != 0 {
				t.Errorf("len(receivables) = %d, want 0", len(recs))
			}
		})
	}
}

func TestSettleSaleStoreCredit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openTill(t, "0")
	p := f.product(t, "1", "20.00", 10)
	c := f.customer(t, "111", "100")

	res, err := f.engine.SettleSale(ctx, SettleRequest{
		Items:   []ItemRequest{{ProductID: p.ID, Quantity: 3}},
		Tenders: []TenderRequest{
			{Method: sale.MethodCash, Amount: dec("10")},
			{Method: sale.MethodStoreCredit, Amount: dec("50")},
		},
		SellerID:   "vendedor",
		CustomerID: &c.ID,
	})
	if err != nil {
		t.Fatalf("SettleSale() error = %v", err)
	}

	recs, err := f.ledger.ListReceivables(ctx, c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("len(receivables) = %d, want 1", len(recs))
	}
	rec := recs[0]
	if !rec.Amount.Equal(dec("50")) || rec.SaleID == nil || *rec.SaleID != res.SaleID {
		t.Errorf("receivable = %+v", rec)
	}
	wantDue := f.ledger.DueDateFor(c)
	if d := rec.DueDate.Sub(wantDue); d < -time.Minute || d > time.Minute {
		t.Errorf("DueDate = %v, want ~%v", rec.DueDate, wantDue)
	}

	avail, _ := f.ledger.AvailableCredit(ctx, c.ID)
	if !avail.Equal(dec("50")) {
		t.Errorf("AvailableCredit = %s, want 50", avail)
	}

	_, err = f.engine.SettleSale(ctx, SettleRequest{
		Items:      []ItemRequest{{ProductID: p.ID, Quantity: 3}},
		Tenders:    []TenderRequest{{Method: sale.MethodStoreCredit, Amount: dec("60")}},
		SellerID:   "vendedor",
		CustomerID: &c.ID,
	})
	if !errors.Is(err, customer.ErrCreditLimitExceeded) {
		t.Errorf("segunda venda error = %v, want ErrCreditLimitExceeded", err)
	}
	if got := f.stock(t, p.ID); got != 7 {
		t.Errorf("Stock = %d, want 7", got)
	}
}

func TestSettleSaleInactiveProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openTill(t, "0")
	p := f.product(t, "1", "5", 10)
	if err := f.catalog.SetProductActive(ctx, p.ID, false); err != nil {
		t.Fatal(err)
	}

	_, err := f.engine.SettleSale(ctx, SettleRequest{
		Items:    []ItemRequest{{ProductID: p.ID, Quantity: 1}},
		Tenders:  []TenderRequest{{Method: sale.MethodCash, Amount: dec("5")}},
		SellerID: "v",
	})
	if !errors.Is(err, product.ErrProductInactive) {
		t.Errorf("error = %v, want ErrProductInactive", err)
	}
}

func TestStockConservation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openTill(t, "0")
	p := f.product(t, "1", "1", 20)

	sold := 0
	for _, qty := range []int{3, 4, 50, 2} {
		_, err := f.engine.SettleSale(ctx, SettleRequest{
			Items:    []ItemRequest{{ProductID: p.ID, Quantity: qty}},
			Tenders:  []TenderRequest{{Method: sale.MethodCash, Amount: dec("100")}},
			SellerID: "v",
		})
		if err == nil {
			sold += qty
		}
	}
	if got := f.stock(t, p.ID); got != 20-sold {
		t.Errorf("Stock = %d, want %d", got, 20-sold)
	}

	sales, total, err := f.engine.ListSales(ctx, ListFilter{Period: period.Today})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(sales) != 3 {
		t.Errorf("ListSales() = %d/%d, want 3", len(sales), total)
	}
}

func TestStockConservationWithPurchases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.openTill(t, "0")
	p := f.product(t, "1", "2", 5)

	in := intake.NewEngine(f.store, f.store.Purchases(), f.store.Suppliers(), f.store.Products(), f.catalog, logger.NewNopLogger(), time.UTC)
	sup, err := in.CreateSupplier(ctx, purchase.SupplierFields{Name: "Distribuidora", Document: "12345678000199"})
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		purchase int
		complete bool
		sell     int
	}{
		{sell: 3},
		{purchase: 10, complete: true},
		{sell: 20},
		{purchase: 4},
		{sell: 12},
		{purchase: 6, complete: true, sell: 8},
		{sell: 1},
	}

	sold, purchased := 0, 0
	for i, st := range steps {
		if st.purchase > 0 {
			pur, err := in.RecordPurchase(ctx, sup.ID, []intake.ItemRequest{{ProductID: p.ID, Quantity: st.purchase, UnitCost: dec("1")}}, "usuario")
			if err != nil {
				t.Fatalf("passo %d: RecordPurchase() error = %v", i, err)
			}
			purchased += st.purchase
			if st.complete {
				if err := in.MarkPurchaseCompleted(ctx, pur.ID); err != nil {
					t.Fatalf("passo %d: MarkPurchaseCompleted() error = %v", i, err)
				}
			}
		}
		if st.sell > 0 {
			_, err := f.engine.SettleSale(ctx, SettleRequest{
				Items:    []ItemRequest{{ProductID: p.ID, Quantity: st.sell}},
				Tenders:  []TenderRequest{{Method: sale.MethodCash, Amount: dec("100")}},
				SellerID: "v",
			})
			switch {
			case err == nil:
				sold += st.sell
			case !errors.Is(err, product.ErrInsufficientStock):
				t.Fatalf("passo %d: SettleSale() error = %v", i, err)
			}
		}
		if got, want := f.stock(t, p.ID), 5-sold+purchased; got != want {
			t.Fatalf("passo %d: Stock = %d, want %d", i, got, want)
		}
	}

	if sold != 24 || purchased != 20 {
		t.Errorf("vendido = %d comprado = %d, want 24 e 20", sold, purchased)
	}
}
