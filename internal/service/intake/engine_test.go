package intake

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/memory"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestEngine(t *testing.T) (*Engine, *catalog.Service) {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNopLogger()
	cat := catalog.NewService(store, store.Products(), store.Categories(), log, 30)
	return NewEngine(store, store.Purchases(), store.Suppliers(), store.Products(), cat, log, time.UTC), cat
}

func setup(t *testing.T, e *Engine, cat *catalog.Service, stock int) (*purchase.Supplier, *product.Product) {
	t.Helper()
	ctx := context.Background()
	s, err := e.CreateSupplier(ctx, purchase.SupplierFields{Name: "Distribuidora", Document: "12345678000199"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := cat.CreateProduct(ctx, product.Fields{Code: "1", Name: "Refrigerante", SellPrice: dec("6"), CostPrice: dec("3"), Stock: stock})
	if err != nil {
		t.Fatal(err)
	}
	return s, p
}

func TestRecordPurchase(t *testing.T) {
	ctx := context.Background()
	e, cat := newTestEngine(t)
	s, p := setup(t, e, cat, 2)

	got, err := e.RecordPurchase(ctx, s.ID, []ItemRequest{{ProductID: p.ID, Quantity: 10, UnitCost: dec("3.20")}}, "usuario")
	if err != nil {
		t.Fatalf("RecordPurchase() error = %v", err)
	}
	if got.Status != purchase.StatusPending || !got.Total.Equal(dec("32")) {
		t.Errorf("compra = %+v", got)
	}

	stored, _ := cat.GetProduct(ctx, p.ID)
	if stored.Stock != 12 {
		t.Errorf("Stock = %d, want 12", stored.Stock)
	}
	if !stored.CostPrice.Equal(dec("3.20")) {
		t.Errorf("CostPrice = %s, want 3.20", stored.CostPrice)
	}

	if err := e.MarkPurchaseCompleted(ctx, got.ID); err != nil {
		t.Fatal(err)
	}
	stored, _ = cat.GetProduct(ctx, p.ID)
	if stored.Stock != 12 {
		t.Errorf("Stock após conclusão = %d, want 12", stored.Stock)
	}
	if err := e.MarkPurchaseCompleted(ctx, got.ID); !errors.Is(err, purchase.ErrInvalidStatusTransition) {
		t.Errorf("segunda conclusão error = %v", err)
	}
}

func TestRecordPurchaseRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		supplier string
		items    func(p *product.Product) []ItemRequest
		wantErr  error
	}{
		{"no items", "", func(*product.Product) []ItemRequest { return nil }, purchase.ErrEmptyItems},
		{"zero quantity", "", func(p *product.Product) []ItemRequest {
			return []ItemRequest{{ProductID: p.ID, Quantity: 0, UnitCost: dec("1")}}
		}, purchase.ErrInvalidQuantity},
		{"negative cost", "", func(p *product.Product) []ItemRequest {
			return []ItemRequest{{ProductID: p.ID, Quantity: 1, UnitCost: dec("-1")}}
		}, purchase.ErrNegativeCost},
		{"unknown supplier", "nao-existe", func(p *product.Product) []ItemRequest {
			return []ItemRequest{{ProductID: p.ID, Quantity: 1, UnitCost: dec("1")}}
		}, purchase.ErrSupplierNotFound},
		{"unknown product", "", func(p *product.Product) []ItemRequest {
			return []ItemRequest{{ProductID: p.ID, Quantity: 1, UnitCost: dec("1")}, {ProductID: "nao-existe", Quantity: 1, UnitCost: dec("1")}}
		}, product.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, cat := newTestEngine(t)
			s, p := setup(t, e, cat, 5)
			supplierID := s.ID
			if tt.supplier != "" {
				supplierID = tt.supplier
			}

			_, err := e.RecordPurchase(ctx, supplierID, tt.items(p), "usuario")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RecordPurchase() error = %v, want %v", err, tt.wantErr)
			}
			stored, _ := cat.GetProduct(ctx, p.ID)
			if stored.Stock != 5 {
				t.Errorf("Stock = %d, want 5", stored.Stock)
			}
			list, total, _ := e.ListPurchases(ctx, ListFilter{})
			if total != 0 || len(list) != 0 {
				t.Errorf("compras gravadas = %d", total)
			}
		})
	}
}

func TestCancelPurchase(t *testing.T) {
	ctx := context.Background()
	e, cat := newTestEngine(t)
	s, p := setup(t, e, cat, 0)

	first, _ := e.RecordPurchase(ctx, s.ID, []ItemRequest{{ProductID: p.ID, Quantity: 5, UnitCost: dec("1")}}, "usuario")
	second, _ := e.RecordPurchase(ctx, s.ID, []ItemRequest{{ProductID: p.ID, Quantity: 3, UnitCost: dec("1")}}, "usuario")

	if err := e.CancelPurchase(ctx, first.ID); err != nil {
		t.Fatalf("CancelPurchase() error = %v", err)
	}
	stored, _ := cat.GetProduct(ctx, p.ID)
	if stored.Stock != 3 {
		t.Errorf("Stock = %d, want 3", stored.Stock)
	}
	if err := e.CancelPurchase(ctx, first.ID); !errors.Is(err, purchase.ErrInvalidStatusTransition) {
		t.Errorf("segundo cancelamento error = %v", err)
	}

	if _, err := cat.AdjustStock(ctx, p.ID, -2); err != nil {
		t.Fatal(err)
	}
	if err := e.CancelPurchase(ctx, second.ID); !errors.Is(err, product.ErrInsufficientStock) {
		t.Errorf("cancelar compra já vendida error = %v, want ErrInsufficientStock", err)
	}
	got, _ := e.GetPurchase(ctx, second.ID)
	if got.Status != purchase.StatusPending {
		t.Errorf("Status = %s, want pending", got.Status)
	}

	cancelled, total, err := e.ListPurchases(ctx, ListFilter{Status: purchase.StatusCancelled, Period: period.Today})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || cancelled[0].ID != first.ID {
		t.Errorf("ListPurchases(cancelled) = %d", total)
	}
}

type recordingAdjuster struct {
	next StockAdjuster
	ids  []string
}

func (r *recordingAdjuster) AdjustStock(ctx context.Context, productID string, delta int) (int, error) {
	r.ids = append(r.ids, productID)
	return r.next.AdjustStock(ctx, productID, delta)
}

func TestStockAdjustedInProductOrder(t *testing.T) {
	ctx := context.Background()
	e, cat := newTestEngine(t)
	s, first := setup(t, e, cat, 0)
	rec := &recordingAdjuster{next: cat}
	e.stock = rec

	ids := []string{first.ID}
	for _, code := range []string{"2", "3", "4"} {
		p, err := cat.CreateProduct(ctx, product.Fields{Code: code, Name: "Produto " + code, SellPrice: dec("5"), Stock: 0})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, p.ID)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	items := make([]ItemRequest, 0, len(ids))
	for _, id := range ids {
		items = append(items, ItemRequest{ProductID: id, Quantity: 2, UnitCost: dec("1")})
	}
	pur, err := e.RecordPurchase(ctx, s.ID, items, "usuario")
	if err != nil {
		t.Fatal(err)
	}
	if !sort.StringsAreSorted(rec.ids) || len(rec.ids) != len(ids) {
		t.Errorf("ordem de ajuste no registro = %v", rec.ids)
	}
	if pur.Items[0].ProductID != ids[0] {
		t.Errorf("itens da compra reordenados: %v", pur.Items[0].ProductID)
	}

	rec.ids = nil
	if err := e.CancelPurchase(ctx, pur.ID); err != nil {
		t.Fatal(err)
	}
	if !sort.StringsAreSorted(rec.ids) || len(rec.ids) != len(ids) {
		t.Errorf("ordem de ajuste no cancelamento = %v", rec.ids)
	}
	for _, id := range ids {
		if p, _ := cat.GetProduct(ctx, id); p.Stock != 0 {
			t.Errorf("Stock(%s) = %d, want 0", id, p.Stock)
		}
	}
}

func TestSuppliers(t *testing.T) {
	ctx := context.Background()
	e, cat := newTestEngine(t)
	s, p := setup(t, e, cat, 0)

	if _, err := e.CreateSupplier(ctx, purchase.SupplierFields{Name: "Outra", Document: s.Document}); !errors.Is(err, purchase.ErrDuplicateDocument) {
		t.Errorf("CreateSupplier() error = %v, want ErrDuplicateDocument", err)
	}

	updated, err := e.UpdateSupplier(ctx, s.ID, purchase.SupplierFields{Name: "Distribuidora Central", Phone: "11 99999-0000"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Distribuidora Central" || updated.Document != s.Document {
		t.Errorf("fornecedor = %+v", updated)
	}

	found, _ := e.ListSuppliers(ctx, "central")
	if len(found) != 1 {
		t.Errorf("ListSuppliers() = %d, want 1", len(found))
	}

	if _, err := e.RecordPurchase(ctx, s.ID, []ItemRequest{{ProductID: p.ID, Quantity: 1, UnitCost: dec("1")}}, "usuario"); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteSupplier(ctx, s.ID); !errors.Is(err, purchase.ErrSupplierReferenced) {
		t.Errorf("DeleteSupplier() error = %v, want ErrSupplierReferenced", err)
	}

	other, _ := e.CreateSupplier(ctx, purchase.SupplierFields{Name: "Sem compras", Document: "999"})
	if err := e.DeleteSupplier(ctx, other.ID); err != nil {
		t.Errorf("DeleteSupplier() error = %v", err)
	}
	if _, err := e.GetSupplier(ctx, other.ID); !errors.Is(err, purchase.ErrSupplierNotFound) {
		t.Errorf("GetSupplier() error = %v", err)
	}
}
