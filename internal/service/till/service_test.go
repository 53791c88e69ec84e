package till

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/memory"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/sale"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store, store.Tills(), logger.NewNopLogger(), time.UTC), store
}

func recordSale(t *testing.T, store *memory.Store, tillID, price string, qty int, method sale.Method, paid string) {
	t.Helper()
	s, err := sale.NewSale(tillID, "vendedor", nil,
		[]sale.Item{{ProductID: "p1", Quantity: qty, UnitPrice: dec(price)}},
		[]sale.Payment{{Method: method, Amount: dec(paid)}},
		decimal.Zero, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Sales().Create(context.Background(), s); err != nil {
		t.Fatal(err)
	}
}

func TestOpenTill(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		float    string
		operator string
		wantErr  error
	}{
		{"negative float", "-1", "op", till.ErrInvalidAmount},
		{"missing operator", "10", "", till.ErrEmptyOperator},
		{"zero float", "0", "op", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			got, err := svc.OpenTill(ctx, dec(tt.float), tt.operator)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("OpenTill() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got.Status() != till.StatusOpen {
				t.Errorf("Status = %s, want open", got.Status())
			}
		})
	}
}

func TestSingleOpenTill(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.OpenTill(ctx, dec("100"), "op"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.OpenTill(ctx, dec("50"), "op"); !errors.Is(err, till.ErrTillAlreadyOpen) {
		t.Fatalf("segundo OpenTill() error = %v, want ErrTillAlreadyOpen", err)
	}

	svc, _ = newTestService()
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.OpenTill(ctx, dec("10"), "op"); err == nil {
				mu.Lock()
				opened++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if opened != 1 {
		t.Errorf("caixas abertos = %d, want 1", opened)
	}
}

func TestCurrentTill(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.CurrentTill(ctx); !errors.Is(err, till.ErrNoOpenTill) {
		t.Fatalf("CurrentTill() error = %v, want ErrNoOpenTill", err)
	}
	opened, _ := svc.OpenTill(ctx, dec("10"), "op")
	got, err := svc.CurrentTill(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != opened.ID {
		t.Errorf("CurrentTill().ID = %s, want %s", got.ID, opened.ID)
	}
}

func TestCloseTill(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	opened, err := svc.OpenTill(ctx, dec("100.00"), "op")
	if err != nil {
		t.Fatal(err)
	}
	recordSale(t, store, opened.ID, "12.50", 1, sale.MethodCash, "20.00")
	recordSale(t, store, opened.ID, "12.50", 1, sale.MethodPix, "12.50")

	counted := dec("120.00")
	closed, err := svc.CloseTill(ctx, opened.ID, &counted)
	if err != nil {
		t.Fatalf("CloseTill() error = %v", err)
	}
	if !closed.ClosingTotal.Equal(dec("125.00")) {
		t.Errorf("ClosingTotal = %s, want 125.00", closed.ClosingTotal)
	}
	if !closed.Difference.Equal(dec("-5.00")) {
		t.Errorf("Difference = %s, want -5.00", closed.Difference)
	}

	if _, err := svc.CloseTill(ctx, opened.ID, nil); !errors.Is(err, till.ErrAlreadyClosed) {
		t.Errorf("segundo CloseTill() error = %v, want ErrAlreadyClosed", err)
	}
	stored, _ := svc.GetTill(ctx, opened.ID)
	if !stored.ClosedAt.Equal(*closed.ClosedAt) {
		t.Error("segundo fechamento alterou a data de fechamento")
	}

	if _, err := svc.CurrentTill(ctx); !errors.Is(err, till.ErrNoOpenTill) {
		t.Errorf("CurrentTill() após fechamento error = %v", err)
	}
	if _, err := svc.OpenTill(ctx, dec("0"), "op"); err != nil {
		t.Errorf("OpenTill() após fechamento error = %v", err)
	}
}

func TestCloseTillNotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.CloseTill(context.Background(), "nao-existe", nil); !errors.Is(err, till.ErrTillNotFound) {
		t.Errorf("error = %v, want ErrTillNotFound", err)
	}
}

func TestSummaryAndMethodTotals(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	opened, _ := svc.OpenTill(ctx, dec("0"), "op")
	recordSale(t, store, opened.ID, "10", 2, sale.MethodCash, "20")
	recordSale(t, store, opened.ID, "5", 1, sale.MethodCash, "5")
	recordSale(t, store, opened.ID, "7", 1, sale.MethodDebit, "7")

	sum, err := svc.SalesSummary(ctx, opened.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum.SalesCount != 3 || !sum.Net.Equal(dec("32")) {
		t.Errorf("SalesSummary = %+v", sum)
	}

	totals, err := svc.PaymentMethodTotals(ctx, opened.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"cash": "25", "debit": "7"}
	if len(totals) != len(want) {
		t.Fatalf("len(totals) = %d, want %d", len(totals), len(want))
	}
	for _, mt := range totals {
		if !mt.Total.Equal(dec(want[mt.Method])) {
			t.Errorf("total %s = %s, want %s", mt.Method, mt.Total, want[mt.Method])
		}
	}

	if _, err := svc.SalesSummary(ctx, "nao-existe"); !errors.Is(err, till.ErrTillNotFound) {
		t.Errorf("SalesSummary() error = %v, want ErrTillNotFound", err)
	}
}

func TestListTills(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	now := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	svc.now = func() time.Time { return now.AddDate(0, 0, -3) }
	old, _ := svc.OpenTill(ctx, dec("0"), "op")
	if _, err := svc.CloseTill(ctx, old.ID, nil); err != nil {
		t.Fatal(err)
	}
	svc.now = func() time.Time { return now }
	if _, err := svc.OpenTill(ctx, dec("0"), "op"); err != nil {
		t.Fatal(err)
	}

	today, err := svc.ListTills(ctx, period.Today, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(today) != 1 {
		t.Errorf("len(today) = %d, want 1", len(today))
	}
	week, _ := svc.ListTills(ctx, period.Last7Days, nil, nil)
	if len(week) != 2 {
		t.Errorf("len(last7days) = %d, want 2", len(week))
	}
	if _, err := svc.ListTills(ctx, period.Custom, nil, nil); !errors.Is(err, period.ErrInvalidPeriod) {
		t.Errorf("custom sem datas error = %v", err)
	}
}
