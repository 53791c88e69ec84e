package customer

import (
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegisterPaymentTransitions(t *testing.T) {
	r, err := NewReceivable("c1", nil, dec("50.00"), time.Now(), time.Now())
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		amount     string
		wantErr    error
		wantStatus ReceivableStatus
		wantPaid   string
		wantPaidAt bool
	}{
		{"0", ErrInvalidAmount, ReceivablePending, "0", false},
		{"10.00", nil, ReceivablePartial, "10", false},
		{"39.999", domain.ErrSubCent, ReceivablePartial, "10", false},
		{"45.00", ErrOverpayment, ReceivablePartial, "10", false},
		{"40.00", nil, ReceivablePaid, "50", true},
		{"1.00", ErrAlreadyPaid, ReceivablePaid, "50", true},
	}

	for i, s := range steps {
		_, err := r.RegisterPayment(dec(s.amount), "cash", time.Now())
		if !errors.Is(err, s.wantErr) {
			t.Fatalf("passo %d: erro = %v, want %v", i, err, s.wantErr)
		}
		if r.Status != s.wantStatus {
			t.Errorf("passo %d: status = %s, want %s", i, r.Status, s.wantStatus)
		}
		if !r.PaidAmount.Equal(dec(s.wantPaid)) {
			t.Errorf("passo %d: pago = %s, want %s", i, r.PaidAmount, s.wantPaid)
		}
		if (r.PaidAt != nil) != s.wantPaidAt {
			t.Errorf("passo %d: paid_at = %v", i, r.PaidAt)
		}
	}

	if !r.Outstanding().IsZero() {
		t.Errorf("Outstanding() = %s", r.Outstanding())
	}
	if len(r.Payments) != 2 {
		t.Errorf("len(Payments) = %d, want 2", len(r.Payments))
	}
}

func TestNewReceivableRejectsNonPositive(t *testing.T) {
	if _, err := NewReceivable("c1", nil, dec("-1"), time.Now(), time.Now()); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("erro = %v", err)
	}
}

func TestNewReceivableKeepsCreationTime(t *testing.T) {
	created := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	r, err := NewReceivable("c1", nil, dec("12.00"), created.AddDate(0, 0, 30), created)
	if err != nil {
		t.Fatal(err)
	}
	if !r.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", r.CreatedAt, created)
	}
	if _, err := NewReceivable("c1", nil, dec("10.005"), created, created); !errors.Is(err, domain.ErrSubCent) {
		t.Errorf("erro = %v, want ErrSubCent", err)
	}
}

func TestCustomerDueDate(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		term int
		want time.Time
	}{
		{0, base.AddDate(0, 0, 30)},
		{15, base.AddDate(0, 0, 15)},
	}
	for _, tt := range tests {
		c := &Customer{PaymentTerm: tt.term}
		if got := c.DueDate(base, 30); !got.Equal(tt.want) {
			t.Errorf("DueDate(term=%d) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestNewCustomerValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		wantErr error
	}{
		{"ok", Fields{Name: "Maria", Document: "123"}, nil},
		{"no document", Fields{Name: "Maria"}, ErrEmptyDocument},
		{"no name", Fields{Document: "123"}, ErrEmptyName},
		{"negative limit", Fields{Name: "Maria", Document: "1", CreditLimit: dec("-5")}, ErrNegativeCreditLimit},
		{"negative term", Fields{Name: "Maria", Document: "1", PaymentTerm: -1}, ErrNegativePaymentTerm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.fields)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewCustomer() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (c.PersonType != PersonTypePF || !c.IsActive() || !c.TotalOwed.IsZero()) {
				t.Errorf("cliente inesperado: %+v", c)
			}
		})
	}
}
