package sale

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewSaleTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []Item
		payments   []Payment
		discount   string
		wantErr    error
		wantNet    string
		wantChange string
	}{
		{
			name:       "two units paid in cash",
			items:      []Item{{ProductID: "p1", Quantity: 2, UnitPrice: d("12.50")}},
			payments:   []Payment{{Method: MethodCash, Amount: d("30.00")}},
			discount:   "0",
			wantNet:    "25.00",
			wantChange: "5.00",
		},
		{
			name:       "discount",
			items:      []Item{{ProductID: "p1", Quantity: 1, UnitPrice: d("50.00")}},
			payments:   []Payment{{Method: MethodCash, Amount: d("45.00")}},
			discount:   "5.00",
			wantNet:    "45.00",
			wantChange: "0",
		},
		{
			name:     "insufficient tender",
			items:    []Item{{ProductID: "p1", Quantity: 1, UnitPrice: d("50.00")}},
			payments: []Payment{{Method: MethodCash, Amount: d("40.00")}},
			discount: "0",
			wantErr:  ErrInsufficientPayment,
		},
		{
			name:     "discount above gross",
			items:    []Item{{ProductID: "p1", Quantity: 1, UnitPrice: d("10.00")}},
			payments: []Payment{{Method: MethodCash, Amount: d("1.00")}},
			discount: "10.01",
			wantErr:  ErrDiscountExceedsTotal,
		},
		{
			name:     "zero quantity",
			items:    []Item{{ProductID: "p1", Quantity: 0, UnitPrice: d("10.00")}},
			payments: []Payment{{Method: MethodCash, Amount: d("10.00")}},
			discount: "0",
			wantErr:  ErrInvalidQuantity,
		},
		{
			name:     "negative discount",
			items:    []Item{{ProductID: "p1", Quantity: 1, UnitPrice: d("10.00")}},
			payments: []Payment{{Method: MethodCash, Amount: d("10.00")}},
			discount: "-1",
			wantErr:  ErrNegativeDiscount,
		},
		{
			name:     "no items",
			payments: []Payment{{Method: MethodCash, Amount: d("10.00")}},
			discount: "0",
			wantErr:  ErrEmptyItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSale("till", "seller", nil, tt.items, tt.payments, d(tt.discount), time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewSale() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !s.Net.Equal(d(tt.wantNet)) {
				t.Errorf("Net = %s, want %s", s.Net, tt.wantNet)
			}
			if !s.Change().Equal(d(tt.wantChange)) {
				t.Errorf("Change() = %s, want %s", s.Change(), tt.wantChange)
			}
			for _, it := range s.Items {
				if it.SaleID != s.ID || it.ID == "" {
					t.Errorf("item sem vínculo: %+v", it)
				}
			}
		})
	}
}

func TestValidateTenders(t *testing.T) {
	customer := "c1"
	tests := []struct {
		name     string
		payments []Payment
		customer *string
		wantErr  error
	}{
		{"empty", nil, nil, ErrEmptyTenders},
		{"zero amount", []Payment{{Method: MethodPix, Amount: decimal.Zero}}, nil, ErrInvalidTenderAmount},
		{"negative amount", []Payment{{Method: MethodCash, Amount: d("-2")}}, nil, ErrInvalidTenderAmount},
		{"unknown method", []Payment{{Method: "cheque", Amount: d("2")}}, nil, ErrUnknownMethod},
		{"store credit without customer", []Payment{{Method: MethodStoreCredit, Amount: d("2")}}, nil, ErrStoreCreditNeedsCustomer},
		{"store credit with customer", []Payment{{Method: MethodStoreCredit, Amount: d("2")}}, &customer, nil},
		{"split", []Payment{{Method: MethodCash, Amount: d("2")}, {Method: MethodDebit, Amount: d("3")}}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateTenders(tt.payments, tt.customer); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTenders() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreCreditTotal(t *testing.T) {
	payments := []Payment{
		{Method: MethodStoreCredit, Amount: d("10")},
		{Method: MethodCash, Amount: d("5")},
		{Method: MethodStoreCredit, Amount: d("2.50")},
	}
	if got := StoreCreditTotal(payments); !got.Equal(d("12.50")) {
		t.Errorf("StoreCreditTotal() = %s", got)
	}
}
