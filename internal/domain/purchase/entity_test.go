package purchase

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewPurchase(t *testing.T) {
	item := func(q int, cost string) Item {
		return Item{ProductID: "p", Quantity: q, UnitCost: decimal.RequireFromString(cost)}
	}

	tests := []struct {
		name      string
		supplier  string
		creator   string
		items     []Item
		wantErr   error
		wantTotal string
	}{
		{"ok", "s", "u", []Item{item(3, "2.10"), item(1, "5")}, nil, "11.30"},
		{"no supplier", "", "u", []Item{item(1, "1")}, ErrEmptySupplier, ""},
		{"no creator", "s", "", []Item{item(1, "1")}, ErrEmptyCreator, ""},
		{"no items", "s", "u", nil, ErrEmptyItems, ""},
		{"zero quantity", "s", "u", []Item{item(0, "1")}, ErrInvalidQuantity, ""},
		{"negative cost", "s", "u", []Item{item(1, "-1")}, ErrNegativeCost, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPurchase(tt.supplier, tt.creator, tt.items, time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewPurchase() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if !p.Total.Equal(decimal.RequireFromString(tt.wantTotal)) {
					t.Errorf("Total = %s, want %s", p.Total, tt.wantTotal)
				}
				if p.Status != StatusPending {
					t.Errorf("Status = %s", p.Status)
				}
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	p := &Purchase{Status: StatusPending}
	if err := p.Complete(time.Now()); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if err := p.Complete(time.Now()); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("segundo Complete() error = %v", err)
	}
	if err := p.Cancel(time.Now()); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if err := p.Cancel(time.Now()); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("segundo Cancel() error = %v", err)
	}
}
