package product

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewProductValidation(t *testing.T) {
	valid := Fields{Code: " 789 ", Name: " Refrigerante ", SellPrice: decimal.RequireFromString("6.50"), Stock: 10, MinStock: 2}

	tests := []struct {
		name    string
		mutate  func(f *Fields)
		wantErr error
	}{
		{"valid", func(f *Fields) {}, nil},
		{"empty name", func(f *Fields) { f.Name = "  " }, ErrEmptyName},
		{"empty code", func(f *Fields) { f.Code = "" }, ErrEmptyCode},
		{"negative price", func(f *Fields) { f.SellPrice = decimal.NewFromInt(-1) }, ErrNegativePrice},
		{"negative cost", func(f *Fields) { f.CostPrice = decimal.NewFromInt(-1) }, ErrNegativePrice},
		{"negative stock", func(f *Fields) { f.Stock = -1 }, ErrNegativeStock},
		{"negative min stock", func(f *Fields) { f.MinStock = -1 }, ErrNegativeStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			p, err := NewProduct(f)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewProduct() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil {
				if p.ID == "" || !p.Active || p.Code != "789" || p.Name != "Refrigerante" {
					t.Errorf("produto inesperado: %+v", p)
				}
			}
		})
	}
}

func TestUpdateKeepsStock(t *testing.T) {
	p, err := NewProduct(Fields{Code: "1", Name: "Água", SellPrice: decimal.NewFromInt(3), Stock: 7})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Update(Fields{Code: "1", Name: "Água mineral", SellPrice: decimal.NewFromInt(4), Stock: 999}); err != nil {
		t.Fatal(err)
	}
	if p.Stock != 7 || p.Name != "Água mineral" {
		t.Errorf("Update() alterou estoque ou não aplicou nome: %+v", p)
	}
}

func TestCriticalAndExpiring(t *testing.T) {
	soon := time.Now().Add(48 * time.Hour)
	p := &Product{Active: true, Stock: 2, MinStock: 2, ExpiresAt: &soon}

	if !p.IsCritical() {
		t.Error("estoque igual ao mínimo deve ser crítico")
	}
	if !p.ExpiresBefore(time.Now().Add(72 * time.Hour)) {
		t.Error("validade em 48h deve vencer antes de 72h")
	}
	p.Active = false
	if p.IsCritical() || p.ExpiresBefore(time.Now().Add(72*time.Hour)) {
		t.Error("produto inativo não entra nos alertas")
	}
}
