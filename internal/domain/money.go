package domain

import (
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ErrSubCent indica um valor monetário com frações de centavo
var ErrSubCent = apperror.Validation("valores monetários aceitam no máximo duas casas decimais")

// CheckCents falha com ErrSubCent se algum valor não for múltiplo de um centavo.
// Zeros à direita ("10.000") são aceitos.
func CheckCents(values ...decimal.Decimal) error {
	for _, v := range values {
		if !v.Equal(v.Truncate(2)) {
			return ErrSubCent
		}
	}
	return nil
}
