// Package period traduz os filtros de período usados nas consultas de caixa,
// vendas e compras para um intervalo [Start, End) no fuso horário da loja.
package period

import (
	"time"

	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
)

// Period representa uma opção de filtro por data
type Period string

const (
	Today     Period = "today"
	Yesterday Period = "yesterday"
	Last7Days Period = "last7days"
	Month     Period = "month"
	LastMonth Period = "lastmonth"
	Year      Period = "year"
	All       Period = "all"
	Custom    Period = "custom"
)

// ErrInvalidPeriod indica um período desconhecido ou incompleto
var ErrInvalidPeriod = apperror.New(apperror.KindValidation, "período inválido")

// Range é um intervalo semiaberto [Start, End). Um Range zero não filtra nada.
type Range struct {
	Start time.Time
	End   time.Time
}

// IsZero indica se o intervalo não restringe a consulta
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains verifica se t está dentro do intervalo
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !t.Before(r.End) {
		return false
	}
	return true
}

// Parse converte o texto recebido na API. Texto vazio equivale a All.
func Parse(value string) (Period, error) {
	switch p := Period(value); p {
	case "":
		return All, nil
	case Today, Yesterday, Last7Days, Month, LastMonth, Year, All, Custom:
		return p, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Resolve calcula o intervalo do período a partir de now, no fuso loc.
// Para Custom, from e to são datas (inclusive) e ambos são obrigatórios.
func Resolve(p Period, now time.Time, loc *time.Location, from, to *time.Time) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := startOfDay(now)

	switch p {
	case Today:
		return Range{Start: today, End: today.AddDate(0, 0, 1)}, nil
	case Yesterday:
		return Range{Start: today.AddDate(0, 0, -1), End: today}, nil
	case Last7Days:
		return Range{Start: today.AddDate(0, 0, -6), End: today.AddDate(0, 0, 1)}, nil
	case Month:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Range{Start: first, End: first.AddDate(0, 1, 0)}, nil
	case LastMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Range{Start: first.AddDate(0, -1, 0), End: first}, nil
	case Year:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Range{Start: first, End: first.AddDate(1, 0, 0)}, nil
	case All, "":
		return Range{}, nil
	case Custom:
		if from == nil || to == nil {
			return Range{}, ErrInvalidPeriod
		}
		start := dateIn(*from, loc)
		end := dateIn(*to, loc).AddDate(0, 0, 1)
		if !start.Before(end) {
			return Range{}, ErrInvalidPeriod
		}
		return Range{Start: start, End: end}, nil
	default:
		return Range{}, ErrInvalidPeriod
	}
}

// dateIn interpreta a data do calendário de t no fuso loc
func dateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
