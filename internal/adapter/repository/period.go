package repository

import (
	"fmt"
	"strings"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
)

// rangeClause monta o filtro [start, end) sobre column, somando-se aos
// filtros e argumentos já existentes
func rangeClause(column string, rng period.Range, args []any, where ...string) (string, []any) {
	if !rng.Start.IsZero() {
		args = append(args, rng.Start)
		where = append(where, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if !rng.End.IsZero() {
		args = append(args, rng.End)
		where = append(where, fmt.Sprintf("%s < $%d", column, len(args)))
	}
	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}
