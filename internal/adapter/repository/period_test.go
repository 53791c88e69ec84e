package repository

import (
	"testing"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
)

func TestRangeClause(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	tests := []struct {
		name      string
		rng       period.Range
		args      []any
		where     []string
		wantSQL   string
		wantCount int
	}{
		{"all", period.Range{}, nil, nil, "", 0},
		{"bounded", period.Range{Start: start, End: end}, nil, nil, " WHERE created_at >= $1 AND created_at < $2", 2},
		{"with filters", period.Range{Start: start}, []any{"s1"}, []string{"supplier_id = $1"}, " WHERE supplier_id = $1 AND created_at >= $2", 2},
		{"only filters", period.Range{}, []any{"s1"}, []string{"supplier_id = $1"}, " WHERE supplier_id = $1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := rangeClause("created_at", tt.rng, tt.args, tt.where...)
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantCount {
				t.Errorf("len(args) = %d, want %d", len(args), tt.wantCount)
			}
		})
	}
}

func TestPageClause(t *testing.T) {
	args := []any{"x"}
	if got := pageClause(&args, 10, 20); got != " LIMIT $2 OFFSET $3" || len(args) != 3 {
		t.Errorf("pageClause() = %q, args = %d", got, len(args))
	}
	args = nil
	if got := pageClause(&args, 0, 0); got != "" || len(args) != 0 {
		t.Errorf("pageClause(0, 0) = %q", got)
	}
}
