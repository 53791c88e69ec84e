package catalog

import (
	"context"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
)

// ImportRow é uma linha lida da planilha de produtos
type ImportRow struct {
	Line   int
	Fields product.Fields
	Err    error // erro de leitura da própria linha
}

// RowError descreve uma linha que não foi importada
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportResult resume uma importação de catálogo
type ImportResult struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  []RowError `json:"errors"`
}

// ImportProducts cadastra cada linha válida. Linhas com erro são ignoradas e
// listadas no resultado; as demais seguem sendo importadas.
func (s *Service) ImportProducts(ctx context.Context, rows []ImportRow) (*ImportResult, error) {
	res := &ImportResult{}
	for _, row := range rows {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		err := row.Err
		if err == nil {
			_, err = s.CreateProduct(ctx, row.Fields)
		}
		if err != nil {
			if apperror.KindOf(err) == apperror.KindInternal || apperror.KindOf(err) == apperror.KindTransient {
				return res, err
			}
			res.Skipped++
			res.Errors = append(res.Errors, RowError{Line: row.Line, Message: apperror.MessageOf(err)})
			continue
		}
		res.Created++
	}
	s.logger.Info("importação de produtos concluída", "created", res.Created, "skipped", res.Skipped)
	return res, nil
}
