// Package excel lê planilhas de cadastro de produtos.
package excel

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/pdv-conveniencia/internal/service/catalog"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	ErrEmptyFile     = apperror.Validation("planilha vazia")
	ErrNoSheets      = apperror.Validation("planilha sem abas")
	ErrNoDataRows    = apperror.Validation("planilha sem linhas de dados")
	ErrInvalidFormat = apperror.Validation("arquivo não é uma planilha xlsx válida")
)

var headerAliases = map[string]string{
	"codigo":         "code",
	"código":         "code",
	"code":           "code",
	"ean":            "code",
	"codigo barras":  "code",
	"nome":           "name",
	"produto":        "name",
	"name":           "name",
	"descricao":      "description",
	"descrição":      "description",
	"description":    "description",
	"preco venda":    "sell_price",
	"preço venda":    "sell_price",
	"preço de venda": "sell_price",
	"sell price":     "sell_price",
	"preco custo":    "cost_price",
	"preço custo":    "cost_price",
	"preço de custo": "cost_price",
	"cost price":     "cost_price",
	"estoque":        "stock",
	"quantidade":     "stock",
	"stock":          "stock",
	"estoque minimo": "min_stock",
	"estoque mínimo": "min_stock",
	"min stock":      "min_stock",
	"validade":       "expires_at",
	"vencimento":     "expires_at",
	"expires at":     "expires_at",
	"categoria id":   "category_id",
	"category id":    "category_id",
}

var requiredColumns = []string{"code", "name", "sell_price"}

// ParseProductRows lê a primeira aba da planilha. Erros estruturais (arquivo
// inválido, colunas obrigatórias ausentes) abortam a leitura; erros de uma
// linha ficam registrados em ImportRow.Err.
func ParseProductRows(reader io.Reader) ([]catalog.ImportRow, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, ErrInvalidFormat.Message, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler linhas da planilha: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	colMap := mapColumns(rows[0])
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, apperror.Validation("coluna obrigatória ausente: " + col)
		}
	}

	result := make([]catalog.ImportRow, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		if isBlank(cells) {
			continue
		}
		row := catalog.ImportRow{Line: index + 1}
		row.Err = fillFields(&row, cells, colMap)
		result = append(result, row)
	}

	if len(result) == 0 {
		return nil, ErrNoDataRows
	}
	return result, nil
}

func fillFields(row *catalog.ImportRow, cells []string, colMap map[string]int) error {
	f := &row.Fields
	f.Code = strings.TrimSpace(readCell(cells, colMap, "code"))
	f.Name = strings.TrimSpace(readCell(cells, colMap, "name"))
	f.Description = strings.TrimSpace(readCell(cells, colMap, "description"))

	var err error
	if f.SellPrice, err = parseMoney(readCell(cells, colMap, "sell_price")); err != nil {
		return cellError("preço de venda", err)
	}
	if raw := readCell(cells, colMap, "cost_price"); strings.TrimSpace(raw) != "" {
		if f.CostPrice, err = parseMoney(raw); err != nil {
			return cellError("preço de custo", err)
		}
	}
	if raw := readCell(cells, colMap, "stock"); strings.TrimSpace(raw) != "" {
		if f.Stock, err = parseInt(raw); err != nil {
			return cellError("estoque", err)
		}
	}
	if raw := readCell(cells, colMap, "min_stock"); strings.TrimSpace(raw) != "" {
		if f.MinStock, err = parseInt(raw); err != nil {
			return cellError("estoque mínimo", err)
		}
	}
	if raw := strings.TrimSpace(readCell(cells, colMap, "expires_at")); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return cellError("validade", err)
		}
		f.ExpiresAt = &date
	}
	if raw := strings.TrimSpace(readCell(cells, colMap, "category_id")); raw != "" {
		f.CategoryID = &raw
	}
	return nil
}

func cellError(column string, err error) error {
	return apperror.Validation(fmt.Sprintf("%s inválido: %s", column, err))
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	return strings.Join(strings.Fields(value), " ")
}

func readCell(row []string, colMap map[string]int, column string) string {
	idx, ok := colMap[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseMoney aceita "12.50", "12,50" e "1.234,56"
func parseMoney(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "R$")
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("valor vazio")
	}
	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.New("não é um número")
	}
	return d.Round(2), nil
}

func parseInt(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, errors.New("valor vazio")
	}
	asFloat, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0, errors.New("não é um número")
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, errors.New("deve ser um número inteiro")
	}
	return int(asFloat), nil
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "01-02-06", "2/1/2006"}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	// Células de data sem formatação chegam como número serial do Excel
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, errors.New("data não reconhecida")
}
