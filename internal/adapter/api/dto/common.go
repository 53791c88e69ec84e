package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DateLayout é o formato das datas sem horário (validade, vencimento)
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = apperror.Validation("data inválida, use o formato AAAA-MM-DD")
	ErrInvalidID   = apperror.Validation("identificador inválido")
)

// CheckIDs valida os identificadores informados no corpo da requisição.
// Valores vazios são ignorados.
func CheckIDs(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return ErrInvalidID
		}
	}
	return nil
}

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse representa a estrutura de resposta para operações bem-sucedidas
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageMeta acompanha as respostas de listas paginadas
type PageMeta struct {
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Pagination representa a estrutura de paginação
type Pagination struct {
	Page     int
	PageSize int
}

// GetPagination retorna uma estrutura de paginação com valores padrão
func GetPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}

	if pageSize < 1 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// Offset retorna quantos registros pular
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Meta monta os metadados da página para o total informado
func (p Pagination) Meta(totalCount int) PageMeta {
	return PageMeta{
		TotalCount: totalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(totalCount, p.PageSize),
	}
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, kind apperror.Kind, message, details string) ErrorResponse {
	return ErrorResponse{
		Code:    code,
		Kind:    string(kind),
		Message: message,
		Details: details,
	}
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Message: message,
		Data:    data,
	}
}

// Money formata um valor monetário com duas casas decimais
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// MoneyPtr é Money para valores opcionais
func MoneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := Money(*d)
	return &s
}

// FormatDate formata uma data sem horário
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate converte uma data AAAA-MM-DD opcional
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *value)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// calculateTotalPages calcula o número total de páginas com base no total de registros e no tamanho da página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}
