package repository

import (
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-conveniencia/internal/domain/customer"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/product"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/purchase"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/till"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/user"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE tratados
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeInvalidTextRep       = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	errReferenced      = apperror.New(apperror.KindReferencedByTransaction, "registro referenciado por outras movimentações")
	errMissingRelation = apperror.Validation("registro relacionado não encontrado")
	errConstraint      = apperror.Validation("dados violam uma restrição do banco")
	errDuplicate       = apperror.Validation("registro duplicado")
	errInvalidID       = apperror.Validation("identificador inválido")
)

// constraintErrors traduz restrições do schema para os erros de domínio
var constraintErrors = map[string]error{
	"ux_users_email":                    user.ErrDuplicateEmail,
	"ux_categories_name":                product.ErrDuplicateCategory,
	"ux_products_code_active":           product.ErrDuplicateCode,
	"ck_products_stock":                 product.ErrInsufficientStock,
	"fk_products_category":              product.ErrCategoryNotFound,
	"ux_tills_single_open":              till.ErrTillAlreadyOpen,
	"fk_sales_till":                     till.ErrTillNotFound,
	"fk_sales_customer":                 customer.ErrCustomerNotFound,
	"fk_sale_items_product":             product.ErrProductNotFound,
	"ux_customers_document_active":      customer.ErrDuplicateTaxID,
	"fk_receivables_customer":           customer.ErrCustomerNotFound,
	"fk_receivable_payments_receivable": customer.ErrReceivableNotFound,
	"ux_suppliers_document":             purchase.ErrDuplicateDocument,
	"fk_purchases_supplier":             purchase.ErrSupplierNotFound,
	"fk_purchase_items_product":         product.ErrProductNotFound,
}

// translate converte erros do pgx em erros de domínio. notFound é usado
// para pgx.ErrNoRows; op descreve a operação nas mensagens internas.
func translate(err error, notFound error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		switch pgErr.Code {
		case codeUniqueViolation:
			return errDuplicate
		case codeForeignKeyViolation:
			return errMissingRelation
		case codeCheckViolation:
			return errConstraint
		case codeInvalidTextRep:
			if notFound != nil {
				return notFound
			}
			return errInvalidID
		case codeSerializationFailure, codeDeadlockDetected:
			return apperror.Wrap(apperror.KindTransient, "conflito de concorrência, tente novamente", err)
		}
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return apperror.Wrap(apperror.KindTransient, "banco de dados indisponível, tente novamente", err)
	}
	return fmt.Errorf("erro ao %s: %w", op, err)
}

// translateDelete trata a violação de chave estrangeira em exclusões como
// registro referenciado
func translateDelete(err error, notFound, referenced error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		if referenced != nil {
			return referenced
		}
		return errReferenced
	}
	return translate(err, notFound, op)
}
