// Package apperror define os tipos de erro estáveis expostos pela aplicação.
//
// Cada erro carrega um Kind legível por máquina e uma mensagem para o usuário.
// O erro original, quando existe, fica acessível via errors.Unwrap e nunca é
// enviado ao cliente HTTP.
package apperror

import (
	"errors"
)

// Kind identifica a categoria de um erro
type Kind string

// Categorias de validação e pré-condição
const (
	KindValidation              Kind = "ValidationError"
	KindInvalidAmount           Kind = "InvalidAmount"
	KindInvalidTenderAmount     Kind = "InvalidTenderAmount"
	KindInsufficientPayment     Kind = "InsufficientPayment"
	KindInsufficientStock       Kind = "InsufficientStock"
	KindCreditLimitExceeded     Kind = "CreditLimitExceeded"
	KindTillAlreadyOpen         Kind = "TillAlreadyOpen"
	KindNoOpenTill              Kind = "NoOpenTill"
	KindAlreadyClosed           Kind = "AlreadyClosed"
	KindProductInactive         Kind = "ProductInactive"
	KindNoPendingReceivables    Kind = "NoPendingReceivables"
	KindAlreadyPaid             Kind = "AlreadyPaid"
	KindOverpayment             Kind = "Overpayment"
	KindInvalidStatusTransition Kind = "InvalidStatusTransition"
	KindUnauthorized            Kind = "Unauthorized"
)

// Categorias de busca
const (
	KindNotFound         Kind = "NotFound"
	KindCustomerNotFound Kind = "CustomerNotFound"
	KindCategoryNotFound Kind = "CategoryNotFound"
	KindSupplierNotFound Kind = "SupplierNotFound"
)

// Categorias de integridade
const (
	KindDuplicateCode           Kind = "DuplicateCode"
	KindDuplicateTaxID          Kind = "DuplicateTaxId"
	KindDuplicateDocument       Kind = "DuplicateDocument"
	KindDuplicateEmail          Kind = "DuplicateEmail"
	KindCategoryInUse           Kind = "CategoryInUse"
	KindReferencedByTransaction Kind = "ReferencedByTransaction"
)

// Categorias de infraestrutura
const (
	KindTransient Kind = "Transient"
	KindInternal  Kind = "Internal"
)

// Error é o erro de domínio da aplicação
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New cria um novo erro com a categoria e a mensagem informadas
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap cria um erro da categoria informada preservando a causa
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Validation cria um erro de validação
func Validation(message string) *Error {
	return New(KindValidation, message)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is compara pela categoria e pela mensagem, para que um erro derivado de um
// sentinela (via Wrap) continue reconhecível com errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// KindOf retorna a categoria do primeiro *Error na cadeia de err
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf retorna a mensagem pública do erro. Erros sem categoria recebem
// uma mensagem genérica.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "erro interno do servidor"
}

// IsRetryable indica se a operação pode ser repetida pelo chamador
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransient
}
