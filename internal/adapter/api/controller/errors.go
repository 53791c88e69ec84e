package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

var kindStatus = map[apperror.Kind]int{
	apperror.KindValidation:          http.StatusBadRequest,
	apperror.KindInvalidAmount:       http.StatusBadRequest,
	apperror.KindInvalidTenderAmount: http.StatusBadRequest,
	apperror.KindProductInactive:     http.StatusBadRequest,

	apperror.KindNotFound:         http.StatusNotFound,
	apperror.KindCustomerNotFound: http.StatusNotFound,
	apperror.KindCategoryNotFound: http.StatusNotFound,
	apperror.KindSupplierNotFound: http.StatusNotFound,

	apperror.KindTillAlreadyOpen:         http.StatusConflict,
	apperror.KindNoOpenTill:              http.StatusConflict,
	apperror.KindAlreadyClosed:           http.StatusConflict,
	apperror.KindInsufficientStock:       http.StatusConflict,
	apperror.KindDuplicateCode:           http.StatusConflict,
	apperror.KindDuplicateTaxID:          http.StatusConflict,
	apperror.KindDuplicateDocument:       http.StatusConflict,
	apperror.KindDuplicateEmail:          http.StatusConflict,
	apperror.KindCategoryInUse:           http.StatusConflict,
	apperror.KindReferencedByTransaction: http.StatusConflict,
	apperror.KindNoPendingReceivables:    http.StatusConflict,
	apperror.KindAlreadyPaid:             http.StatusConflict,
	apperror.KindInvalidStatusTransition: http.StatusConflict,

	apperror.KindInsufficientPayment: http.StatusUnprocessableEntity,
	apperror.KindCreditLimitExceeded: http.StatusUnprocessableEntity,
	apperror.KindOverpayment:         http.StatusUnprocessableEntity,

	apperror.KindUnauthorized: http.StatusUnauthorized,
	apperror.KindTransient:    http.StatusServiceUnavailable,
	apperror.KindInternal:     http.StatusInternalServerError,
}

// statusFor retorna o status HTTP de uma categoria de erro
func statusFor(kind apperror.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError escreve a resposta de erro. Erros sem categoria viram 500
// e o texto original só vai para o log.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	kind := apperror.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		log.Error("erro ao processar requisição", "method", ctx.Request.Method, "path", ctx.FullPath(), "kind", kind, "error", err)
	}
	ctx.JSON(status, dto.NewErrorResponse(status, kind, apperror.MessageOf(err), ""))
}

// respondBindError responde a um corpo de requisição inválido
func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, apperror.KindValidation, "dados inválidos", err.Error()))
}
