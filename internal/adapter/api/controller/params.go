package controller

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-conveniencia/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-conveniencia/internal/domain/period"
	"github.com/hugohenrick/pdv-conveniencia/pkg/apperror"
	"github.com/hugohenrick/pdv-conveniencia/pkg/auth"
)

func pagination(ctx *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	return dto.GetPagination(page, size)
}

// parseRange lê os parâmetros period, from e to (AAAA-MM-DD) da query string
func parseRange(ctx *gin.Context) (period.Period, *time.Time, *time.Time, error) {
	p, err := period.Parse(ctx.Query("period"))
	if err != nil {
		return "", nil, nil, err
	}
	from, err := queryDate(ctx, "from")
	if err != nil {
		return "", nil, nil, err
	}
	to, err := queryDate(ctx, "to")
	if err != nil {
		return "", nil, nil, err
	}
	return p, from, to, nil
}

func queryDate(ctx *gin.Context, key string) (*time.Time, error) {
	value, ok := ctx.GetQuery(key)
	if !ok {
		return nil, nil
	}
	return dto.ParseDate(&value)
}

// actorID devolve o id informado ou, na falta dele, o do usuário autenticado
func actorID(ctx *gin.Context, informed string) string {
	if informed != "" {
		return informed
	}
	u, _ := auth.GetCurrentUser(ctx)
	return u.ID
}

// RequireID responde com notFound quando o parâmetro :id da rota não é um UUID.
// Rotas sem :id passam direto.
func RequireID(notFound error) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.Param("id")
		if id == "" {
			ctx.Next()
			return
		}
		if _, err := uuid.Parse(id); err != nil {
			kind := apperror.KindOf(notFound)
			status := statusFor(kind)
			ctx.AbortWithStatusJSON(status, dto.NewErrorResponse(status, kind, apperror.MessageOf(notFound), ""))
			return
		}
		ctx.Next()
	}
}
