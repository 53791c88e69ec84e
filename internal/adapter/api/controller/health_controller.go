package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
)

// Pinger verifica a disponibilidade do armazenamento
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController responde às verificações de saúde da API
type HealthController struct {
	store   Pinger
	storage string
	logger  logger.Logger
}

// NewHealthController cria uma nova instância de HealthController. store
// pode ser nil quando não há banco externo.
func NewHealthController(store Pinger, storage string, logger logger.Logger) *HealthController {
	return &HealthController{
		store:   store,
		storage: storage,
		logger:  logger,
	}
}

// Health verifica se a API e o banco estão no ar
// @Summary Verificar saúde da API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	if c.store != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.store.Ping(pingCtx); err != nil {
			c.logger.Error("banco de dados indisponível", "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "storage": c.storage})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": c.storage,
		"time":    time.Now().Format(time.RFC3339),
	})
}
