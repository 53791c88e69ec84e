package main

import (
	"context"
	"log"
	"os"

	"github.com/hugohenrick/pdv-conveniencia/internal/config"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	appLogger := logger.NewLogger(cfg.LogLevel)

	// Criar aplicação
	app, err := NewApp(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Error("erro ao inicializar aplicação", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Iniciar o servidor
	if err := app.Start(); err != nil {
		appLogger.Error("servidor encerrado com erro", "error", err)
		app.Close()
		os.Exit(1)
	}
}
