package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hugohenrick/pdv-conveniencia/internal/config"
	"github.com/hugohenrick/pdv-conveniencia/internal/infrastructure/database"
	"github.com/hugohenrick/pdv-conveniencia/pkg/logger"
	"github.com/joho/godotenv"
)

const usage = `uso: migration [-steps N] <up|down|version>

  up       aplica as migrações pendentes
  down     desfaz as últimas N migrações (padrão 1)
  version  mostra a versão atual do schema
`

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	steps := flag.Int("steps", 1, "quantidade de migrações a desfazer")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	migrationLogger := logger.NewLogger(cfg.LogLevel)

	switch flag.Arg(0) {
	case "up":
		err = database.RunMigrations(cfg.Database, migrationLogger)
	case "down":
		err = database.RollbackMigrations(cfg.Database, *steps, migrationLogger)
	case "version":
		var (
			version uint
			dirty   bool
		)
		version, dirty, err = database.MigrationVersion(cfg.Database)
		if err == nil {
			fmt.Printf("versão: %d (dirty: %t)\n", version, dirty)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		migrationLogger.Error("erro ao executar migração", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}
