// Package config carrega a configuração da aplicação a partir do ambiente.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de armazenamento suportados
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config agrupa todas as configurações da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Business BusinessConfig
	LogLevel string
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port               string
	GinMode            string
	BasePath           string
	CORSAllowedOrigins []string
}

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	Driver          string
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	RunMigrations   bool
}

// AuthConfig contém as configurações de autenticação JWT
type AuthConfig struct {
	Required   bool
	SecretKey  string
	Expiration time.Duration
}

// BusinessConfig contém parâmetros de negócio da loja
type BusinessConfig struct {
	Location              *time.Location
	DefaultCreditTermDays int
	ExpiryWindowDays      int
}

// ConnectionString retorna a URL de conexão para o PostgreSQL
func (c DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Load lê as variáveis de ambiente (e um arquivo .env opcional já carregado
// no ambiente) e monta a configuração
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	setDefaults(v)

	_ = v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = v.BindEnv("DATABASE_URL")

	loc, err := time.LoadLocation(v.GetString("BUSINESS_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("fuso horário inválido %q: %w", v.GetString("BUSINESS_TIMEZONE"), err)
	}

	driver := strings.ToLower(v.GetString("STORAGE_DRIVER"))
	if driver != StorageDriverPostgres && driver != StorageDriverMemory {
		return nil, fmt.Errorf("driver de armazenamento desconhecido: %s", driver)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			GinMode:            v.GetString("GIN_MODE"),
			BasePath:           v.GetString("API_BASE_PATH"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:          driver,
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: time.Duration(v.GetInt("DB_MAX_LIFETIME")) * time.Second,
			RunMigrations:   v.GetBool("RUN_MIGRATIONS"),
		},
		Auth: AuthConfig{
			Required:   v.GetBool("AUTH_REQUIRED"),
			SecretKey:  v.GetString("JWT_SECRET_KEY"),
			Expiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		},
		Business: BusinessConfig{
			Location:              loc,
			DefaultCreditTermDays: v.GetInt("DEFAULT_CREDIT_TERM_DAYS"),
			ExpiryWindowDays:      v.GetInt("EXPIRY_WINDOW_DAYS"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.Auth.Required && cfg.Auth.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY é obrigatório quando AUTH_REQUIRED=true")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("API_BASE_PATH", "/api/v1")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "pdv_conveniencia")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 1)
	v.SetDefault("DB_MAX_LIFETIME", 3600)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("AUTH_REQUIRED", true)
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("BUSINESS_TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("DEFAULT_CREDIT_TERM_DAYS", 30)
	v.SetDefault("EXPIRY_WINDOW_DAYS", 30)
	v.SetDefault("LOG_LEVEL", "info")
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
