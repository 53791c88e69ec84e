package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "segredo")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.Server.BasePath != "/api/v1" {
		t.Errorf("servidor inesperado: %+v", cfg.Server)
	}
	if cfg.Database.Driver != StorageDriverPostgres {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %v", cfg.Database.MaxConnLifetime)
	}
	if cfg.Business.Location.String() != "America/Sao_Paulo" {
		t.Errorf("Location = %v", cfg.Business.Location)
	}
	if cfg.Business.DefaultCreditTermDays != 30 {
		t.Errorf("DefaultCreditTermDays = %d", cfg.Business.DefaultCreditTermDays)
	}
	if cfg.Auth.Expiration != 24*time.Hour {
		t.Errorf("Expiration = %v", cfg.Auth.Expiration)
	}
}

func TestLoadOverridesAndValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "memory driver without auth",
			env:  map[string]string{"STORAGE_DRIVER": "MEMORY", "AUTH_REQUIRED": "false", "CORS_ALLOWED_ORIGINS": "http://a, http://b"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Database.Driver != StorageDriverMemory {
					t.Errorf("Driver = %q", cfg.Database.Driver)
				}
				if len(cfg.Server.CORSAllowedOrigins) != 2 || cfg.Server.CORSAllowedOrigins[1] != "http://b" {
					t.Errorf("CORS = %v", cfg.Server.CORSAllowedOrigins)
				}
			},
		},
		{
			name: "database url wins",
			env:  map[string]string{"AUTH_REQUIRED": "false", "DATABASE_URL": "postgres://x@db/pdv"},
			check: func(t *testing.T, cfg *Config) {
				if got := cfg.Database.ConnectionString(); got != "postgres://x@db/pdv" {
					t.Errorf("ConnectionString() = %q", got)
				}
			},
		},
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "mysql", "AUTH_REQUIRED": "false"}, wantErr: true},
		{name: "bad timezone", env: map[string]string{"BUSINESS_TIMEZONE": "Marte/Base", "AUTH_REQUIRED": "false"}, wantErr: true},
		{name: "auth without secret", env: map[string]string{"AUTH_REQUIRED": "true", "JWT_SECRET_KEY": ""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := load(viper.New())
			if (err != nil) != tt.wantErr {
				t.Fatalf("load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConnectionStringFromParts(t *testing.T) {
	c := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: 5433, Name: "n", SSLMode: "disable"}
	if got, want := c.ConnectionString(), "postgres://u:p@h:5433/n?sslmode=disable"; got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
