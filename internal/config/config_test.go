package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDevConfig() *Config {
	return &Config{
		JWTSecret:  "dev-secret",
		Port:       "8423",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "user",
		DBPassword: "password",
		DBName:     "blogicum",
		DBSSLMode:  "disable",
		Env:        "development",
		PageSize:   10,
		LoginURL:   "/api/auth/login",
	}
}

func TestValidate_Development(t *testing.T) {
	cfg := validDevConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Port = "" }},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"negative page size", func(c *Config) { c.PageSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDevConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ProductionHardening(t *testing.T) {
	productionBase := func() *Config {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-production-grade-secret-with-32-chars"
		cfg.DBPassword = "not-the-default"
		cfg.DBSSLMode = "require"
		return cfg
	}

	require.NoError(t, productionBase().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"default jwt secret", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "too-short" }},
		{"default db password", func(c *Config) { c.DBPassword = "password" }},
		{"empty db password", func(c *Config) { c.DBPassword = "" }},
		{"ssl disabled", func(c *Config) { c.DBSSLMode = "disable" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := productionBase()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_ProdAliasTreatedAsProduction(t *testing.T) {
	cfg := validDevConfig()
	cfg.Env = "prod"
	assert.Error(t, cfg.Validate())
}
