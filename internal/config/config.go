package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort              string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL           string        `env:"DATABASE_URL,required"`
	RedisAddr             string        `env:"REDIS_ADDR"`
	RedisPassword         string        `env:"REDIS_PASSWORD"`
	RedisDB               int           `env:"REDIS_DB" envDefault:"0"`
	QualificationCacheTTL time.Duration `env:"QUALIFICATION_CACHE_TTL" envDefault:"60s"`
	ProgramCatalogPath    string        `env:"PROGRAM_CATALOG_PATH"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
