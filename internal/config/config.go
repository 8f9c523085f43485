package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage selecciona el backend de persistencia.
const (
	StorageMemory = "memory"
	StorageDynamo = "dynamo"
)

// Config se carga solo de variables de entorno: en Lambda no hay
// filesystem de configuración, y en dev local alcanza con exportarlas.
type Config struct {
	Port string `env:"PORT" env-default:"8080"`

	// memory | dynamo. Vacío = dynamo si hay tablas configuradas, memory si no.
	Storage string `env:"STORAGE" env-default:""`

	PetsTable     string `env:"PETS_TABLE" env-default:""`
	VaccinesTable string `env:"VACCINES_TABLE" env-default:""`

	AWSRegion string `env:"AWS_REGION" env-default:""`
	// Endpoint alternativo para DynamoDB local en dev/tests.
	AWSEndpointURL string `env:"AWS_ENDPOINT_URL" env-default:""`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.TrimSpace(c.Storage) {
	case "", StorageMemory:
	case StorageDynamo:
		if c.PetsTable == "" || c.VaccinesTable == "" {
			return fmt.Errorf("storage %q requires PETS_TABLE and VACCINES_TABLE", StorageDynamo)
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	return nil
}

// UseDynamo decide el backend efectivo: STORAGE explícito manda; si no,
// la presencia de ambas tablas habilita DynamoDB.
func (c *Config) UseDynamo() bool {
	switch strings.TrimSpace(c.Storage) {
	case StorageDynamo:
		return true
	case StorageMemory:
		return false
	}
	return c.PetsTable != "" && c.VaccinesTable != ""
}
