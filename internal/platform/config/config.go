package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ledger "provenance/contracts/ledger/v1"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "provenance"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config is centralized process configuration.
// Precedence: defaults, then the YAML file, then PROVENANCE_* variables.
type Config struct {
	ServiceName  string   `yaml:"serviceName"  split_words:"true"`
	HTTPPort     string   `yaml:"httpPort"     envconfig:"HTTP_PORT"`
	Storage      string   `yaml:"storage"`
	PostgresDSN  string   `yaml:"postgresDSN"  envconfig:"POSTGRES_DSN"`
	SQLitePath   string   `yaml:"sqlitePath"   envconfig:"SQLITE_PATH"`
	AutoMigrate  bool     `yaml:"autoMigrate"  split_words:"true"`
	KafkaBrokers []string `yaml:"kafkaBrokers" split_words:"true"`

	AdminPrincipal       string `yaml:"adminPrincipal"       split_words:"true"`
	MarketplacePrincipal string `yaml:"marketplacePrincipal" split_words:"true"`

	OutboxPollInterval time.Duration `yaml:"outboxPollInterval" split_words:"true"`
	OutboxBatchSize    int           `yaml:"outboxBatchSize"    split_words:"true"`

	RecheckStolenAtPurchase bool `yaml:"recheckStolenAtPurchase" split_words:"true"`
	EnforceDesignatedBuyer  bool `yaml:"enforceDesignatedBuyer"  split_words:"true"`
}

func Defaults() Config {
	return Config{
		ServiceName:        "provenance",
		HTTPPort:           "8080",
		Storage:            StorageMemory,
		SQLitePath:         "provenance.db",
		AutoMigrate:        true,
		KafkaBrokers:       []string{"localhost:9092"},
		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
	}
}

// Load reads path (optional) and the environment on top of Defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	cfg.KafkaBrokers = compact(cfg.KafkaBrokers)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return errors.New("postgres storage requires postgresDSN")
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("sqlite storage requires sqlitePath")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}

	admin, err := ledger.ParsePrincipal(c.AdminPrincipal)
	if err != nil || ledger.IsZero(admin) {
		return fmt.Errorf("adminPrincipal must be a non-zero address: %q", c.AdminPrincipal)
	}
	operator, err := ledger.ParsePrincipal(c.MarketplacePrincipal)
	if err != nil || ledger.IsZero(operator) {
		return fmt.Errorf("marketplacePrincipal must be a non-zero address: %q", c.MarketplacePrincipal)
	}
	if c.OutboxBatchSize <= 0 {
		return errors.New("outboxBatchSize must be positive")
	}
	return nil
}

func (c Config) Admin() ledger.Principal {
	principal, _ := ledger.ParsePrincipal(c.AdminPrincipal)
	return principal
}

func (c Config) Marketplace() ledger.Principal {
	principal, _ := ledger.ParsePrincipal(c.MarketplacePrincipal)
	return principal
}

func compact(values []string) []string {
	var items []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
