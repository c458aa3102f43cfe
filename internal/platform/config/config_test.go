package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	adminHex       = "0x00000000000000000000000000000000000000a1"
	marketplaceHex = "0x00000000000000000000000000000000000000b2"
)

func TestLoadAppliesYAMLThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "provenance.yaml")
	contents := []byte(`
serviceName: registry
storage: sqlite
sqlitePath: /tmp/registry.db
adminPrincipal: "` + adminHex + `"
marketplacePrincipal: "` + marketplaceHex + `"
outboxPollInterval: 250ms
enforceDesignatedBuyer: true
`)
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PROVENANCE_HTTP_PORT", "9090")
	t.Setenv("PROVENANCE_KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("PROVENANCE_RECHECK_STOLEN_AT_PURCHASE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServiceName != "registry" || cfg.Storage != StorageSQLite || cfg.SQLitePath != "/tmp/registry.db" {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected env port override, got %s", cfg.HTTPPort)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "b:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if cfg.OutboxPollInterval != 250*time.Millisecond {
		t.Fatalf("unexpected poll interval: %s", cfg.OutboxPollInterval)
	}
	if !cfg.EnforceDesignatedBuyer || !cfg.RecheckStolenAtPurchase {
		t.Fatalf("policy flags not applied: %+v", cfg)
	}
	if cfg.OutboxBatchSize != 100 {
		t.Fatalf("expected default batch size, got %d", cfg.OutboxBatchSize)
	}
	if !strings.EqualFold(cfg.Admin().Hex(), adminHex) {
		t.Fatalf("unexpected admin principal: %s", cfg.Admin().Hex())
	}
}

func TestLoadRejectsMissingPrincipals(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected validation error without principals")
	}
}

func TestValidateStorageBackends(t *testing.T) {
	cfg := Defaults()
	cfg.AdminPrincipal = adminHex
	cfg.MarketplacePrincipal = marketplaceHex
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory defaults should validate: %v", err)
	}

	cfg.Storage = StoragePostgres
	if err := cfg.Validate(); err == nil {
		t.Fatalf("postgres without dsn must fail")
	}

	cfg.Storage = "cassandra"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("unknown backend must fail")
	}

	cfg.Storage = StorageMemory
	cfg.MarketplacePrincipal = "0x0000000000000000000000000000000000000000"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("zero marketplace principal must fail")
	}
}
