package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	_, err := Load("/nonexistent/path/studentdb.yaml")
	if err == nil {
		t.Fatal("expected error for nonexistent path")
	}
	// Load with empty path uses default search (may use defaults if no config file)
	cfg, _ := Load("")
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr: got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("default driver: got %s", cfg.Storage.Driver)
	}
	if cfg.Bench.Iterations != 2000 {
		t.Errorf("default iterations: got %d", cfg.Bench.Iterations)
	}
	if !cfg.Seed.Enabled {
		t.Errorf("seeding should default to enabled")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	content := `
server:
  addr: ":9000"
storage:
  driver: "journal"
  path: "test_data"
bench:
  iterations: 50
seed:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr: got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != DriverJournal {
		t.Errorf("driver: got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.Path != "test_data" {
		t.Errorf("path: got %s", cfg.Storage.Path)
	}
	if cfg.Bench.Iterations != 50 {
		t.Errorf("iterations: got %d", cfg.Bench.Iterations)
	}
	if cfg.Seed.Enabled {
		t.Errorf("seed should be disabled")
	}
}

func TestLoadFixesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := `
storage:
  driver: "postgres"
bench:
  iterations: -3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("driver: got %s", cfg.Storage.Driver)
	}
	if cfg.Bench.Iterations != 2000 {
		t.Errorf("iterations: got %d", cfg.Bench.Iterations)
	}
}
