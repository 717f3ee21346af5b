package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Bench   BenchConfig   `yaml:"bench"`
	Seed    SeedConfig    `yaml:"seed"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP Listen Address (e.g. :8080)
}

const (
	DriverSQLite  = "sqlite"
	DriverJournal = "journal"
)

type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite | journal
	Path   string `yaml:"path"`
}

type BenchConfig struct {
	Iterations int `yaml:"iterations"`
}

type SeedConfig struct {
	Enabled bool `yaml:"enabled"` // insert sample students into an empty store
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "student_data",
		},
		Bench: BenchConfig{
			Iterations: 2000,
		},
		Seed: SeedConfig{
			Enabled: true,
		},
	}
}

func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range []string{"configs/studentdb.yaml", "studentdb.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, nil
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Storage.Driver != DriverSQLite && cfg.Storage.Driver != DriverJournal {
		cfg.Storage.Driver = DriverSQLite
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "student_data"
	}
	if cfg.Bench.Iterations <= 0 {
		cfg.Bench.Iterations = 2000
	}
}
