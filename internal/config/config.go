package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file kept next to the data file.
const FileName = "splitbooks.yaml"

// Config represents the top-level splitbooks.yaml configuration.
type Config struct {
	Ledger LedgerConfig `yaml:"ledger"`
	Git    GitConfig    `yaml:"git"`
}

// LedgerConfig names the household and locates the data file within the
// data directory.
type LedgerConfig struct {
	Household string `yaml:"household"`
	DataFile  string `yaml:"data_file"`
}

// GitConfig controls version control of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a splitbooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Ledger.DataFile == "" {
		cfg.Ledger.DataFile = "transactions.json"
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new household.
func Default(household string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Household: household,
			DataFile:  "transactions.json",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Splitbooks",
			AuthorEmail: "ledger@splitbooks.dev",
		},
	}
}
