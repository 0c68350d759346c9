// Package config loads the YAML configuration of the pointkey tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/pointkey/logger"
	"github.com/f3rmion/pointkey/merkle"
	"github.com/f3rmion/pointkey/registry"
)

// Commitment hash names accepted in RegistryConfig.CommitmentHash.
const (
	HashSHA256  = "sha256"
	HashBlake2b = "blake2b"
)

// Config is the top-level configuration.
type Config struct {
	Log        logger.Config  `yaml:"log"`
	Backend    string         `yaml:"backend"`
	Registry   RegistryConfig `yaml:"registry"`
	Validators []string       `yaml:"validators"`
}

// RegistryConfig configures the validator registry and its store.
type RegistryConfig struct {
	// Path of the bolt database. Empty disables persistence.
	Path   string `yaml:"path"`
	Limit  uint64 `yaml:"limit"`
	Shards int    `yaml:"shards"`
	// CommitmentHash selects the node hasher for the registry root.
	CommitmentHash string `yaml:"commitment_hash"`
	// SkipInvalid drops malformed keys instead of failing.
	SkipInvalid bool `yaml:"skip_invalid"`
}

// DefaultConfig returns the configuration used for unset fields.
func DefaultConfig() *Config {
	return &Config{
		Log:     logger.DefaultConfig(),
		Backend: registry.BackendGnark,
		Registry: RegistryConfig{
			Limit:          registry.DefaultLimit,
			Shards:         registry.DefaultShards,
			CommitmentHash: HashSHA256,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration values. Validator keys are not decoded
// here; the registry does that with the configured backend.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("configuration is nil")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := registry.BackendDecoder(c.Backend); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	if c.Registry.Limit == 0 {
		return errors.New("registry.limit must be positive")
	}
	if c.Registry.Shards <= 0 {
		return errors.New("registry.shards must be positive")
	}
	if _, err := c.Registry.Hasher(); err != nil {
		return fmt.Errorf("registry.commitment_hash: %w", err)
	}
	return nil
}

// Hasher returns the merkle hasher named by CommitmentHash.
func (c RegistryConfig) Hasher() (merkle.Hasher, error) {
	switch c.CommitmentHash {
	case HashSHA256, "":
		return &merkle.SHA256Hasher{}, nil
	case HashBlake2b:
		return merkle.NewBlake2bHasher(), nil
	default:
		return nil, fmt.Errorf("unknown hash %q", c.CommitmentHash)
	}
}

// Options returns the registry options this configuration selects.
func (c RegistryConfig) Options() ([]registry.Option, error) {
	h, err := c.Hasher()
	if err != nil {
		return nil, err
	}
	return []registry.Option{
		registry.WithHasher(h),
		registry.WithLimit(c.Limit),
		registry.WithShards(c.Shards),
	}, nil
}
