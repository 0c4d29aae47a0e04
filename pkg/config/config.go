// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the mint service configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Ethereum EthereumConfig `yaml:"ethereum"`
	Pinata   PinataConfig   `yaml:"pinata"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" default:"33554432"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"biomint"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
}

// RedisConfig contains optional Redis settings for the advisory
// fingerprint cache. An empty URL disables the cache entirely.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size" default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"3s"`
}

// EthereumConfig contains ledger client settings
type EthereumConfig struct {
	RPCURL              string        `yaml:"rpc_url" validate:"required,url"`
	ChainID             int64         `yaml:"chain_id" default:"1" validate:"gt=0"`
	ContractAddress     string        `yaml:"contract_address" validate:"required"`
	MinterPrivateKey    string        `yaml:"minter_private_key"`
	MinterKeyEnv        string        `yaml:"minter_key_env" default:"MINTER_PRIVATE_KEY"`
	MinterKeySealed     string        `yaml:"minter_key_sealed"`
	MasterKeyEnv        string        `yaml:"master_key_env" default:"BIOMINT_MASTER_KEY"`
	GasLimitBuffer      uint64        `yaml:"gas_limit_buffer" default:"10000"`
	MaxGasPriceGwei     string        `yaml:"max_gas_price_gwei" default:"20"`
	ConfirmationTimeout time.Duration `yaml:"confirmation_timeout" default:"3m"`
	PollInterval        time.Duration `yaml:"poll_interval" default:"2s"`
	RequestTimeout      time.Duration `yaml:"request_timeout" default:"30s"`
}

// PinataConfig contains settings for the IPFS pinning service
type PinataConfig struct {
	BaseURL   string        `yaml:"base_url" default:"https://api.pinata.cloud" validate:"required,url"`
	APIKey    string        `yaml:"api_key"`
	APISecret string        `yaml:"api_secret"`
	Timeout   time.Duration `yaml:"timeout" default:"60s"`
}

// AuthConfig contains optional JWT validation settings. When JWKSURL is
// empty the mint endpoints are served unauthenticated.
type AuthConfig struct {
	JWKSURL string `yaml:"jwks_url"`
	Issuer  string `yaml:"issuer"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// Load reads, defaults, and validates configuration from a YAML file.
// Secrets absent from the file fall back to environment variables.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides pulls secrets from the environment when the file
// leaves them empty, so config files can be committed without credentials.
func (c *Config) applyEnvOverrides() {
	if c.Ethereum.MinterPrivateKey == "" && c.Ethereum.MinterKeyEnv != "" {
		c.Ethereum.MinterPrivateKey = os.Getenv(c.Ethereum.MinterKeyEnv)
	}
	if c.Pinata.APIKey == "" {
		c.Pinata.APIKey = os.Getenv("PINATA_API_KEY")
	}
	if c.Pinata.APISecret == "" {
		c.Pinata.APISecret = os.Getenv("PINATA_API_SECRET")
	}
	if c.Database.Password == "" {
		c.Database.Password = os.Getenv("DATABASE_PASSWORD")
	}
}
