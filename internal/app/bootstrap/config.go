package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config is the resolved runtime configuration. Environment variables named in the tags
// override values from the config file.
type Config struct {
	ServiceID string `env:"SERVICE_ID"`

	HTTPPort int `env:"HTTP_PORT"`
	GRPCPort int `env:"GRPC_PORT"`

	StorageBackend string `env:"STORAGE_BACKEND"`
	DatabaseURL    string `env:"DB_URL"`
	MaxDBConns     int32  `env:"DB_MAX_CONNS"`
	MongoURL       string `env:"MONGO_URL"`
	MongoDatabase  string `env:"MONGO_DATABASE"`
	RedisURL       string `env:"REDIS_URL"`

	JWTSecret  string        `env:"JWT_SECRET"`
	JWTIssuer  string        `env:"JWT_ISSUER"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"`
	BcryptCost int           `env:"BCRYPT_ROUNDS"`

	RevocationSweepInterval time.Duration `env:"REVOCATION_SWEEP_INTERVAL"`
	MunicipalityLimit       int           `env:"MUNICIPALITY_LIMIT"`

	KafkaBrokers []string          `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopics  map[string]string `env:"KAFKA_TOPICS" envSeparator:"," envKeyValSeparator:"="`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// configFile mirrors the YAML schema used by configs/default.yaml.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Storage struct {
		Backend       string `yaml:"backend"`
		PostgresURL   string `yaml:"postgres_url"`
		MaxConns      int32  `yaml:"max_conns"`
		MongoURL      string `yaml:"mongo_url"`
		MongoDatabase string `yaml:"mongo_database"`
	} `yaml:"storage"`
	Dependencies struct {
		RedisURL     string            `yaml:"redis_url"`
		KafkaBrokers []string          `yaml:"kafka_brokers"`
		KafkaTopics  map[string]string `yaml:"kafka_topics"`
	} `yaml:"dependencies"`
	Auth struct {
		Issuer     string `yaml:"jwt_issuer"`
		TokenTTL   string `yaml:"token_ttl"`
		BcryptCost int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:               "sigpac-weather",
		HTTPPort:                8080,
		GRPCPort:                9090,
		StorageBackend:          BackendMemory,
		MaxDBConns:              20,
		MongoDatabase:           "sigpac",
		JWTIssuer:               "sigpac-weather",
		TokenTTL:                30 * 24 * time.Hour,
		BcryptCost:              12,
		RevocationSweepInterval: 10 * time.Minute,
		MunicipalityLimit:       10,
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := applyFile(&cfg, raw); err != nil {
			return Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if f.Service.ID != "" {
		cfg.ServiceID = f.Service.ID
	}
	if f.Service.HTTPPort > 0 {
		cfg.HTTPPort = f.Service.HTTPPort
	}
	if f.Service.GRPCPort > 0 {
		cfg.GRPCPort = f.Service.GRPCPort
	}
	if f.Storage.Backend != "" {
		cfg.StorageBackend = f.Storage.Backend
	}
	if f.Storage.PostgresURL != "" {
		cfg.DatabaseURL = f.Storage.PostgresURL
	}
	if f.Storage.MaxConns > 0 {
		cfg.MaxDBConns = f.Storage.MaxConns
	}
	if f.Storage.MongoURL != "" {
		cfg.MongoURL = f.Storage.MongoURL
	}
	if f.Storage.MongoDatabase != "" {
		cfg.MongoDatabase = f.Storage.MongoDatabase
	}
	if f.Dependencies.RedisURL != "" {
		cfg.RedisURL = f.Dependencies.RedisURL
	}
	if len(f.Dependencies.KafkaBrokers) > 0 {
		cfg.KafkaBrokers = f.Dependencies.KafkaBrokers
	}
	if len(f.Dependencies.KafkaTopics) > 0 {
		cfg.KafkaTopics = f.Dependencies.KafkaTopics
	}
	if f.Auth.Issuer != "" {
		cfg.JWTIssuer = f.Auth.Issuer
	}
	if f.Auth.TokenTTL != "" {
		ttl, err := time.ParseDuration(f.Auth.TokenTTL)
		if err != nil {
			return fmt.Errorf("parse auth.token_ttl: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if f.Auth.BcryptCost > 0 {
		cfg.BcryptCost = f.Auth.BcryptCost
	}
	if len(f.CORS.AllowedOrigins) > 0 {
		cfg.CORSOrigins = f.CORS.AllowedOrigins
	}
	return nil
}

func (c Config) validate() error {
	if !slices.Contains([]string{BackendMemory, BackendPostgres, BackendMongo}, c.StorageBackend) {
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.StorageBackend == BackendPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("missing DB_URL for postgres backend")
	}
	if c.StorageBackend == BackendMongo && c.MongoURL == "" {
		return fmt.Errorf("missing MONGO_URL for mongo backend")
	}
	// Only the in-memory dev mode may run with a generated signing secret.
	if c.JWTSecret == "" && c.StorageBackend != BackendMemory {
		return fmt.Errorf("missing JWT_SECRET")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
