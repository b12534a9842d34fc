package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != BackendMemory {
		t.Fatalf("expected memory backend, got %q", cfg.StorageBackend)
	}
	if cfg.TokenTTL != 30*24*time.Hour {
		t.Fatalf("unexpected token ttl %s", cfg.TokenTTL)
	}
	if cfg.HTTPPort != 8080 || cfg.GRPCPort != 9090 {
		t.Fatalf("unexpected ports %d/%d", cfg.HTTPPort, cfg.GRPCPort)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
service:
  http_port: 8181
storage:
  backend: postgres
  postgres_url: postgres://file/sigpac
dependencies:
  kafka_brokers: [kafka-1:9092]
  kafka_topics:
    parcel.created: sigpac.parcels
auth:
  token_ttl: 48h
cors:
  allowed_origins: [https://app.example.com]
`)
	t.Setenv("DB_URL", "postgres://env/sigpac")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != 8181 {
		t.Fatalf("file value lost: http port %d", cfg.HTTPPort)
	}
	if cfg.DatabaseURL != "postgres://env/sigpac" {
		t.Fatalf("env must override file, got %q", cfg.DatabaseURL)
	}
	if cfg.TokenTTL != 48*time.Hour {
		t.Fatalf("unexpected token ttl %s", cfg.TokenTTL)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaTopics["parcel.created"] != "sigpac.parcels" {
		t.Fatalf("unexpected kafka settings %v %v", cfg.KafkaBrokers, cfg.KafkaTopics)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "unknown backend", env: map[string]string{"STORAGE_BACKEND": "sqlite"}, want: "unknown STORAGE_BACKEND"},
		{name: "postgres without url", env: map[string]string{"STORAGE_BACKEND": "postgres", "JWT_SECRET": strings.Repeat("s", 32)}, want: "DB_URL"},
		{name: "mongo without url", env: map[string]string{"STORAGE_BACKEND": "mongo", "JWT_SECRET": strings.Repeat("s", 32)}, want: "MONGO_URL"},
		{name: "secret required outside memory", env: map[string]string{"STORAGE_BACKEND": "mongo", "MONGO_URL": "mongodb://localhost"}, want: "JWT_SECRET"},
		{name: "bad ttl", env: map[string]string{"TOKEN_TTL": "-1h"}, want: "TOKEN_TTL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "auth:\n  token_ttl: soon\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error for bad duration")
	}
}
