package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8000 {
		t.Errorf("Expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Company.Name != "SPM ENGINEERING" {
		t.Errorf("Expected default company name, got %q", cfg.Company.Name)
	}
	if cfg.Company.StateCode != "33" {
		t.Errorf("Expected state code 33, got %q", cfg.Company.StateCode)
	}
	if cfg.Features.RequireAuth {
		t.Error("Expected RequireAuth to default to false")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("AUTH_TOKEN_TTL", "90m")
	t.Setenv("AUTH_RATE_LIMIT_WINDOW", "30")
	t.Setenv("REQUIRE_AUTH", "true")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/billing")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Server.Port)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Auth.TokenTTL != 90*time.Minute {
		t.Errorf("Expected 90m TTL, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.RateLimitWindow != 30*time.Second {
		t.Errorf("Expected 30s window, got %s", cfg.Auth.RateLimitWindow)
	}
	if !cfg.Features.RequireAuth {
		t.Error("Expected RequireAuth true")
	}
	if cfg.Database.ConnectionString() != "postgres://u:p@db/billing" {
		t.Errorf("Expected DATABASE_URL to win, got %q", cfg.Database.ConnectionString())
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=n sslmode=disable"
	if got := d.ConnectionString(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
