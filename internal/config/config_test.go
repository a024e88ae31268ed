package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_NAME", "PORT", "JWT_ACCESS_EXPIRY", "ROLE_CACHE_TTL", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
	if cfg.DBName != "veinsight" {
		t.Errorf("DBName = %q", cfg.DBName)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.JWTAccessExpiry != 15*time.Minute {
		t.Errorf("JWTAccessExpiry = %v", cfg.JWTAccessExpiry)
	}
	if cfg.RoleCacheTTL != 10*time.Minute {
		t.Errorf("RoleCacheTTL = %v", cfg.RoleCacheTTL)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should default empty, got %q", cfg.RedisAddr)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("ROLE_CACHE_TTL", "1h")

	cfg := Load()
	if cfg.DBHost != "db.internal" {
		t.Errorf("DBHost = %q", cfg.DBHost)
	}
	if cfg.JWTAccessExpiry != 30*time.Minute {
		t.Errorf("JWTAccessExpiry = %v", cfg.JWTAccessExpiry)
	}
	if cfg.RoleCacheTTL != time.Hour {
		t.Errorf("RoleCacheTTL = %v", cfg.RoleCacheTTL)
	}
}

func TestParseDurationFallback(t *testing.T) {
	if got := parseDuration("bogus", time.Minute); got != time.Minute {
		t.Errorf("parseDuration fallback = %v", got)
	}
	if got := parseDuration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("parseDuration = %v", got)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "h", DBPort: "5432", DBUser: "u",
		DBPassword: "p", DBName: "d", DBSSLMode: "disable",
	}
	dsn := cfg.DSN()
	for _, part := range []string{"host=h", "user=u", "dbname=d", "sslmode=disable"} {
		if !strings.Contains(dsn, part) {
			t.Errorf("DSN missing %q: %s", part, dsn)
		}
	}
}
