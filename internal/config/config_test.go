package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/bloodbank_test")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	defer func() {
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("MONGODB_URI")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Redis.Host != "localhost" || cfg.Redis.Port == "" {
		t.Fatalf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.MongoDB.URI == "" || cfg.MongoDB.Database == "" {
		t.Fatalf("unexpected mongo config: %+v", cfg.MongoDB)
	}
	if cfg.JWT.Secret == "" || cfg.JWT.AccessTokenTTL <= 0 {
		t.Fatalf("unexpected jwt config: %+v", cfg.JWT)
	}
	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}
