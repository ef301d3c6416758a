package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_BASE_URL", "")
	t.Setenv("LLM_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard origin, got %v", cfg.CORSAllowOrigin)
	}
	if cfg.GeminiModel != defaultGeminiModel {
		t.Fatalf("expected model %s, got %s", defaultGeminiModel, cfg.GeminiModel)
	}
	if cfg.LLMTimeout != defaultLLMTimeout {
		t.Fatalf("expected timeout %s, got %s", defaultLLMTimeout, cfg.LLMTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("GEMINI_BASE_URL", "http://localhost:9999/")
	t.Setenv("LLM_TIMEOUT_SECONDS", "15")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
	if cfg.GeminiBaseURL != "http://localhost:9999" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.GeminiBaseURL)
	}
	if cfg.LLMTimeout != 15*time.Second {
		t.Fatalf("expected 15s timeout, got %s", cfg.LLMTimeout)
	}
}

func TestValidateRequiresSecrets(t *testing.T) {
	err := Config{Env: "dev"}.Validate()
	if err == nil {
		t.Fatalf("expected error for missing secrets")
	}
	if !strings.Contains(err.Error(), "GOOGLE_API_KEY") || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected both secrets named, got %v", err)
	}

	if err := (Config{Env: "dev", GeminiAPIKey: "k", JWTSecret: "s"}).Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateProductionRequiresDatabase(t *testing.T) {
	err := Config{Env: "production", GeminiAPIKey: "k", JWTSecret: "s"}.Validate()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}
