package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("CAPABILITY_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.GrammarLocale != "en-US" {
		t.Fatalf("GrammarLocale = %q", cfg.GrammarLocale)
	}
	if cfg.CapabilityTimeout != 20*time.Second {
		t.Fatalf("CapabilityTimeout = %v", cfg.CapabilityTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("CAPABILITY_TIMEOUT_SECONDS", "5")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("Env = %q", cfg.Env)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("CORSAllowOrigin = %v", cfg.CORSAllowOrigin)
	}
	if cfg.CapabilityTimeout != 5*time.Second {
		t.Fatalf("CapabilityTimeout = %v", cfg.CapabilityTimeout)
	}
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("CAPABILITY_TIMEOUT_SECONDS", "not-a-number")
	cfg := Load()
	if cfg.CapabilityTimeout != 20*time.Second {
		t.Fatalf("CapabilityTimeout = %v", cfg.CapabilityTimeout)
	}
}
