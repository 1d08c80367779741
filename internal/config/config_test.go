package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("ENABLE_DB", "true")
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestLoadUsesDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "PDF_SERVICE_PORT", "CHAT_REPLY_DELAY_MS", "CHAT_SYMPTOM_SCOPE", "CORS_ALLOW_ORIGINS", "MAX_UPLOAD_BYTES", "CHAT_SESSION_TTL_MINUTES"} {
		t.Setenv(key, "")
	}
	t.Setenv("ENABLE_DB", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.PDFServicePort != "5000" {
		t.Fatalf("expected default pdf service port 5000, got %s", cfg.PDFServicePort)
	}
	if cfg.ChatReplyDelay != 1500*time.Millisecond {
		t.Fatalf("expected 1500ms reply delay, got %s", cfg.ChatReplyDelay)
	}
	if cfg.ChatSymptomScope != "tracked" {
		t.Fatalf("expected tracked symptom scope, got %s", cfg.ChatSymptomScope)
	}
	if len(cfg.CORSAllowOrigins) != 1 || cfg.CORSAllowOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS origin, got %v", cfg.CORSAllowOrigins)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("expected 10MiB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.ChatSessionTTL != time.Hour {
		t.Fatalf("expected 1h session ttl, got %s", cfg.ChatSessionTTL)
	}
}

func TestLoadRejectsNegativeSessionTTL(t *testing.T) {
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("CHAT_SESSION_TTL_MINUTES", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative session ttl")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("CHAT_REPLY_DELAY_MS", "0")
	t.Setenv("CHAT_EMERGENCY_TRIAGE", "true")
	t.Setenv("CHAT_SYMPTOM_SCOPE", "ALL")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173, ,http://localhost:3000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ChatReplyDelay != 0 || !cfg.ChatEmergencyTriage || cfg.ChatSymptomScope != "all" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORSAllowOrigins)
	}
}

func TestLoadRejectsUnknownSymptomScope(t *testing.T) {
	t.Setenv("ENABLE_DB", "false")
	t.Setenv("CHAT_SYMPTOM_SCOPE", "everything")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown symptom scope")
	}
}
