package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv              string
	Port                string
	PDFServicePort      string
	PDFServiceURL       string
	DatabaseURL         string
	EnableDB            bool
	CORSAllowOrigins    []string
	ChatReplyDelay      time.Duration
	ChatEmergencyTriage bool
	ChatSymptomScope    string
	ChatSessionTTL      time.Duration
	MaxUploadBytes      int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "production"),
		Port:                getEnv("PORT", "8080"),
		PDFServicePort:      getEnv("PDF_SERVICE_PORT", "5000"),
		PDFServiceURL:       strings.TrimSpace(os.Getenv("PDF_SERVICE_URL")),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		EnableDB:            getEnvBool("ENABLE_DB", false),
		CORSAllowOrigins:    getEnvCSV("CORS_ALLOW_ORIGINS", []string{"*"}),
		ChatReplyDelay:      time.Duration(getEnvInt("CHAT_REPLY_DELAY_MS", 1500)) * time.Millisecond,
		ChatEmergencyTriage: getEnvBool("CHAT_EMERGENCY_TRIAGE", false),
		ChatSymptomScope:    strings.ToLower(getEnv("CHAT_SYMPTOM_SCOPE", "tracked")),
		ChatSessionTTL:      time.Duration(getEnvInt("CHAT_SESSION_TTL_MINUTES", 60)) * time.Minute,
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.EnableDB && strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required when ENABLE_DB=true")
	}
	if c.ChatSymptomScope != "tracked" && c.ChatSymptomScope != "all" {
		return fmt.Errorf("CHAT_SYMPTOM_SCOPE must be tracked or all, got %q", c.ChatSymptomScope)
	}
	if c.ChatReplyDelay < 0 {
		return errors.New("CHAT_REPLY_DELAY_MS must not be negative")
	}
	if c.ChatSessionTTL < 0 {
		return errors.New("CHAT_SESSION_TTL_MINUTES must not be negative")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvCSV(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}

	result := []string{}
	for _, item := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
