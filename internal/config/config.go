package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	LocalStoreDir   string

	// Generative capability (Gemini). No built-in fallback key: an empty
	// key degrades feedback to the rule-based strategy.
	GeminiAPIKey   string
	GeminiModel    string
	EmbeddingModel string

	// Secondary scorer may delegate to a generic generative HTTP endpoint.
	ScorerEndpointURL string
	ScorerAPIKey      string

	// Grammar service (LanguageTool-compatible).
	GrammarServerURL string
	GrammarLocale    string

	// OCR binaries for scanned PDFs; empty values disable OCR.
	PdftoppmPath  string
	TesseractPath string

	CapabilityTimeout time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),

		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "gemini-embedding-001"),

		ScorerEndpointURL: os.Getenv("SCORER_API_URL"),
		ScorerAPIKey:      os.Getenv("SCORER_API_KEY"),

		GrammarServerURL: getEnv("GRAMMAR_SERVER_URL", ""),
		GrammarLocale:    getEnv("GRAMMAR_LOCALE", "en-US"),

		PdftoppmPath:  getEnv("PDFTOPPM_PATH", "pdftoppm"),
		TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),

		CapabilityTimeout: getEnvSeconds("CAPABILITY_TIMEOUT_SECONDS", 20*time.Second),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      os.Getenv("UI_REDIRECT_URL"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
