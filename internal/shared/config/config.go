package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded once at startup.
type Config struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Env             string   `envconfig:"ENV" default:"dev"`
	CORSAllowOrigin []string `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`

	ObjectStoreType string `envconfig:"OBJECT_STORE" default:"local"`
	LocalStoreDir   string `envconfig:"LOCAL_STORE_DIR" default:"./uploads"`
	AWSRegion       string `envconfig:"AWS_REGION"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3Prefix        string `envconfig:"S3_PREFIX"`
	SSEKMSKeyID     string `envconfig:"SSE_KMS_KEY_ID"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	LLMProvider string `envconfig:"LLM_PROVIDER" default:"openai"`
	LLMModel    string `envconfig:"LLM_MODEL" default:"gpt-4o-mini"`
	LLMAPIKey   string `envconfig:"OPENAI_API_KEY"`

	// Pipeline bounds. All overridable without code change.
	MaxUploadBytes     int64 `envconfig:"MAX_FILE_SIZE" default:"10485760"`
	MaxDocumentChars   int   `envconfig:"MAX_DOCUMENT_CHARS" default:"100000"`
	MaxDocsPerAnalysis int   `envconfig:"MAX_DOCS_PER_ANALYSIS" default:"20"`
	ExcerptChars       int   `envconfig:"SYNTHESIS_EXCERPT_CHARS" default:"2000"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env", "cmd/.env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Printf("config: %v", err)
	}

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.ObjectStoreType = normalizeStoreType(cfg.ObjectStoreType)

	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	return cfg
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
