package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/lifestory-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr         string        `env:"SERVER_ADDR,notEmpty"`
	RequestTimeout     time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"3m"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	LLMConnectorCfg  LLMConnectorConfig  `envPrefix:"LLM_"`
	ASRConnectorCfg  ASRConnectorConfig  `envPrefix:"ASR_"`
	MailConnectorCfg MailConnectorConfig `envPrefix:"MAIL_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`
	SessionCfg    SessionConfig    `envPrefix:"SESSION_"`
	StorybookCfg  StorybookConfig  `envPrefix:"STORYBOOK_"`
	RateLimitCfg  RateLimitConfig  `envPrefix:"RATE_LIMIT_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// LLMConnectorConfig configures the chat completion client.
// The SDK owns its own transport, so only the timeout is taken from here.
type LLMConnectorConfig struct {
	APIKey         string        `env:"API_KEY"`
	BaseURL        string        `env:"BASE_URL"`
	Model          string        `env:"MODEL" envDefault:"gpt-4o"`
	RequestTimeout time.Duration `env:"TIMEOUT" envDefault:"90s"`
}

type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT" envDefault:"/audio/transcriptions"`
	Model              string               `env:"MODEL" envDefault:"whisper-1"`
	Language           string               `env:"LANGUAGE" envDefault:"en"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type MailConnectorConfig struct {
	HTTPClientConfig
	SendEndpoint string               `env:"SEND_ENDPOINT" envDefault:"/v3/smtp/email"`
	SenderName   string               `env:"SENDER_NAME" envDefault:"Life Story"`
	SenderEmail  string               `env:"SENDER_EMAIL" envDefault:"noreply@lifestory.app"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"30s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// FileUploadConfig holds upload limits
type FileUploadConfig struct {
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB
}

type SessionConfig struct {
	TTL           time.Duration `env:"TTL" envDefault:"720h"`
	InvitationTTL time.Duration `env:"INVITATION_TTL" envDefault:"720h"`
}

type StorybookConfig struct {
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	ShareBaseURL string        `env:"SHARE_BASE_URL" envDefault:"https://lifestory.app/s"`
	SiteURL      string        `env:"SITE_URL" envDefault:"https://lifestory.app"`
	FontPath     string        `env:"FONT_PATH"`

	// Metered unioffice key, required before DOCX export works outside of mocks
	DocxLicenseKey string `env:"DOCX_LICENSE_KEY"`
}

type RateLimitConfig struct {
	GenerationInterval time.Duration `env:"GENERATION_INTERVAL" envDefault:"10s"`
	GenerationBurst    int           `env:"GENERATION_BURST" envDefault:"3"`
	InviteInterval     time.Duration `env:"INVITE_INTERVAL" envDefault:"10m"`
	InviteBurst        int           `env:"INVITE_BURST" envDefault:"3"`
	IdleExpiry         time.Duration `env:"IDLE_EXPIRY" envDefault:"1h"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Missing env files are fine when variables are set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the configuration from the process environment
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Database
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Text generation
	if !cfg.EnableMocks && cfg.LLMConnectorCfg.APIKey == "" {
		errors = append(errors, "LLM_API_KEY is required unless ENABLE_MOCKS is set")
	}

	// Server
	if cfg.RequestTimeout < 10*time.Second {
		errors = append(errors, fmt.Sprintf("SERVER_REQUEST_TIMEOUT must be at least 10s, got %s", cfg.RequestTimeout))
	}

	// Sessions
	if cfg.SessionCfg.TTL < time.Hour {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be at least 1h, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.InvitationTTL < time.Hour {
		errors = append(errors, fmt.Sprintf("SESSION_INVITATION_TTL must be at least 1h, got %s", cfg.SessionCfg.InvitationTTL))
	}

	// Rate limits
	if cfg.RateLimitCfg.GenerationBurst < 1 || cfg.RateLimitCfg.GenerationBurst > 20 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_GENERATION_BURST must be between 1 and 20, got %d", cfg.RateLimitCfg.GenerationBurst))
	}

	if cfg.RateLimitCfg.InviteBurst < 1 || cfg.RateLimitCfg.InviteBurst > 20 {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_INVITE_BURST must be between 1 and 20, got %d", cfg.RateLimitCfg.InviteBurst))
	}

	if cfg.RateLimitCfg.GenerationInterval <= 0 || cfg.RateLimitCfg.InviteInterval <= 0 {
		errors = append(errors, "RATE_LIMIT intervals must be positive")
	}

	if cfg.FileUploadCfg.MaxAudioFileSize <= 0 || cfg.FileUploadCfg.MaxAudioFileSize > cfg.FileUploadCfg.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("FILE_UPLOAD_MAX_AUDIO_FILE_SIZE must be between 1 and FILE_UPLOAD_MAX_UPLOAD_SIZE(%d), got %d",
			cfg.FileUploadCfg.MaxUploadSize, cfg.FileUploadCfg.MaxAudioFileSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
