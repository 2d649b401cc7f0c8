package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	DB         DBConfig
	S3         S3Config
	Log        LogConfig
	OCR        OCRConfig
	Structurer StructurerConfig
	Pipeline   PipelineConfig
	CORS       CORSConfig
	Email      EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds text recognition provider settings.
type OCRConfig struct {
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// StructurerConfig holds LLM invoice structuring provider settings.
type StructurerConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// PipelineConfig holds extraction pipeline behavior settings.
type PipelineConfig struct {
	DirectMultimodal    bool    `mapstructure:"direct_multimodal"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds review notification delivery settings.
type EmailConfig struct {
	Provider     string `mapstructure:"provider"`
	Region       string `mapstructure:"region"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	ReviewerAddr string `mapstructure:"reviewer_addr"`
}

// Load reads configuration from environment variables with the SARALGST_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SARALGST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "saralgst")
	v.SetDefault("db.password", "saralgst_secret")
	v.SetDefault("db.name", "saralgst_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "saralgst-invoices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.timeout_secs", 30)

	// Structurer defaults
	v.SetDefault("structurer.api_key", "")
	v.SetDefault("structurer.default_model", "gemini-2.0-flash")
	v.SetDefault("structurer.timeout_secs", 30)

	// Pipeline defaults
	v.SetDefault("pipeline.direct_multimodal", true)
	v.SetDefault("pipeline.confidence_threshold", 0.5)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@saralgst.com")
	v.SetDefault("email.from_name", "SaralGST")
	v.SetDefault("email.reviewer_addr", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "SARALGST_SERVER_PORT",
		"server.read_timeout":           "SARALGST_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "SARALGST_SERVER_WRITE_TIMEOUT",
		"server.environment":            "SARALGST_SERVER_ENVIRONMENT",
		"db.host":                       "SARALGST_DB_HOST",
		"db.port":                       "SARALGST_DB_PORT",
		"db.user":                       "SARALGST_DB_USER",
		"db.password":                   "SARALGST_DB_PASSWORD",
		"db.name":                       "SARALGST_DB_NAME",
		"db.sslmode":                    "SARALGST_DB_SSLMODE",
		"db.max_open":                   "SARALGST_DB_MAX_OPEN",
		"db.max_idle":                   "SARALGST_DB_MAX_IDLE",
		"s3.region":                     "SARALGST_S3_REGION",
		"s3.bucket":                     "SARALGST_S3_BUCKET",
		"s3.endpoint":                   "SARALGST_S3_ENDPOINT",
		"s3.access_key":                 "SARALGST_S3_ACCESS_KEY",
		"s3.secret_key":                 "SARALGST_S3_SECRET_KEY",
		"s3.presign_expiry":             "SARALGST_S3_PRESIGN_EXPIRY",
		"log.level":                     "SARALGST_LOG_LEVEL",
		"log.format":                    "SARALGST_LOG_FORMAT",
		"ocr.api_key":                   "SARALGST_OCR_API_KEY",
		"ocr.timeout_secs":              "SARALGST_OCR_TIMEOUT_SECS",
		"structurer.api_key":            "SARALGST_STRUCTURER_API_KEY",
		"structurer.default_model":      "SARALGST_STRUCTURER_DEFAULT_MODEL",
		"structurer.timeout_secs":       "SARALGST_STRUCTURER_TIMEOUT_SECS",
		"pipeline.direct_multimodal":    "SARALGST_PIPELINE_DIRECT_MULTIMODAL",
		"pipeline.confidence_threshold": "SARALGST_PIPELINE_CONFIDENCE_THRESHOLD",
		"cors.allowed_origins":          "SARALGST_CORS_ALLOWED_ORIGINS",
		"email.provider":                "SARALGST_EMAIL_PROVIDER",
		"email.region":                  "SARALGST_EMAIL_REGION",
		"email.from_address":            "SARALGST_EMAIL_FROM_ADDRESS",
		"email.from_name":               "SARALGST_EMAIL_FROM_NAME",
		"email.reviewer_addr":           "SARALGST_EMAIL_REVIEWER_ADDR",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SARALGST_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SARALGST_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		APIKey:      v.GetString("ocr.api_key"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}
	cfg.Structurer = StructurerConfig{
		APIKey:       v.GetString("structurer.api_key"),
		DefaultModel: v.GetString("structurer.default_model"),
		TimeoutSecs:  v.GetInt("structurer.timeout_secs"),
	}
	cfg.Pipeline = PipelineConfig{
		DirectMultimodal:    v.GetBool("pipeline.direct_multimodal"),
		ConfidenceThreshold: v.GetFloat64("pipeline.confidence_threshold"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:     v.GetString("email.provider"),
		Region:       v.GetString("email.region"),
		FromAddress:  v.GetString("email.from_address"),
		FromName:     v.GetString("email.from_name"),
		ReviewerAddr: v.GetString("email.reviewer_addr"),
	}

	return cfg, nil
}
