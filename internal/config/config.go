package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Extractor ExtractorConfig
	Fonts     FontConfig
	Session   SessionConfig
	Limits    LimitsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig holds object storage settings for generated artifacts.
// When Bucket is empty, storing filled documents is disabled and downloads
// are streamed directly.
type StorageConfig struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether artifact storage is configured.
func (s *StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// ExtractorProviderConfig holds settings for a single extraction provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds AI extraction settings with provider fallback.
type ExtractorConfig struct {
	Primary   ExtractorProviderConfig `mapstructure:"primary"`
	Secondary ExtractorProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not set.
func (e *ExtractorConfig) SecondaryConfig() *ExtractorProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// FontConfig holds filesystem paths to the Arabic-capable font files used by
// the PDF report renderer. Both weights are required at render time.
type FontConfig struct {
	RegularPath string `mapstructure:"regular_path"`
	BoldPath    string `mapstructure:"bold_path"`
}

// SessionConfig holds session token settings.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
	Issuer string        `mapstructure:"issuer"`
}

// LimitsConfig holds request size limits.
type LimitsConfig struct {
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

// Load reads configuration from environment variables with the QALIB_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QALIB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Storage defaults (disabled unless a bucket is configured)
	v.SetDefault("storage.region", "me-south-1")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// Extractor defaults
	v.SetDefault("extractor.primary.provider", "claude")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "")
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.timeout_secs", 120)

	// Font defaults (Amiri ships with the deployment image)
	v.SetDefault("fonts.regular_path", "assets/fonts/Amiri-Regular.ttf")
	v.SetDefault("fonts.bold_path", "assets/fonts/Amiri-Bold.ttf")

	// Session defaults
	v.SetDefault("session.secret", "change-me-in-production")
	v.SetDefault("session.ttl", "4h")
	v.SetDefault("session.issuer", "qalib")

	// Limits defaults
	v.SetDefault("limits.max_upload_mb", 25)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "QALIB_SERVER_PORT",
		"server.read_timeout":               "QALIB_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "QALIB_SERVER_WRITE_TIMEOUT",
		"server.environment":                "QALIB_SERVER_ENVIRONMENT",
		"log.level":                         "QALIB_LOG_LEVEL",
		"log.format":                        "QALIB_LOG_FORMAT",
		"cors.allowed_origins":              "QALIB_CORS_ALLOWED_ORIGINS",
		"storage.region":                    "QALIB_STORAGE_REGION",
		"storage.bucket":                    "QALIB_STORAGE_BUCKET",
		"storage.endpoint":                  "QALIB_STORAGE_ENDPOINT",
		"storage.access_key":                "QALIB_STORAGE_ACCESS_KEY",
		"storage.secret_key":                "QALIB_STORAGE_SECRET_KEY",
		"storage.presign_expiry":            "QALIB_STORAGE_PRESIGN_EXPIRY",
		"extractor.primary.provider":        "QALIB_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "QALIB_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "QALIB_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.timeout_secs":    "QALIB_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "QALIB_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "QALIB_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "QALIB_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.timeout_secs":  "QALIB_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"fonts.regular_path":                "QALIB_FONTS_REGULAR_PATH",
		"fonts.bold_path":                   "QALIB_FONTS_BOLD_PATH",
		"session.secret":                    "QALIB_SESSION_SECRET",
		"session.ttl":                       "QALIB_SESSION_TTL",
		"session.issuer":                    "QALIB_SESSION_ISSUER",
		"limits.max_upload_mb":              "QALIB_LIMITS_MAX_UPLOAD_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QALIB_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QALIB_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Storage = StorageConfig{
		Region:        v.GetString("storage.region"),
		Bucket:        v.GetString("storage.bucket"),
		Endpoint:      v.GetString("storage.endpoint"),
		AccessKey:     v.GetString("storage.access_key"),
		SecretKey:     v.GetString("storage.secret_key"),
		PresignExpiry: v.GetInt64("storage.presign_expiry"),
	}

	cfg.Extractor = ExtractorConfig{
		Primary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.primary.provider"),
			APIKey:       v.GetString("extractor.primary.api_key"),
			DefaultModel: v.GetString("extractor.primary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.secondary.provider"),
			APIKey:       v.GetString("extractor.secondary.api_key"),
			DefaultModel: v.GetString("extractor.secondary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.secondary.timeout_secs"),
		},
	}

	cfg.Fonts = FontConfig{
		RegularPath: v.GetString("fonts.regular_path"),
		BoldPath:    v.GetString("fonts.bold_path"),
	}

	cfg.Session = SessionConfig{
		Secret: v.GetString("session.secret"),
		TTL:    v.GetDuration("session.ttl"),
		Issuer: v.GetString("session.issuer"),
	}

	cfg.Limits = LimitsConfig{
		MaxUploadMB: v.GetInt64("limits.max_upload_mb"),
	}

	return cfg, nil
}
