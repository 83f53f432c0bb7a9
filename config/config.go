package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the server needs, loaded from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Media    MediaConfig
	SMTP     SMTPConfig
	Logger   LoggerConfig
	PageSize int
}

type ServerConfig struct {
	Port int
	// Domain is the public frontend origin used when building activation
	// and password-reset links embedded in emails.
	Domain string
}

type DatabaseConfig struct {
	// URL takes precedence over the individual fields when set.
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

type AuthConfig struct {
	JWTSecret      string
	AccessTTL      time.Duration
	RefreshTTL     time.Duration
	ActivationTTL  time.Duration
	ResetTTL       time.Duration
	GoogleClientID string
}

type MediaConfig struct {
	// Root is the directory uploaded files are written to.
	Root string
	// URL is the public prefix the root is served under, e.g. "/media".
	URL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", 8080)
	v.SetDefault("DOMAIN", "localhost:5173")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "shopora")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("REFRESH_TOKEN_TTL", "168h")
	v.SetDefault("ACTIVATION_TOKEN_TTL", "72h")
	v.SetDefault("RESET_TOKEN_TTL", "24h")
	v.SetDefault("MEDIA_ROOT", "media")
	v.SetDefault("MEDIA_URL", "/media")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PAGE_SIZE", 12)

	cfg := &Config{
		Server: ServerConfig{
			Port:   v.GetInt("PORT"),
			Domain: v.GetString("DOMAIN"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Auth: AuthConfig{
			JWTSecret:      v.GetString("JWT_SECRET"),
			AccessTTL:      v.GetDuration("ACCESS_TOKEN_TTL"),
			RefreshTTL:     v.GetDuration("REFRESH_TOKEN_TTL"),
			ActivationTTL:  v.GetDuration("ACTIVATION_TOKEN_TTL"),
			ResetTTL:       v.GetDuration("RESET_TOKEN_TTL"),
			GoogleClientID: v.GetString("GOOGLE_CLIENT_ID"),
		},
		Media: MediaConfig{
			Root: v.GetString("MEDIA_ROOT"),
			URL:  v.GetString("MEDIA_URL"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		PageSize: v.GetInt("PAGE_SIZE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot safely run with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("invalid page size: %d", c.PageSize)
	}
	return nil
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}
