package config

import (
	"os"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Paystack   PaystackConfig
	Cloudinary CloudinaryConfig
	Platform   PlatformConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AppBaseURL   string // public URL used for payment callback redirects
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type PaystackConfig struct {
	BaseURL   string
	SecretKey string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// PlatformConfig holds the seed values for the PlatformSetting singleton.
// Runtime values live in the database and are editable by admins.
type PlatformConfig struct {
	MinimumContributionNgn        int64
	PlatformFeeRateBps            int
	DefaultRepaymentDurationWeeks int
	DefaultRoiPercent             float64
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         env("PORT", "8080"),
			Env:          env("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			AppBaseURL:   env("APP_BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			DSN:             env("DATABASE_DSN", "chainmove:chainmove@tcp(localhost:3306)/chainmove?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  env("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: env("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "chainmove",
		},
		Paystack: PaystackConfig{
			BaseURL:   env("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			SecretKey: env("PAYSTACK_SECRET_KEY", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
		},
		Platform: PlatformConfig{
			MinimumContributionNgn:        5_000,
			PlatformFeeRateBps:            250,
			DefaultRepaymentDurationWeeks: 52,
			DefaultRoiPercent:             24,
		},
	}
}
