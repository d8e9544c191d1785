package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects every environment-driven setting at process start.
// It is built once in main and passed down by injection; nothing reads
// the environment after Load returns.
type Config struct {
	AppEnv         string
	Port           string
	BaseURL        string
	AllowedOrigins string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost string
	RedisPort string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ConfirmTokenTTL time.Duration

	MailServer   string
	MailPort     string
	MailUsername string
	MailPassword string
	MailFrom     string
	MailFromName string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryFolder string

	GeminiAPIKey string

	SuperuserEmail    string
	SuperuserUsername string
	SuperuserPassword string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		BaseURL:        getEnv("APP_BASE_URL", "http://localhost:8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "smartblog"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		MailServer:   os.Getenv("MAIL_SERVER"),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),
		MailFrom:     os.Getenv("MAIL_FROM"),
		MailFromName: getEnv("MAIL_FROM_NAME", "Smart Blogging Platform"),

		MeiliSearchHost: getEnv("MEILISEARCH_HOST", "http://localhost:7700"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "smart-blogging-platform"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),

		SuperuserEmail:    os.Getenv("SUPERUSER_EMAIL"),
		SuperuserUsername: os.Getenv("SUPERUSER_USERNAME"),
		SuperuserPassword: os.Getenv("SUPERUSER_PASSWORD"),
	}

	cfg.AccessTokenTTL = minutesEnv("ACCESS_TOKEN_TTL_MINUTES", 15)
	cfg.RefreshTokenTTL = minutesEnv("REFRESH_TOKEN_TTL_MINUTES", 7*24*60)
	cfg.ConfirmTokenTTL = minutesEnv("CONFIRM_TOKEN_TTL_MINUTES", 7*24*60)

	return cfg, nil
}

// DatabaseDSN renders the postgres connection string for gorm.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

// RedisAddr renders the host:port pair for the redis client.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func minutesEnv(key string, fallback int) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return time.Duration(fallback) * time.Minute
}
