package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// JWTConfig holds token signing settings. Access and refresh tokens are
// signed with separate secrets; lifetimes are day-count strings ("1d", "7d").
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExp     string
	RefreshExp    string
}

// UploadConfig holds the local staging policy for document uploads.
type UploadConfig struct {
	TempDir      string
	MaxSizeBytes int64
	AllowedMIMEs []string
}

// DriveConfig holds credentials and endpoints for the remote drive backend.
type DriveConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	TenantID     string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
	Drive    DriveConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_SECRET_KEY", ""),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET_KEY", ""),
			AccessExp:     getEnv("ACCESS_TOKEN_EXP", "1d"),
			RefreshExp:    getEnv("REFRESH_TOKEN_EXP", "7d"),
		},
		Upload: UploadConfig{
			TempDir:      getEnv("UPLOAD_TEMP_DIR", os.TempDir()),
			MaxSizeBytes: getEnvInt64("UPLOAD_MAX_SIZE_BYTES", 10*1024*1024),
			AllowedMIMEs: getEnvList("UPLOAD_ALLOWED_MIMES", []string{
				"application/pdf",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"image/jpeg",
				"image/jpg",
				"image/png",
			}),
		},
		Drive: DriveConfig{
			BaseURL:      getEnv("DRIVE_BASE_URL", "https://graph.microsoft.com/v1.0"),
			TokenURL:     getEnv("DRIVE_TOKEN_URL", ""),
			ClientID:     getEnv("DRIVE_CLIENT_ID", ""),
			ClientSecret: getEnv("DRIVE_CLIENT_SECRET", ""),
			TenantID:     getEnv("DRIVE_TENANT_ID", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
