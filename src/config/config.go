package config

import (
	"os"
	"strconv"
	"time"
)

// Config アプリケーション設定
type Config struct {
	Server    ServerConfig
	CatalogDB DatabaseConfig
	StoreDB   DatabaseConfig
	Auth      AuthConfig
	Admin     AdminConfig
	Site      SiteConfig
	Log       LogConfig
	S3        S3Config
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port string
}

// DatabaseConfig データベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret    string
	JWTExpiresIn time.Duration
	MagicLinkTTL time.Duration
}

// AdminConfig 管理者ログイン設定
type AdminConfig struct {
	Email        string
	PasswordHash string // bcryptハッシュ
}

// SiteConfig サイト設定
type SiteConfig struct {
	BaseURL string
}

// LogConfig ログ設定
type LogConfig struct {
	Level          string
	Directory      string
	UploadEnabled  bool
	UploadMaxAge   time.Duration
	UploadInterval time.Duration
}

// S3Config S3設定
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// LoadConfig 環境変数から設定を読み込み
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		CatalogDB: DatabaseConfig{
			Host:     getEnv("CATALOG_DB_HOST", "localhost"),
			Port:     getIntEnv("CATALOG_DB_PORT", 5432),
			User:     getEnv("CATALOG_DB_USER", "postgres"),
			Password: getEnv("CATALOG_DB_PASSWORD", ""),
			DBName:   getEnv("CATALOG_DB_NAME", "ichidan_catalog"),
			SSLMode:  getEnv("CATALOG_DB_SSLMODE", "disable"),
		},
		StoreDB: DatabaseConfig{
			Host:     getEnv("STORE_DB_HOST", "localhost"),
			Port:     getIntEnv("STORE_DB_PORT", 5432),
			User:     getEnv("STORE_DB_USER", "postgres"),
			Password: getEnv("STORE_DB_PASSWORD", ""),
			DBName:   getEnv("STORE_DB_NAME", "ichidan_stores"),
			SSLMode:  getEnv("STORE_DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
			JWTExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour),
			MagicLinkTTL: getDurationEnv("MAGIC_LINK_TTL", 15*time.Minute),
		},
		Admin: AdminConfig{
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Site: SiteConfig{
			BaseURL: getEnv("SITE_BASE_URL", "http://localhost:3000"),
		},
		Log: LogConfig{
			Level:          getEnv("LOG_LEVEL", "info"),
			Directory:      getEnv("LOG_DIRECTORY", "logs"),
			UploadEnabled:  getBoolEnv("LOG_UPLOAD_ENABLED", false),
			UploadMaxAge:   getDurationEnv("LOG_UPLOAD_MAX_AGE", 24*time.Hour),
			UploadInterval: getDurationEnv("LOG_UPLOAD_INTERVAL", 1*time.Hour),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"), // MinIO用のデフォルト
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "ichidan-dokusho-logs"),
			UseSSL:          getBoolEnv("S3_USE_SSL", false),
		},
	}
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv 環境変数をintで取得
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getBoolEnv 環境変数をboolで取得
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv 環境変数をtime.Durationで取得
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
