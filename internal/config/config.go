package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	JWTSecret string
	Port      string
	Env       string

	FrontendURL string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadDir    string
	MaxFileSize  int64 // registration documents and images
	MaxVideoSize int64

	RateLimitWindow time.Duration
	RateLimitMax    int

	LogLevel string
}

func NewConfigFromEnv() (*Config, error) {
	maxFileSize, _ := strconv.ParseInt(getenv("MAX_FILE_SIZE", "10485760"), 10, 64)
	maxVideoSize, _ := strconv.ParseInt(getenv("MAX_VIDEO_SIZE", "104857600"), 10, 64)
	rateWindow, _ := strconv.Atoi(getenv("RATE_LIMIT_WINDOW", "60"))
	rateMax, _ := strconv.Atoi(getenv("RATE_LIMIT_MAX", "100"))

	cfg := &Config{
		DBHost:    getenv("DB_HOST", "localhost"),
		DBPort:    getenv("DB_PORT", "5432"),
		DBUser:    getenv("DB_USER", "postgres"),
		DBPass:    getenv("DB_PASSWORD", "postgres"),
		DBName:    getenv("DB_NAME", "zenithdb"),
		DBSSLMode: getenv("DB_SSLMODE", "disable"),

		JWTSecret: getenv("JWT_SECRET", ""),
		Port:      getenv("PORT", "5000"),
		Env:       getenv("ENV", "development"),

		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		CloudinaryCloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getenv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getenv("CLOUDINARY_API_SECRET", ""),

		UploadDir:    getenv("UPLOAD_DIR", "./uploads"),
		MaxFileSize:  maxFileSize,
		MaxVideoSize: maxVideoSize,

		RateLimitWindow: time.Duration(rateWindow) * time.Second,
		RateLimitMax:    rateMax,

		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
