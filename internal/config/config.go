package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	URL                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// MediaConfig selects the media host backend and the folder thumbnails live under.
type MediaConfig struct {
	Backend         string
	ThumbnailFolder string
	Cloudinary      CloudinaryConfig
	MinIO           MinIOConfig
}

// CloudinaryConfig holds Cloudinary credentials. URL takes precedence over the split fields.
type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// RateLimitConfig controls the request limiters in front of mutating endpoints.
type RateLimitConfig struct {
	Enabled  bool
	RedisURL string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	LogLevel  string
	Location  string
	Database  DatabaseConfig
	Media     MediaConfig
	RateLimit RateLimitConfig
}

const (
	MediaBackendCloudinary = "cloudinary"
	MediaBackendMinIO      = "minio"
)

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Location: getEnv("TZ_LOCATION", "UTC"),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Media: MediaConfig{
			Backend:         getEnv("MEDIA_BACKEND", MediaBackendCloudinary),
			ThumbnailFolder: getEnv("THUMBNAIL_FOLDER", "project-thumbnails"),
			Cloudinary: CloudinaryConfig{
				URL:       getEnv("CLOUDINARY_URL", ""),
				CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
				APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
				APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			},
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
				PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
			RedisURL: getEnv("REDIS_URL", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
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
