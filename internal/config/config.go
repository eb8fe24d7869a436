package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string
	Env        string
	LogLevel   string

	// StorageBackend selects the gateway implementation at startup:
	// "postgres" (default) or "memory".
	StorageBackend string

	HCaptchaSecret string

	RedisURL string

	S3AccountID       string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3PublicURL       string
}

// IsProduction controls cookie security attributes.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MediaConfigured reports whether the image upload service can be started.
func (c *Config) MediaConfigured() bool {
	return c.S3AccountID != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != "" &&
		c.S3BucketName != "" && c.S3PublicURL != ""
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading it, relying on environment variables")
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	backend := os.Getenv("STORAGE_BACKEND")
	if backend != BackendMemory {
		backend = BackendPostgres
	}

	sslMode := os.Getenv("DB_SSLMODE")
	if sslMode == "" {
		sslMode = "require"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  sslMode,

		ServerPort: serverPort,
		Env:        os.Getenv("ENV"),
		LogLevel:   logLevel,

		StorageBackend: backend,

		HCaptchaSecret: os.Getenv("HCAPTCHA_SECRET"),

		RedisURL: os.Getenv("REDIS_URL"),

		S3AccountID:       os.Getenv("S3_ACCOUNT_ID"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3BucketName:      os.Getenv("S3_BUCKET_NAME"),
		S3PublicURL:       os.Getenv("S3_PUBLIC_URL"),
	}, nil
}
