package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL connection settings for the user store.
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

// MinIOConfig holds object storage settings for the video bucket.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AMQPConfig holds message broker settings for the conversion work queue.
type AMQPConfig struct {
	URL   string
	Queue string
}

// AuthConfig holds token signing settings and, for the gateway, the address
// of the auth service that login/validate calls are delegated to.
type AuthConfig struct {
	JWTSecret      string
	TokenTTLHours  int
	ServiceAddress string
}

// AppConfig is the centralized configuration struct for both binaries.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port               string
	GatewayPort        string
	UpstreamTimeoutSec int
	StorageTimeoutSec  int
	PublishTimeoutSec  int
	Database           DatabaseConfig
	MinIO              MinIOConfig
	AMQP               AMQPConfig
	Auth               AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:               getEnv("AUTH_PORT", "5000"),
		GatewayPort:        getEnv("GATEWAY_PORT", "8080"),
		UpstreamTimeoutSec: getEnvInt("UPSTREAM_TIMEOUT_SEC", 10),
		StorageTimeoutSec:  getEnvInt("STORAGE_TIMEOUT_SEC", 60),
		PublishTimeoutSec:  getEnvInt("PUBLISH_TIMEOUT_SEC", 10),
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
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "videos"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		AMQP: AMQPConfig{
			URL:   getEnv("AMQP_URL", ""),
			Queue: getEnv("AMQP_QUEUE", "video"),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", ""),
			TokenTTLHours:  getEnvInt("TOKEN_TTL_HOURS", 24),
			ServiceAddress: getEnv("AUTH_SVC_ADDRESS", ""),
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
