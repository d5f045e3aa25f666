package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Groq inference API. The key is injected from the environment only;
	// a missing key routes every generation request to the local fallback.
	GroqAPIKey  string
	GroqBaseURL string

	// Generation task config (models, sampling, prompt templates).
	GenerationConfigFile string

	// Auth
	ValidatorType     string // "jwk" or "firebase"
	FirebaseProjectID string
	FirebaseCredJSON  string
	JWTJWKSURL        string

	// Database
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxIdleTime int // in minutes
	DBConnMaxLifetime int // in minutes

	// Request tracking worker pool
	TrackingWorkerPoolSize int
	TrackingBufferSize     int
	TrackingTimeoutSeconds int

	// Rate limiting
	RateLimitEnabled        bool
	RateLimitLogOnly        bool // If true, only log violations, don't block.
	RateLimitRequestsPerDay int64

	// Server
	ServerShutdownTimeoutSeconds int

	// Logging
	LogLevel  string
	LogFormat string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Groq
		GroqAPIKey:  getEnvOrDefault("GROQ_API_KEY", ""),
		GroqBaseURL: getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),

		// Generation
		GenerationConfigFile: getEnvOrDefault("GENERATION_CONFIG_FILE", ""),

		// Auth
		ValidatorType:     getEnvOrDefault("VALIDATOR_TYPE", "firebase"),
		FirebaseProjectID: getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
		FirebaseCredJSON:  getEnvOrDefault("FIREBASE_CRED_JSON", ""),
		JWTJWKSURL:        getEnvOrDefault("JWT_JWKS_URL", ""),

		// Database
		DatabaseURL:       getEnvOrDefault("DATABASE_URL", "postgres://localhost/vlearn?sslmode=disable"),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 15),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdleTime: getEnvAsInt("DB_CONN_MAX_IDLE_TIME_MINUTES", 1),
		DBConnMaxLifetime: getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 30),

		// Worker pool
		TrackingWorkerPoolSize: getEnvAsInt("TRACKING_WORKER_POOL_SIZE", 4),
		TrackingBufferSize:     getEnvAsInt("TRACKING_BUFFER_SIZE", 1000),
		TrackingTimeoutSeconds: getEnvAsInt("TRACKING_TIMEOUT_SECONDS", 30),

		// Rate limiting
		RateLimitEnabled:        getEnvOrDefault("RATE_LIMIT_ENABLED", "false") == "true",
		RateLimitLogOnly:        getEnvOrDefault("RATE_LIMIT_LOG_ONLY", "true") == "true",
		RateLimitRequestsPerDay: getEnvAsInt64("RATE_LIMIT_REQUESTS_PER_DAY", 200),

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
