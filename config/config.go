package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported notification backends
const (
	NotifierLog   = "log"
	NotifierAMQP  = "amqp"
	NotifierKafka = "kafka"
)

// Config holds all application configuration
type Config struct {
	DatabaseURL        string
	Port               string
	GoEnv              string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	CORSAllowedOrigins []string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	Notifier           string
	AMQPURL            string
	AMQPExchange       string
	KafkaBrokers       []string
	KafkaTopic         string
	PublicBaseURL      string
	SeedDatabase       bool
	Timezone           string
	LogLevel           string
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// In production the environment is set directly
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "restaurant-api"),
		JWTAudience:        getEnv("JWT_AUDIENCE", "restaurant-clients"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Notifier:           strings.ToLower(getEnv("NOTIFIER", NotifierLog)),
		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "notifications"),
		KafkaBrokers:       getEnvList("KAFKA_BROKERS", nil),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "restaurant.notifications"),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
		SeedDatabase:       getEnv("SEED_DATABASE", "false") == "true",
		Timezone:           getEnv("TIMEZONE", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	// In development and test a well-known secret keeps local tokens working
	if config.JWTSecret == "" && (config.IsDevelopment() || config.IsTest()) {
		config.JWTSecret = "development-secret"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.Notifier {
	case NotifierLog:
	case NotifierAMQP:
		if c.AMQPURL == "" {
			return fmt.Errorf("AMQP_URL is required when NOTIFIER=amqp")
		}
	case NotifierKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required when NOTIFIER=kafka")
		}
	default:
		return fmt.Errorf("unknown NOTIFIER %q", c.Notifier)
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
		}
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// HasImageStorage reports whether S3 settings are present for menu photos
func (c *Config) HasImageStorage() bool {
	return c.AWSS3Bucket != ""
}

// Location returns the time zone used for calendar-day comparisons
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SetConfig stores the loaded configuration for handlers
func SetConfig(cfg *Config) {
	appConfig = cfg
}

// GetConfig returns the configuration set with SetConfig
func GetConfig() *Config {
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
