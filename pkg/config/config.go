package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// ServiceName identifies this service in logs and metrics
const ServiceName = "bhojanyaan"

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// StoreConfig selects the record store backend
type StoreConfig struct {
	Driver   string // "memory" or "postgres"
	SeedDemo bool
}

// RedisConfig holds the connection used for persisting store snapshots.
// An empty Addr disables persistence.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	StateKey string
}

// KafkaConfig holds event publishing configuration
type KafkaConfig struct {
	Brokers     []string
	OrderTopic  string
	ReportTopic string
	// PublishTimeout bounds one publish, broker retries included
	PublishTimeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// MailConfig holds the FSSAI notification mailer configuration
type MailConfig struct {
	FSSAIRecipient string
	Delay          time.Duration
}

// MarketplaceConfig holds the fees and defaults applied to orders and searches
type MarketplaceConfig struct {
	CommissionRate      float64
	PlatformFeeRate     float64
	DeliveryFeeStandard float64
	DeliveryFeeExpress  float64
	DefaultRadiusKm     float64
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	Store       StoreConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Mail        MailConfig
	Marketplace MarketplaceConfig
}

// Load loads configuration from the .env file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: ServiceName,
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", ServiceName),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", "memory"),
			SeedDemo: getEnvAsBool("SEED_DEMO_DATA", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			StateKey: getEnv("STATE_KEY", "bhojanyaan-store"),
		},
		Kafka: KafkaConfig{
			Brokers:        getEnvAsList("KAFKA_BROKERS"),
			OrderTopic:     getEnv("KAFKA_ORDER_TOPIC", "marketplace.orders"),
			ReportTopic:    getEnv("KAFKA_REPORT_TOPIC", "marketplace.fssai-reports"),
			PublishTimeout: getEnvAsDuration("KAFKA_PUBLISH_TIMEOUT", 2*time.Second),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", ServiceName),
		},
		Mail: MailConfig{
			FSSAIRecipient: getEnv("FSSAI_MAIL_TO", "fssai@gov.in"),
			Delay:          getEnvAsDuration("FSSAI_MAIL_DELAY", 1*time.Second),
		},
		Marketplace: DefaultMarketplace(),
	}

	config.Marketplace.CommissionRate = getEnvAsFloat("COMMISSION_RATE", config.Marketplace.CommissionRate)
	config.Marketplace.PlatformFeeRate = getEnvAsFloat("PLATFORM_FEE_RATE", config.Marketplace.PlatformFeeRate)
	config.Marketplace.DeliveryFeeStandard = getEnvAsFloat("DELIVERY_FEE_STANDARD", config.Marketplace.DeliveryFeeStandard)
	config.Marketplace.DeliveryFeeExpress = getEnvAsFloat("DELIVERY_FEE_EXPRESS", config.Marketplace.DeliveryFeeExpress)
	config.Marketplace.DefaultRadiusKm = getEnvAsFloat("DEFAULT_RADIUS_KM", config.Marketplace.DefaultRadiusKm)

	if config.Store.Driver != "memory" && config.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", config.Store.Driver)
	}

	return config, nil
}

// DefaultMarketplace returns the stock marketplace economics
func DefaultMarketplace() MarketplaceConfig {
	return MarketplaceConfig{
		CommissionRate:      0.05,
		PlatformFeeRate:     0.02,
		DeliveryFeeStandard: 20,
		DeliveryFeeExpress:  50,
		DefaultRadiusKm:     15,
	}
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("store_driver", c.Store.Driver),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
