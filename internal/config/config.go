package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     AuthConfig
	Company  CompanyConfig
	CORS     CORSConfig
	Log      LogConfig
	Features FeatureFlags
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
	Version      string
}

type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// ConnectionString prefers DATABASE_URL when it is set.
func (d DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
	StatsTTL time.Duration
}

type KafkaConfig struct {
	Brokers       []string
	InvoicesTopic string
}

type AuthConfig struct {
	PinHash         string
	JWTSecret       string
	TokenTTL        time.Duration
	RateLimitMax    int64
	RateLimitWindow time.Duration
}

// CompanyConfig is the seller block printed on every invoice.
type CompanyConfig struct {
	Name      string
	Address   string
	GSTIN     string
	State     string
	StateCode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type FeatureFlags struct {
	EnableInvoiceCaching bool
	EnableInvoiceEvents  bool
	EnableRateLimit      bool
	RequireAuth          bool
	AutoMigrate          bool
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Load reads configuration from the environment. A local .env file, if any, is loaded first.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8000),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			Environment:  getEnvString("APP_ENV", "development"),
			Version:      getEnvString("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			URL:          getEnvString("DATABASE_URL", ""),
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "spm"),
			Password:     getEnvString("DB_PASSWORD", "spm"),
			Name:         getEnvString("DB_NAME", "spm_billing"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REDIS_CACHE_TTL", 5*time.Minute),
			StatsTTL: getEnvDuration("REDIS_STATS_TTL", time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			InvoicesTopic: getEnvString("KAFKA_INVOICES_TOPIC", "billing.invoices"),
		},
		Auth: AuthConfig{
			PinHash:         getEnvString("AUTH_PIN_HASH", ""),
			JWTSecret:       getEnvString("AUTH_JWT_SECRET", ""),
			TokenTTL:        getEnvDuration("AUTH_TOKEN_TTL", 12*time.Hour),
			RateLimitMax:    int64(getEnvInt("AUTH_RATE_LIMIT_MAX", 5)),
			RateLimitWindow: getEnvDuration("AUTH_RATE_LIMIT_WINDOW", time.Minute),
		},
		Company: CompanyConfig{
			Name:      getEnvString("COMPANY_NAME", "SPM ENGINEERING"),
			Address:   getEnvString("COMPANY_ADDRESS", "347, SANGANUR ROAD, GANAPATHY, COIMBATORE"),
			GSTIN:     getEnvString("COMPANY_GSTIN", "33AFHPE4773N1Z6"),
			State:     getEnvString("COMPANY_STATE", "Tamil Nadu"),
			StateCode: getEnvString("COMPANY_STATE_CODE", "33"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", nil),
		},
		Log: LogConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		Features: FeatureFlags{
			EnableInvoiceCaching: getEnvBool("ENABLE_INVOICE_CACHING", true),
			EnableInvoiceEvents:  getEnvBool("ENABLE_INVOICE_EVENTS", false),
			EnableRateLimit:      getEnvBool("ENABLE_RATE_LIMIT", true),
			RequireAuth:          getEnvBool("REQUIRE_AUTH", false),
			AutoMigrate:          getEnvBool("AUTO_MIGRATE", false),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return splitAndTrim(value)
}

func splitAndTrim(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
