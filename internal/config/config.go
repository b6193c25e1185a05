package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	minSecretLen = 32
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	Kafka   KafkaConfig
	Tracing TracingConfig
	Ledger  LedgerConfig
}

type AppConfig struct {
	Port           string
	LogLevel       string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// DBConfig holds the database connection settings
type DBConfig struct {
	Driver      string
	URL         string
	MaxOpenConn int
	ConnMaxIdle time.Duration
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// KafkaConfig is optional; an empty broker list disables event publishing.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// TracingConfig is optional; an empty endpoint disables trace export.
type TracingConfig struct {
	Endpoint    string
	ServiceName string
	SampleRatio float64
	Environment string
}

type LedgerConfig struct {
	// AuditRepeatViews appends a VIEWED row on every view, not only on the
	// first one.
	AuditRepeatViews bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// a missing .env is expected outside local development
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("HTTP_REQUEST_TIMEOUT", "30s")

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_URL", "notification-api.db")
	v.SetDefault("DB_MAX_OPEN", 10)
	v.SetDefault("DB_CONN_IDLE", "5m")

	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("JWT_ISSUER", "notification-api")

	v.SetDefault("KAFKA_TOPIC", "notification-ledger")
	v.SetDefault("KAFKA_CLIENT_ID", "notification-api-producer")

	v.SetDefault("OTEL_SERVICE_NAME", "notification-api")
	v.SetDefault("OTEL_TRACE_SAMPLE_RATIO", 1.0)
	v.SetDefault("ENVIRONMENT", "development")

	v.SetDefault("LEDGER_AUDIT_REPEAT_VIEWS", false)
	return v
}

// FromViper builds and validates a Config from an already populated viper
// instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			RequestTimeout: v.GetDuration("HTTP_REQUEST_TIMEOUT"),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			URL:         v.GetString("DB_URL"),
			MaxOpenConn: v.GetInt("DB_MAX_OPEN"),
			ConnMaxIdle: v.GetDuration("DB_CONN_IDLE"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			TTL:    v.GetDuration("JWT_TTL"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Kafka: KafkaConfig{
			Brokers:  splitList(v.GetString("KAFKA_BROKERS")),
			Topic:    v.GetString("KAFKA_TOPIC"),
			ClientID: v.GetString("KAFKA_CLIENT_ID"),
		},
		Tracing: TracingConfig{
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
			SampleRatio: v.GetFloat64("OTEL_TRACE_SAMPLE_RATIO"),
			Environment: v.GetString("ENVIRONMENT"),
		},
		Ledger: LedgerConfig{
			AuditRepeatViews: v.GetBool("LEDGER_AUDIT_REPEAT_VIEWS"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.URL == "" {
		return fmt.Errorf("config: DB_URL must be set")
	}
	if len(c.JWT.Secret) < minSecretLen {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes", minSecretLen)
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return fmt.Errorf("config: KAFKA_TOPIC must be set when KAFKA_BROKERS is")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("config: OTEL_TRACE_SAMPLE_RATIO must be between 0 and 1")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
