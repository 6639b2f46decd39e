package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	LogLevel          string
	OrderCancelGrace  time.Duration
	LocationRetention time.Duration
	OutboxBatchSize   int
	DispatchBatchSize int
}

// Lookup returns the raw value of a configuration key and whether it is set.
type Lookup func(key string) (string, bool)

// LoadConfig reads every key through lookup and applies defaults for the
// ones that are unset or empty.
func LoadConfig(lookup Lookup) (Config, error) {
	r := reader{lookup: lookup}
	cfg := Config{
		HTTPPort:               r.string("HTTP_PORT", "8080"),
		DBHost:                 r.string("DB_HOST", "localhost"),
		DBPort:                 r.string("DB_PORT", "5432"),
		DBUser:                 r.string("DB_USER", "postgres"),
		DBPassword:             r.string("DB_PASSWORD", ""),
		DBName:                 r.string("DB_NAME", "cafedelivery"),
		DBSslMode:              r.string("DB_SSLMODE", "disable"),
		KafkaHost:              r.string("KAFKA_HOST", "localhost:9092"),
		KafkaOrderChangedTopic: r.string("KAFKA_ORDER_CHANGED_TOPIC", "cafe.orders"),
		LogLevel:               r.string("LOG_LEVEL", "info"),
		OrderCancelGrace:       r.minutes("ORDER_CANCEL_GRACE_MINUTES", 15),
		LocationRetention:      r.hours("LOCATION_RETENTION_HOURS", 24),
		OutboxBatchSize:        r.int("OUTBOX_BATCH_SIZE", 100),
		DispatchBatchSize:      r.int("DISPATCH_BATCH_SIZE", 50),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// RedactedDSN is DSN without the password, for logs.
func (c Config) RedactedDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.User(c.DBUser),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   c.DBName,
	}
	return u.String()
}

// reader keeps the first parse error so LoadConfig can read all keys in one
// expression.
type reader struct {
	lookup Lookup
	err    error
}

func (r *reader) string(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) int(key string, def int) int {
	raw := r.string(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err == nil && n <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("config %s=%q: %w", key, raw, err)
		}
		return def
	}
	return n
}

func (r *reader) minutes(key string, def int) time.Duration {
	return time.Duration(r.int(key, def)) * time.Minute
}

func (r *reader) hours(key string, def int) time.Duration {
	return time.Duration(r.int(key, def)) * time.Hour
}
