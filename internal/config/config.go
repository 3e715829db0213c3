package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-event consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// Rabbit stores notification publisher settings. Empty URL disables publishing.
type Rabbit struct {
	URL      string
	Exchange string
}

// Redis stores the driver location index settings. Empty Addr disables the index.
type Redis struct {
	Addr string
}

// Maps stores the road-ETA gateway settings. Empty APIKey disables the gateway.
type Maps struct {
	APIKey string
}

// RateLimit stores token-bucket settings for the mutating dispatch endpoints.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Dispatch stores assignment engine and scheduler settings.
type Dispatch struct {
	MaxDistanceKm      float64
	MinRating          float64
	AutoAssignInterval time.Duration
	InterAssignDelay   time.Duration
	OperationTimeout   time.Duration
}

// Config stores dispatch service settings.
type Config struct {
	Port      int
	DB        DB
	Kafka     Kafka
	Rabbit    Rabbit
	Redis     Redis
	Maps      Maps
	RateLimit RateLimit
	Dispatch  Dispatch
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		DB: DB{
			Host: envStr("DB_HOST", defaultDB.Host),
			Port: envStr("DB_PORT", defaultDB.Port),
			User: envStr("DB_USER", defaultDB.User),
			Pass: envStr("DB_PASS", defaultDB.Pass),
			Name: envStr("DB_NAME", defaultDB.Name),
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS"),
			GroupID: envStr("KAFKA_GROUP_ID", defaultKafka.GroupID),
			Topic:   envStr("KAFKA_TOPIC", defaultKafka.Topic),
		},
		Rabbit: Rabbit{
			URL:      envStr("RABBIT_URL", ""),
			Exchange: envStr("RABBIT_EXCHANGE", defaultRabbit.Exchange),
		},
		Redis: Redis{
			Addr: envStr("REDIS_ADDR", ""),
		},
		Maps: Maps{
			APIKey: envStr("MAPS_API_KEY", ""),
		},
		RateLimit: RateLimit{
			Enabled:    envBool("RATE_LIMIT_ENABLED", defaultRateLimit.Enabled),
			Rate:       envFloat("RATE_LIMIT_RATE", defaultRateLimit.Rate),
			Burst:      envInt("RATE_LIMIT_BURST", defaultRateLimit.Burst),
			TTL:        envDuration("RATE_LIMIT_TTL", defaultRateLimit.TTL),
			MaxBuckets: envInt("RATE_LIMIT_MAX_BUCKETS", defaultRateLimit.MaxBuckets),
		},
		Dispatch: Dispatch{
			MaxDistanceKm:      envFloat("DISPATCH_MAX_DISTANCE_KM", defaultDispatch.MaxDistanceKm),
			MinRating:          envFloat("DISPATCH_MIN_RATING", defaultDispatch.MinRating),
			AutoAssignInterval: envDuration("DISPATCH_AUTO_ASSIGN_INTERVAL", defaultDispatch.AutoAssignInterval),
			InterAssignDelay:   envDuration("DISPATCH_INTER_ASSIGN_DELAY", defaultDispatch.InterAssignDelay),
			OperationTimeout:   envDuration("DISPATCH_OPERATION_TIMEOUT", defaultDispatch.OperationTimeout),
		},
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Dispatch.MaxDistanceKm <= 0 {
		return fmt.Errorf("invalid max distance: %f", c.Dispatch.MaxDistanceKm)
	}
	if c.Dispatch.AutoAssignInterval <= 0 {
		return fmt.Errorf("invalid auto-assign interval: %s", c.Dispatch.AutoAssignInterval)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
