package main

import (
	"os"
	"strings"
)

// Config holds all configuration for the storefront backend. Postgres
// settings are read by the database package from the POSTGRES_* variables.
type Config struct {
	Port             string
	Env              string
	RedisURL         string
	KafkaBrokers     []string
	OrderEventsTopic string
	StripeSecretKey  string
	AllowedOrigins   string
}

// LoadConfig reads configuration from environment variables. Redis, Kafka
// and Stripe are optional: leaving them unset disables the catalog cache,
// order events and payment intents respectively.
func LoadConfig() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		RedisURL:         os.Getenv("REDIS_URL"),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order-events"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		AllowedOrigins:   os.Getenv("ALLOWED_ORIGINS"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
