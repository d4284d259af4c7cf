package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env      string
	HTTPAddr string

	StorageMode string
	MongoURI    string
	MongoDB     string

	KafkaBrokers       []string
	KafkaGroupID       string
	BookingEventsTopic string
	CalendarSyncTopic  string

	PropertySearchURL   string
	PricingURL          string
	CollaboratorTimeout time.Duration

	DefaultSlotLimit int
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:                getEnv("APP_ENV", "dev"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		StorageMode:        strings.ToLower(getEnv("STORAGE_MODE", "mongo")),
		MongoURI:           os.Getenv("MONGO_URI"),
		MongoDB:            getEnv("MONGO_DB", "novasite"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "availability-service"),
		BookingEventsTopic: getEnv("KAFKA_BOOKING_TOPIC", "bookings.lifecycle"),
		CalendarSyncTopic:  getEnv("KAFKA_CALENDAR_TOPIC", "calendar.sync"),
		PropertySearchURL:  getEnv("PROPERTY_SEARCH_URL", "http://localhost:8090/api/properties/search"),
		PricingURL:         getEnv("PRICING_URL", "http://localhost:8091/api/price/calculate"),
	}

	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		for _, raw := range strings.Split(brokers, ",") {
			broker := strings.TrimSpace(raw)
			if broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	timeout, err := parseDurationEnv("COLLABORATOR_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.CollaboratorTimeout = timeout

	limit, err := parseIntEnv("DEFAULT_SLOT_LIMIT", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.DefaultSlotLimit = limit

	switch cfg.StorageMode {
	case "memory":
	case "mongo":
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_MODE %q", cfg.StorageMode)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}
