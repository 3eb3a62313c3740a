package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers selectable through STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                 string
	StoreDriver          string
	MongoURI             string
	MongoDatabase        string
	SubmissionCollection string
	Timeout              time.Duration
	SQLitePath           string
	PostgresDSN          string
	GooglePlacesAPIKey   string
	PlacesSearchArea     string
	PlacesTimeout        time.Duration
	AllowedOrigins       []string
	RedisAddr            string
	RedisPassword        string
	SubmitRateLimit      int
	ServerLog            *log.Logger
}

// Load reads an optional .env file and environment variables and returns a
// fully populated Config. Invalid configuration is fatal.
func Load() Config {
	logger := log.New(os.Stdout, "[latex-free-eats-api] ", log.LstdFlags|log.Lshortfile)

	if err := LoadDotEnv(envOrDefault("ENV_FILE", ".env")); err != nil {
		logger.Fatalf(".env の読み込みに失敗しました: %v", err)
	}

	cfg := FromEnv()
	cfg.ServerLog = logger
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("設定が不正です: %v", err)
	}

	cfg.ServerLog.Printf("loaded config: addr=%q store=%q googlePlaces=%t rateLimit=%t",
		cfg.Addr, cfg.StoreDriver, cfg.GooglePlacesAPIKey != "", cfg.RedisAddr != "")

	return cfg
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// FromEnv builds a Config from the current environment, applying defaults.
func FromEnv() Config {
	addr := strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			addr = ":" + port
		} else {
			addr = ":3000"
		}
	}

	return Config{
		Addr:                 addr,
		StoreDriver:          strings.ToLower(envOrDefault("STORE_DRIVER", DriverMongo)),
		MongoURI:             envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:        envOrDefault("MONGO_DB", "latex-free-eats"),
		SubmissionCollection: envOrDefault("SUBMISSION_COLLECTION", "glove_submissions"),
		Timeout:              envDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		SQLitePath:           envOrDefault("SQLITE_PATH", "data/submissions.db"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		GooglePlacesAPIKey:   strings.TrimSpace(os.Getenv("GOOGLE_PLACES_API_KEY")),
		PlacesSearchArea:     envOrDefault("PLACES_SEARCH_AREA", "New York City"),
		PlacesTimeout:        envDuration("PLACES_TIMEOUT", 5*time.Second),
		AllowedOrigins:       parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		RedisAddr:            strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		SubmitRateLimit:      envInt("SUBMIT_RATE_LIMIT_PER_MINUTE", 10),
	}
}

// Validate reports configuration that cannot start the service.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("SQLITE_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s, %s or %s)", c.StoreDriver, DriverMongo, DriverSQLite, DriverPostgres)
	}
	if c.RedisAddr != "" && c.SubmitRateLimit <= 0 {
		return errors.New("SUBMIT_RATE_LIMIT_PER_MINUTE must be positive when REDIS_ADDR is set")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
