// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	ListenAddr string
	APIToken   string

	DatabaseURL string

	RateAPIURL      string
	RateAPIKey      string
	RateHTTPTimeout time.Duration
	RateCacheTTL    time.Duration

	// RedisAddr empty means the in-process rate cache is used instead
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment. A missing .env file is fine;
// explicit environment variables always win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		APIToken:        getEnv("API_TOKEN", "dev-token"),
		DatabaseURL:     databaseURL(),
		RateAPIURL:      getEnv("RATE_API_URL", "https://v6.exchangerate-api.com/v6"),
		RateAPIKey:      getEnv("RATE_API_KEY", ""),
		RateHTTPTimeout: getDuration("RATE_HTTP_TIMEOUT", 10*time.Second),
		RateCacheTTL:    getDuration("RATE_CACHE_TTL", time.Hour),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         0,
	}
}

// databaseURL returns DB_CONN_STR when set, otherwise builds the connection
// string from the individual DB_* variables (Docker friendly).
func databaseURL() string {
	if conn := os.Getenv("DB_CONN_STR"); conn != "" {
		return conn
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "networth")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
