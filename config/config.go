package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	OutputDir string
	ChromeBin string

	// Headless is off by default: the first search page usually shows a
	// captcha that a human has to solve in the visible browser window.
	Headless       bool
	CaptchaWaitSec int
	PageWaitSec    int
	ShowMoreMax    int
	ScrollPasses   int

	MaxConcurrency int
	MaxRetries     int

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		ChromeBin: getEnv("CHROME_BIN", ""),

		Headless:       getEnvBool("HEADLESS", false),
		CaptchaWaitSec: getEnvInt("CAPTCHA_WAIT_SEC", 60),
		PageWaitSec:    getEnvInt("PAGE_WAIT_SEC", 8),
		ShowMoreMax:    getEnvInt("SHOW_MORE_MAX", 20),
		ScrollPasses:   getEnvInt("SCROLL_PASSES", 10),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "tickets_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
