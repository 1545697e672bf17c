package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the persisted client state.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type Storage struct {
	Driver     string
	DB         DB
	SQLitePath string
	RedisURL   string
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Config struct {
	ServerPort    int
	APIBaseURL    string
	APITimeout    time.Duration
	Storage       Storage
	CookieName    string
	CookieSecure  bool
	LogLevel      string
	VoteRollback  bool
	AuthRateLimit RateLimit
	CLIProfile    string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "devchat_client"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

// LoadStorage reads the storage backend settings. defaultDriver is used when
// STORAGE_DRIVER is unset or unknown.
func LoadStorage(defaultDriver string) Storage {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", defaultDriver)))
	switch driver {
	case "":
		driver = defaultDriver
	case DriverMemory, DriverPostgres, DriverSQLite, DriverRedis:
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER %q, falling back to %s", driver, defaultDriver)
		driver = defaultDriver
	}

	return Storage{
		Driver:     driver,
		DB:         LoadDB(),
		SQLitePath: getEnv("SQLITE_PATH", "devchat.db"),
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
	}
}

// LoadConfig loads the web client configuration.
func LoadConfig() *Config {
	return load(DriverMemory)
}

// LoadCLIConfig loads the terminal client configuration. The CLI keeps its
// session on disk by default so it survives between invocations.
func LoadCLIConfig() *Config {
	return load(DriverSQLite)
}

func load(defaultDriver string) *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:   getEnvAsInt("SERVER_PORT", 3000),
		APIBaseURL:   strings.TrimRight(getEnv("DEVCHAT_API_URL", "http://localhost:8080/api"), "/"),
		APITimeout:   parseDuration(getEnv("API_TIMEOUT", "10s"), 10*time.Second),
		Storage:      LoadStorage(defaultDriver),
		CookieName:   getEnv("SESSION_COOKIE", "devchat_client"),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		VoteRollback: getEnvBool("VOTE_ROLLBACK", false),
		AuthRateLimit: RateLimit{
			RPS:   getEnvAsFloat("AUTH_RATE_RPS", 1),
			Burst: getEnvAsInt("AUTH_RATE_BURST", 5),
		},
		CLIProfile: getEnv("DEVCHAT_PROFILE", "default"),
	}
}
