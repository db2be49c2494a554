package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer        string // Optional: issuer claim for session tokens (default: heymumma)
	NumKeys       int    // Optional: number of signing keys to generate (default: 2, max: 10)
	DatabaseFile  string // Optional: path to SQLite database file (default: ./users.db)
	PepperFile    string // Optional: path to file containing pepper for password hashing (default: ./pepper)
	MaternalModel string // Optional: decision tree export for maternal risk
	FetalModel    string // Optional: decision tree export for fetal health

	StoreRecreateAttempts int           // Optional: delete attempts for a broken database (default: 3)
	StoreRecreatePause    time.Duration // Optional: pause between delete attempts (default: 1s)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	LogFile              string        // Optional: also write logs to this rotated file
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists. Variables already set win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	return Config{
		Issuer:        getEnvOrDefault("HEYMUMMA_ISSUER", "heymumma"),
		NumKeys:       getEnvIntOrDefault("HEYMUMMA_NUM_KEYS", 2),
		DatabaseFile:  getEnvOrDefault("HEYMUMMA_DATABASE_FILE", "users.db"),
		PepperFile:    getEnvOrDefault("HEYMUMMA_PEPPER_FILE", "pepper"),
		MaternalModel: os.Getenv("HEYMUMMA_MATERNAL_MODEL"),
		FetalModel:    os.Getenv("HEYMUMMA_FETAL_MODEL"),

		StoreRecreateAttempts: getEnvIntOrDefault("STORE_RECREATE_ATTEMPTS", 3),
		StoreRecreatePause:    getEnvDurationOrDefault("STORE_RECREATE_PAUSE", time.Second),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		LogFile:              os.Getenv("LOG_FILE"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", time.Hour),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
