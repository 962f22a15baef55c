package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Matrix sources selectable by the operator.
const (
	MatrixSourceFetch = "fetch"
	MatrixSourceLoad  = "load"
)

// Matrix store backends.
const (
	MatrixStoreFile     = "file"
	MatrixStorePostgres = "postgres"
	MatrixStoreRedis    = "redis"
)

// Distance service providers.
const (
	ProviderGoogle = "google"
	ProviderORS    = "ors"
)

// Config holds process-wide settings read once at startup.
// Tour tunables (exclusions, start offset, cooling rate) are not here;
// they are constants of the command that runs the tour.
type Config struct {
	GoogleKey      string
	ORSKey         string
	PointsPath     string
	MatrixSource   string
	MatrixStore    string
	MatrixDir      string
	MatrixKey      string
	DatabaseURL    string
	RedisURL       string
	LogDir         string
	TourReportPath string
	Port           string
}

// LoadDotEnv reads .env into the process environment if the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment and validates it.
func Load() (Config, error) {
	cfg := Config{
		GoogleKey:      Get("GOOGLE_KEY", ""),
		ORSKey:         Get("ORS_API_KEY", ""),
		PointsPath:     Get("POINTS_PATH", "cows.txt"),
		MatrixSource:   strings.ToLower(Get("MATRIX_SOURCE", MatrixSourceFetch)),
		MatrixStore:    strings.ToLower(Get("MATRIX_STORE", MatrixStoreFile)),
		MatrixDir:      Get("MATRIX_DIR", "."),
		MatrixKey:      Get("MATRIX_KEY", "distances"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		RedisURL:       Get("REDIS_URL", ""),
		LogDir:         Get("LOG_DIR", ""),
		TourReportPath: Get("TOUR_REPORT_PATH", ""),
		Port:           Get("PORT", "8080"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Provider reports which distance service the credentials select.
// Google is preferred when both keys are present.
func (c Config) Provider() string {
	if c.GoogleKey != "" {
		return ProviderGoogle
	}
	if c.ORSKey != "" {
		return ProviderORS
	}
	return ""
}

func (c Config) Validate() error {
	switch c.MatrixSource {
	case MatrixSourceFetch, MatrixSourceLoad:
	default:
		return fmt.Errorf("config: MATRIX_SOURCE must be %q or %q, got %q", MatrixSourceFetch, MatrixSourceLoad, c.MatrixSource)
	}

	switch c.MatrixStore {
	case MatrixStoreFile:
	case MatrixStorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required when MATRIX_STORE=postgres")
		}
	case MatrixStoreRedis:
		if c.RedisURL == "" {
			return errors.New("config: REDIS_URL is required when MATRIX_STORE=redis")
		}
	default:
		return fmt.Errorf("config: unknown MATRIX_STORE %q", c.MatrixStore)
	}

	if c.MatrixSource == MatrixSourceFetch && c.Provider() == "" {
		return errors.New("config: GOOGLE_KEY or ORS_API_KEY is required when MATRIX_SOURCE=fetch")
	}

	if strings.TrimSpace(c.MatrixKey) == "" {
		return errors.New("config: MATRIX_KEY must be non-empty")
	}

	return nil
}
