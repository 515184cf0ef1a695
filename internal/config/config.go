// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GRACEHUB_"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SecretKey  []byte
	ListenAddr string
	DBPath     string
	TokenTTL   time.Duration
	BcryptCost int // 0 means the bcrypt default
	LogLevel   slog.Level
}

// AdminSeed holds the credentials for the bootstrap admin account.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// LoadDotEnv copies variables from the given .env files (default ".env") into
// the process environment. Variables already set are not overridden and
// missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// GRACEHUB_SECRET_KEY is required. Optional variables with defaults:
// GRACEHUB_LISTEN_ADDR (127.0.0.1:8080), GRACEHUB_DB_PATH (gracehub.db),
// GRACEHUB_TOKEN_TTL (24h), GRACEHUB_BCRYPT_COST (bcrypt default),
// GRACEHUB_LOG_LEVEL (info).
func Load() (*Config, error) {
	secret := os.Getenv(envPrefix + "SECRET_KEY")
	if secret == "" {
		return nil, errors.New(envPrefix + "SECRET_KEY is required")
	}

	tokenTTL := 24 * time.Hour
	if v, ok := os.LookupEnv(envPrefix + "TOKEN_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf(envPrefix+"TOKEN_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf(envPrefix+"TOKEN_TTL must be positive, got %s", parsed)
		}
		tokenTTL = parsed
	}

	bcryptCost := 0
	if v, ok := os.LookupEnv(envPrefix + "BCRYPT_COST"); ok && v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf(envPrefix+"BCRYPT_COST has invalid integer %q: %w", v, err)
		}
		bcryptCost = parsed
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv(envPrefix + "LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return nil, fmt.Errorf(envPrefix+"LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv(envPrefix + "LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "gracehub.db"
	if v, ok := os.LookupEnv(envPrefix + "DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		SecretKey:  []byte(secret),
		ListenAddr: listenAddr,
		DBPath:     dbPath,
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
		LogLevel:   logLevel,
	}, nil
}

// LoadAdminSeed reads GRACEHUB_ADMIN_USERNAME, GRACEHUB_ADMIN_EMAIL, and
// GRACEHUB_ADMIN_PASSWORD. All three are required.
func LoadAdminSeed() (AdminSeed, error) {
	seed := AdminSeed{
		Username: os.Getenv(envPrefix + "ADMIN_USERNAME"),
		Email:    os.Getenv(envPrefix + "ADMIN_EMAIL"),
		Password: os.Getenv(envPrefix + "ADMIN_PASSWORD"),
	}

	var missing []string
	if seed.Username == "" {
		missing = append(missing, envPrefix+"ADMIN_USERNAME")
	}
	if seed.Email == "" {
		missing = append(missing, envPrefix+"ADMIN_EMAIL")
	}
	if seed.Password == "" {
		missing = append(missing, envPrefix+"ADMIN_PASSWORD")
	}
	if len(missing) > 0 {
		return AdminSeed{}, fmt.Errorf("missing required variables: %s", strings.Join(missing, ", "))
	}

	return seed, nil
}
