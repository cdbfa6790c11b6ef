// Package config reads the service configuration from environment variables. An optional .env
// file is loaded first; variables already present in the environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
	"gitlab.com/dirk.krummacker/peoplehub/internal/persist"
	"gitlab.com/dirk.krummacker/peoplehub/internal/seed"
	"gitlab.com/dirk.krummacker/peoplehub/internal/store"
)

// Store drivers.
const (
	DriverBolt   = "bolt"
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

const (
	defaultPort       = 8080
	defaultBoltPath   = "peoplehub.db"
	defaultSQLitePath = "peoplehub.sqlite"
	defaultDBName     = "test"
)

// Config holds all settings of the service.
type Config struct {
	Port            int
	GinLogging      bool
	StoreDriver     string
	BoltPath        string
	DBUser          string
	DBPassword      string
	DBHost          string
	DBName          string
	SQLitePath      string
	SlotName        string
	SeedURL         string
	SeedResults     int
	SeedNationality string
	SeedDisabled    bool
	NotificationTTL time.Duration
	HTTPTimeout     time.Duration
	Theme           model.Theme
}

// Load reads the .env file at path, if it exists, and then parses the environment.
func Load(path string) (Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return Parse(os.Getenv)
}

// Parse builds the configuration from getenv, applying defaults for unset variables.
func Parse(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:            defaultPort,
		GinLogging:      !strings.EqualFold(getenv("GIN_LOGGING"), "off"),
		StoreDriver:     strings.ToLower(withDefault(getenv("STORE_DRIVER"), DriverBolt)),
		BoltPath:        withDefault(getenv("BOLT_PATH"), defaultBoltPath),
		DBUser:          getenv("DBUSER"),
		DBPassword:      getenv("DBPWD"),
		DBHost:          getenv("DBHOST"),
		DBName:          withDefault(getenv("DBNAME"), defaultDBName),
		SQLitePath:      withDefault(getenv("SQLITE_PATH"), defaultSQLitePath),
		SlotName:        withDefault(getenv("SLOT_NAME"), persist.DefaultKey),
		SeedURL:         withDefault(getenv("SEED_URL"), seed.DefaultURL),
		SeedResults:     seed.DefaultResults,
		SeedNationality: withDefault(getenv("SEED_NAT"), seed.DefaultNationality),
		NotificationTTL: store.DefaultNotificationTTL,
		HTTPTimeout:     seed.DefaultTimeout,
		Theme:           model.Theme(strings.ToLower(withDefault(getenv("THEME"), string(model.ThemeLight)))),
	}

	var err error
	if v := getenv("PORT"); v != "" {
		if cfg.Port, err = strconv.Atoi(v); err != nil || cfg.Port <= 0 {
			return Config{}, fmt.Errorf("could not parse PORT env variable: %q", v)
		}
	}
	if v := getenv("SEED_RESULTS"); v != "" {
		if cfg.SeedResults, err = strconv.Atoi(v); err != nil || cfg.SeedResults <= 0 {
			return Config{}, fmt.Errorf("could not parse SEED_RESULTS env variable: %q", v)
		}
	}
	if v := getenv("SEED_DISABLED"); v != "" {
		if cfg.SeedDisabled, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("could not parse SEED_DISABLED env variable: %q", v)
		}
	}
	if v := getenv("NOTIFICATION_TTL"); v != "" {
		if cfg.NotificationTTL, err = time.ParseDuration(v); err != nil || cfg.NotificationTTL <= 0 {
			return Config{}, fmt.Errorf("could not parse NOTIFICATION_TTL env variable: %q", v)
		}
	}
	if v := getenv("HTTP_TIMEOUT"); v != "" {
		if cfg.HTTPTimeout, err = time.ParseDuration(v); err != nil || cfg.HTTPTimeout <= 0 {
			return Config{}, fmt.Errorf("could not parse HTTP_TIMEOUT env variable: %q", v)
		}
	}

	switch cfg.StoreDriver {
	case DriverBolt, DriverSQLite:
	case DriverMySQL:
		if cfg.DBHost == "" {
			return Config{}, errors.New("DBHOST required for the mysql store driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER: %q", cfg.StoreDriver)
	}
	if cfg.Theme != model.ThemeLight && cfg.Theme != model.ThemeDark {
		return Config{}, fmt.Errorf("unknown THEME: %q", cfg.Theme)
	}
	return cfg, nil
}

// OpenSlot opens the slot selected by StoreDriver.
func (c Config) OpenSlot() (persist.Slot, error) {
	switch c.StoreDriver {
	case DriverMySQL:
		return persist.OpenSQL("mysql", persist.MySQLDSN(c.DBUser, c.DBPassword, c.DBHost, c.DBName))
	case DriverSQLite:
		return persist.OpenSQL("sqlite", c.SQLitePath)
	default:
		return persist.OpenBolt(c.BoltPath)
	}
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func withDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
