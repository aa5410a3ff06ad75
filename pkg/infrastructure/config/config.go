// Package config reads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vsinha/slotting/pkg/application/services/slotting"
)

// Environment keys
const (
	EnvChannel               = "SLOTTING_CHANNEL"
	EnvZonePrefix            = "SLOTTING_ZONE_PREFIX"
	EnvEasyLevels            = "SLOTTING_EASY_LEVELS"
	EnvMoveToFrontMinSales   = "SLOTTING_MOVE_TO_FRONT_MIN_SALES"
	EnvMoveToFrontMinColumn  = "SLOTTING_MOVE_TO_FRONT_MIN_COLUMN"
	EnvMoveFromFrontMaxSales = "SLOTTING_MOVE_FROM_FRONT_MAX_SALES"
	EnvMoveFromFrontMaxCol   = "SLOTTING_MOVE_FROM_FRONT_MAX_COLUMN"
	EnvPasswordHash          = "SLOTTING_PASSWORD_HASH"
	EnvPassword              = "SLOTTING_PASSWORD"
	EnvDatabaseURL           = "SLOTTING_DATABASE_URL"
	EnvLogLevel              = "SLOTTING_LOG_LEVEL"
	EnvLogFormat             = "SLOTTING_LOG_FORMAT"
)

// Config is the resolved runtime configuration
type Config struct {
	Engine       slotting.Config
	PasswordHash string
	Password     string
	DatabaseURL  string
	LogLevel     string
	LogFormat    string
}

// Load reads envFile (if present) into the process environment and resolves
// the configuration. Variables already set in the environment win over the file.
// A missing default .env is not an error; a missing explicit file is.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup resolves the configuration using lookup for each key
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	engine := slotting.DefaultConfig()
	engine.ChannelFilter = get(EnvChannel, engine.ChannelFilter)
	engine.ZonePrefix = get(EnvZonePrefix, engine.ZonePrefix)

	var err error
	if raw := get(EnvEasyLevels, ""); raw != "" {
		if engine.EasyAccessLevels, err = ParseLevels(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvEasyLevels, err)
		}
	}
	if engine.MoveToFrontMinSales, err = getInt64(get, EnvMoveToFrontMinSales, engine.MoveToFrontMinSales); err != nil {
		return nil, err
	}
	if engine.MoveFromFrontMaxSales, err = getInt64(get, EnvMoveFromFrontMaxSales, engine.MoveFromFrontMaxSales); err != nil {
		return nil, err
	}
	minColumn, err := getInt64(get, EnvMoveToFrontMinColumn, int64(engine.MoveToFrontMinColumn))
	if err != nil {
		return nil, err
	}
	engine.MoveToFrontMinColumn = int(minColumn)
	maxColumn, err := getInt64(get, EnvMoveFromFrontMaxCol, int64(engine.MoveFromFrontMaxColumn))
	if err != nil {
		return nil, err
	}
	engine.MoveFromFrontMaxColumn = int(maxColumn)

	if err := engine.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		Engine:       engine,
		PasswordHash: get(EnvPasswordHash, ""),
		Password:     get(EnvPassword, ""),
		DatabaseURL:  get(EnvDatabaseURL, ""),
		LogLevel:     get(EnvLogLevel, "info"),
		LogFormat:    get(EnvLogFormat, "console"),
	}, nil
}

func getInt64(get func(string, string) string, key string, def int64) (int64, error) {
	raw := get(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return v, nil
}

// ParseLevels parses a comma separated list of shelf levels, e.g. "1,11,12"
func ParseLevels(raw string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		level, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q", part)
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels in %q", raw)
	}
	return levels, nil
}
