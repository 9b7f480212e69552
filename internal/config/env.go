package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	return envParsed(key, fallback, strconv.Atoi)
}

func envBool(key string, fallback bool) bool {
	return envParsed(key, fallback, strconv.ParseBool)
}

func envDuration(key string, fallback time.Duration) time.Duration {
	return envParsed(key, fallback, time.ParseDuration)
}

// envParsed keeps the fallback when the variable is unset or does not parse.
func envParsed[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		slog.Warn("ignoring malformed environment variable", "key", key, "value", raw, "error", err)
		return fallback
	}
	return value
}
