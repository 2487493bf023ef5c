// Package config loads process configuration from environment variables,
// with an optional .env file merged in first for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every knob the server needs at startup. Zero values from
// Defaults are overridden by PM_CLOB_* environment variables when present.
type Config struct {
	ListenAddr string

	PublisherKind string // "noop", "redis", "kafka"

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisStream   string

	KafkaBrokers []string
	KafkaTopic   string

	DepthCacheKind string // "noop", "redis"
	DepthLevels    int

	LogLevel string
}

// Defaults returns a Config usable with no environment configured at all:
// an in-memory book reachable on :8000, executions discarded.
func Defaults() Config {
	return Config{
		ListenAddr:     ":8000",
		PublisherKind:  "noop",
		RedisAddr:      "localhost:6379",
		RedisDB:        0,
		RedisStream:    "pm-clob:executions",
		KafkaBrokers:   []string{"localhost:9092"},
		KafkaTopic:     "pm-clob.executions",
		DepthCacheKind: "noop",
		DepthLevels:    20,
		LogLevel:       "info",
	}
}

// Load reads a .env file if present, then applies PM_CLOB_* environment
// overrides on top of Defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Defaults()
	setStr(&cfg.ListenAddr, "PM_CLOB_LISTEN_ADDR")
	setStr(&cfg.PublisherKind, "PM_CLOB_PUBLISHER")
	setStr(&cfg.RedisAddr, "PM_CLOB_REDIS_ADDR")
	setStr(&cfg.RedisPassword, "PM_CLOB_REDIS_PASSWORD")
	setInt(&cfg.RedisDB, "PM_CLOB_REDIS_DB")
	setStr(&cfg.RedisStream, "PM_CLOB_REDIS_STREAM")
	setStrSlice(&cfg.KafkaBrokers, "PM_CLOB_KAFKA_BROKERS")
	setStr(&cfg.KafkaTopic, "PM_CLOB_KAFKA_TOPIC")
	setStr(&cfg.DepthCacheKind, "PM_CLOB_DEPTH_CACHE")
	setInt(&cfg.DepthLevels, "PM_CLOB_DEPTH_LEVELS")
	setStr(&cfg.LogLevel, "PM_CLOB_LOG_LEVEL")
	return cfg
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setStrSlice(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parts := strings.Split(v, ",")
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) > 0 {
		*dst = cleaned
	}
}
