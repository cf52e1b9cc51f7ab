package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort   string
	MySQLDSN   string
	RedisAddr  string
	SessionTTL time.Duration
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/pointsledger?parseTime=true"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	ttl := 12 * time.Hour
	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		} else {
			log.Printf("invalid SESSION_TTL_HOURS value %q, defaulting to 12", raw)
		}
	}

	return Config{HTTPPort: port, MySQLDSN: dsn, RedisAddr: redisAddr, SessionTTL: ttl}
}
