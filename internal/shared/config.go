package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	APIBase        string
	APIRPS         int
	APITimeout     time.Duration
	StoreDriver    string // redis|mysql
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	DeviceID       string
	SessionTTL     time.Duration
	PreloadWorkers int
	HotelName      string
}

func Load() Config {
	// .env is optional; real env wins
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", "127.0.0.1:8090"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		APIBase:        env("API_BASE_URL", "https://api.ktech.sydeestack.com/api/v1"),
		APIRPS:         atoi("API_RPS", 10),
		APITimeout:     time.Duration(atoi("API_TIMEOUT_SECONDS", 20)) * time.Second,
		StoreDriver:    env("STORE_DRIVER", "redis"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/frontdesk?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		DeviceID:       env("DEVICE_ID", ""),
		SessionTTL:     time.Duration(atoi("SESSION_TTL_SECONDS", 1800)) * time.Second,
		PreloadWorkers: atoi("PRELOAD_WORKERS", 3),
		HotelName:      env("HOTEL_NAME", "Luxe Haven"),
	}
	if c.StoreDriver != "redis" && c.StoreDriver != "mysql" {
		log.Warn().Str("driver", c.StoreDriver).Msg("unknown STORE_DRIVER, using redis")
		c.StoreDriver = "redis"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
