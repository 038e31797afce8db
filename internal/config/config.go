// README: Config loader with env defaults for HTTP, prediction API, sessions, Redis and maps.
package config

import (
	"os"
	"strconv"
	"time"
)

const defaultPredictURL = "https://taxifare.lewagon.ai/predict"

type SessionConfig struct {
	TTL         time.Duration
	JanitorTick time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	Predict struct {
		URL     string
		Timeout time.Duration
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
	}
	Session SessionConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TAXIFARE_HTTP_ADDR", ":8080")
	cfg.Predict.URL = envOrDefault("TAXIFARE_PREDICT_URL", defaultPredictURL)
	cfg.Predict.Timeout = time.Duration(envOrDefaultInt("TAXIFARE_PREDICT_TIMEOUT_SECONDS", 0)) * time.Second
	cfg.Redis.Addr = envOrDefault("TAXIFARE_REDIS_ADDR", "")
	cfg.Maps.APIKey = envOrDefault("TAXIFARE_MAPS_API_KEY", "")
	cfg.Session.TTL = time.Duration(envOrDefaultFloat("TAXIFARE_SESSION_TTL_MINUTES", 30) * float64(time.Minute))
	cfg.Session.JanitorTick = time.Duration(envOrDefaultInt("TAXIFARE_JANITOR_TICK_SECONDS", 60)) * time.Second
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
