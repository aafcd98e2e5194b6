package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	APIBaseURL       string
	APIKey           string
	RedisURL         string
	DefaultZipCode   string
	DefaultRadius    int
	CacheTTL         time.Duration
	NegativeCacheTTL time.Duration
	RequestTimeout   time.Duration
	RetryMax         int
	RateLimitPerMin  int
	MaxChains        int
	LogLevel         string
}

func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		APIBaseURL:       getEnv("API_BASE_URL", "https://api.dealscout.example.com/v1"),
		APIKey:           getEnv("API_KEY", ""),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		DefaultZipCode:   getEnv("DEFAULT_ZIP_CODE", "78704"),
		DefaultRadius:    getEnvInt("DEFAULT_RADIUS", 5),
		CacheTTL:         getEnvDuration("CACHE_TTL", 3600*time.Second),
		NegativeCacheTTL: getEnvDuration("CACHE_TTL_NEGATIVE", 60*time.Second),
		RequestTimeout:   getEnvDuration("API_REQUEST_TIMEOUT", 12*time.Second),
		RetryMax:         getEnvInt("API_RETRY_MAX", 3),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MIN", 120),
		MaxChains:        getEnvInt("MAX_CHAINS", 20),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(i) * time.Second
}
