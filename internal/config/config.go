package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	LogLevel   string
	DBUrl      string
	ServerPort string

	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string

	Timezone         string
	StudioPlaceLabel string
	FollowUpDays     int
	PublicBaseURL    string

	RedisURL string
	LockWait time.Duration
	LockTTL  time.Duration

	SuggestAPIURL  string
	SuggestAPIKey  string
	SuggestModel   string
	SuggestTimeout time.Duration

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	EnableMetrics bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables always win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		DBUrl:      getEnv("DATABASE_URL", "file:equipment.db?_pragma=foreign_keys(1)"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		JWTSecret:     getEnv("JWT_SECRET", "changeme"),
		JWTTTL:        getDuration("JWT_TTL", 24*time.Hour),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		Timezone:         getEnv("APP_TIMEZONE", "Asia/Jakarta"),
		StudioPlaceLabel: getEnv("STUDIO_PLACE_LABEL", "Studio"),
		FollowUpDays:     getInt("FOLLOW_UP_DAYS", 2),
		PublicBaseURL:    strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		RedisURL: getEnv("REDIS_URL", ""),
		LockWait: getDuration("LOCK_WAIT", 5*time.Second),
		LockTTL:  getDuration("LOCK_TTL", 10*time.Second),

		SuggestAPIURL:  getEnv("SUGGEST_API_URL", ""),
		SuggestAPIKey:  getEnv("SUGGEST_API_KEY", ""),
		SuggestModel:   getEnv("SUGGEST_MODEL", "gpt-4o-mini"),
		SuggestTimeout: getDuration("SUGGEST_TIMEOUT", 20*time.Second),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		EnableMetrics: getEnv("ENABLE_METRICS", "true") == "true",
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.DBUrl == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters in production"))
	}
	if c.FollowUpDays <= 0 {
		errs = append(errs, fmt.Errorf("FOLLOW_UP_DAYS must be positive, got %d", c.FollowUpDays))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE %q: %w", c.Timezone, err))
	}
	if c.S3Bucket != "" && (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		errs = append(errs, errors.New("S3_ACCESS_KEY and S3_SECRET_KEY must be set together"))
	}
	if c.LockWait <= 0 || c.LockTTL <= 0 {
		errs = append(errs, errors.New("LOCK_WAIT and LOCK_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
