package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"fitness-app-go/pkg/logger"
)

type Config struct {
	HTTPPort    string
	Env         string
	Storage     string
	CORSOrigins []string
	WeekZone    *time.Location
	DB          DBConfig
	Redis       RedisConfig
	Auth        AuthConfig
	Uploads     UploadsConfig
	PlanCache   PlanCacheConfig
}

const (
	StoragePostgres = "postgres"
	// StorageMemory keeps everything in process, for local runs without a database.
	StorageMemory = "memory"
)

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether sessions should live in Redis instead of Postgres.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type AuthConfig struct {
	SessionTTL time.Duration
	BcryptCost int
	// LoginRatePerMin applies only when Redis is configured.
	LoginRatePerMin int
	SweepSpec       string
	SkipAuth        bool
	MockUserID      string
	MockUserEmail   string
	MockUserName    string
	MockUserAvatar  string
}

type UploadsConfig struct {
	Dir          string
	PublicPrefix string
	MaxAvatarMB  int64
}

type PlanCacheConfig struct {
	Enabled   bool
	SizeBytes int
	TTL       time.Duration
}

func Load(log logger.Logger) (Config, error) {
	if err := loadDotEnv(log); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	zoneName := getEnv("WEEK_TIMEZONE", "UTC")
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		return Config{}, fmt.Errorf("week timezone %q: %w", zoneName, err)
	}

	storage := strings.ToLower(getEnv("STORAGE_BACKEND", StoragePostgres))
	if storage != StoragePostgres && storage != StorageMemory {
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", storage)
	}

	return Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		Storage:     storage,
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:8081", "http://localhost:19006"}),
		WeekZone:    zone,
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "fitness_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			SessionTTL:      getEnvDuration("AUTH_SESSION_TTL", 7*24*time.Hour),
			BcryptCost:      getEnvInt("AUTH_BCRYPT_COST", 12),
			LoginRatePerMin: getEnvInt("AUTH_LOGIN_RATE_PER_MIN", 10),
			SweepSpec:       getEnv("AUTH_SESSION_SWEEP", "@every 1h"),
			SkipAuth:        getEnvBool("AUTH_SKIP", false),
			MockUserID:      getEnv("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			MockUserEmail:   getEnv("AUTH_MOCK_USER_EMAIL", ""),
			MockUserName:    getEnv("AUTH_MOCK_USER_NAME", ""),
			MockUserAvatar:  getEnv("AUTH_MOCK_USER_AVATAR_URL", ""),
		},
		Uploads: UploadsConfig{
			Dir:          getEnv("UPLOADS_DIR", "uploads"),
			PublicPrefix: getEnv("UPLOADS_PUBLIC_PREFIX", "/uploads"),
			MaxAvatarMB:  int64(getEnvInt("UPLOADS_MAX_AVATAR_MB", 5)),
		},
		PlanCache: PlanCacheConfig{
			Enabled:   getEnvBool("PLAN_CACHE_ENABLED", true),
			SizeBytes: getEnvInt("PLAN_CACHE_SIZE_MB", 16) * 1024 * 1024,
			TTL:       getEnvDuration("PLAN_CACHE_TTL", 5*time.Minute),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// GetDSN returns the key/value DSN used by the gorm postgres driver.
func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

// MigrationURL returns the URL form golang-migrate expects.
func (c DBConfig) MigrationURL() string {
	if strings.HasPrefix(c.DSN, "postgres://") || strings.HasPrefix(c.DSN, "postgresql://") {
		return c.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
