package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Draft store backends.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Relay point directory sources.
const (
	DirectorySeed     = "seed"
	DirectoryFile     = "file"
	DirectoryPostgres = "postgres"
)

type Config struct {
	HTTPPort string

	DraftStore string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	SQLitePath string

	DirectorySource      string
	DirectoryFile        string
	DirectoryDatabaseURL string
	DirectorySeedOnStart bool

	FixedDepartureID     string
	TrackingPrefix       string
	PaymentTimeout       time.Duration
	PaymentApprovalLimit int64
	PaymentLatency       time.Duration

	DraftExpiryAge         time.Duration
	DraftExpiryBatch       int
	DraftExpirySchedule    string
	CatalogRefreshSchedule string
}

// DSN is the PostgreSQL connection string of the draft store.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ConfigFromEnv reads the configuration through getenv, applying defaults for unset
// keys. Every malformed value is reported.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort: r.str("HTTP_PORT", "8080"),

		DraftStore: strings.ToLower(r.str("DRAFT_STORE", StoreMemory)),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", ""),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", ""),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		RedisAddr:      r.str("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  r.str("REDIS_PASSWORD", ""),
		RedisDB:        r.integer("REDIS_DB", 0),
		RedisKeyPrefix: r.str("REDIS_KEY_PREFIX", ""),

		SQLitePath: r.str("SQLITE_PATH", "pickdrop.db"),

		DirectorySource:      strings.ToLower(r.str("DIRECTORY_SOURCE", DirectorySeed)),
		DirectoryFile:        r.str("DIRECTORY_FILE", ""),
		DirectoryDatabaseURL: r.str("DIRECTORY_DATABASE_URL", ""),
		DirectorySeedOnStart: r.boolean("DIRECTORY_SEED_ON_START", false),

		FixedDepartureID:     r.str("FIXED_DEPARTURE_ID", ""),
		TrackingPrefix:       r.str("TRACKING_PREFIX", "PDL"),
		PaymentTimeout:       r.duration("PAYMENT_TIMEOUT", 30*time.Second),
		PaymentApprovalLimit: int64(r.integer("PAYMENT_APPROVAL_LIMIT", 0)),
		PaymentLatency:       r.duration("PAYMENT_LATENCY", 0),

		DraftExpiryAge:         r.duration("DRAFT_EXPIRY_AGE", 72*time.Hour),
		DraftExpiryBatch:       r.integer("DRAFT_EXPIRY_BATCH", 100),
		DraftExpirySchedule:    r.str("DRAFT_EXPIRY_SCHEDULE", ""),
		CatalogRefreshSchedule: r.str("CATALOG_REFRESH_SCHEDULE", ""),
	}

	switch cfg.DraftStore {
	case StorePostgres, StoreRedis, StoreSQLite, StoreMemory:
	default:
		r.fail("DRAFT_STORE", fmt.Errorf("unknown store %q", cfg.DraftStore))
	}
	switch cfg.DirectorySource {
	case DirectorySeed:
	case DirectoryFile:
		if cfg.DirectoryFile == "" {
			r.fail("DIRECTORY_FILE", errors.New("required when DIRECTORY_SOURCE is file"))
		}
	case DirectoryPostgres:
		if cfg.DirectoryDatabaseURL == "" {
			r.fail("DIRECTORY_DATABASE_URL", errors.New("required when DIRECTORY_SOURCE is postgres"))
		}
	default:
		r.fail("DIRECTORY_SOURCE", fmt.Errorf("unknown source %q", cfg.DirectorySource))
	}
	if cfg.PaymentTimeout <= 0 {
		r.fail("PAYMENT_TIMEOUT", errors.New("must be positive"))
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

func (r *envReader) boolean(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return d
}
