package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"campsite/pkg/client"
	"campsite/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	KafkaEventsTopic string

	Port string

	CampsiteCapacity int
	CampsiteTimeZone string

	MaxLengthOfStay     int
	BookingMinDaysAhead int
	BookingMaxDaysAhead int

	LockTimeout     time.Duration
	LockMaxAttempts int
	LockBackoffBase time.Duration
	LockTTL         time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RedisAddr:     getEnvStr(EnvRedisAddr, DefaultRedisAddr),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		CacheTTL:      getEnvDuration(EnvCacheTTL, DefaultCacheTTL),

		KafkaEventsTopic: getEnvStr(EnvKafkaEventsTopic, DefaultKafkaEventsTopic),

		Port: getEnvStr(EnvPort, DefaultPort),

		CampsiteCapacity: getEnvNum(EnvCampsiteCapacity, DefaultCampsiteCapacity),
		CampsiteTimeZone: getEnvStr(EnvCampsiteTimeZone, DefaultCampsiteTimeZone),

		MaxLengthOfStay:     getEnvNum(EnvMaxLengthOfStay, DefaultMaxLengthOfStay),
		BookingMinDaysAhead: getEnvNum(EnvBookingMinDaysAhead, DefaultBookingMinDaysAhead),
		BookingMaxDaysAhead: getEnvNum(EnvBookingMaxDaysAhead, DefaultBookingMaxDaysAhead),

		LockTimeout:     getEnvDuration(EnvLockTimeout, DefaultLockTimeout),
		LockMaxAttempts: getEnvNum(EnvLockMaxAttempts, DefaultLockMaxAttempts),
		LockBackoffBase: getEnvDuration(EnvLockBackoffBase, DefaultLockBackoffBase),
		LockTTL:         getEnvDuration(EnvLockTTL, DefaultLockTTL),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.FormatJSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.New(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetRedis() {
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword)
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		problems = append(problems, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		problems = append(problems, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		problems = append(problems, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.CampsiteCapacity <= 0 {
		problems = append(problems, fmt.Sprintf("CampsiteCapacity must be positive, got: %d", cfg.CampsiteCapacity))
	}
	if _, err := time.LoadLocation(cfg.CampsiteTimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("CampsiteTimeZone is not a valid IANA zone: %s", cfg.CampsiteTimeZone))
	}

	if cfg.MaxLengthOfStay <= 0 {
		problems = append(problems, fmt.Sprintf("MaxLengthOfStay must be positive, got: %d", cfg.MaxLengthOfStay))
	}
	if cfg.BookingMinDaysAhead < 0 {
		problems = append(problems, fmt.Sprintf("BookingMinDaysAhead cannot be negative, got: %d", cfg.BookingMinDaysAhead))
	}
	if cfg.BookingMaxDaysAhead < cfg.BookingMinDaysAhead {
		problems = append(problems, fmt.Sprintf("BookingMaxDaysAhead (%d) must be >= BookingMinDaysAhead (%d)", cfg.BookingMaxDaysAhead, cfg.BookingMinDaysAhead))
	}

	if cfg.LockTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("LockTimeout must be positive, got: %s", cfg.LockTimeout))
	}
	if cfg.LockMaxAttempts <= 0 {
		problems = append(problems, fmt.Sprintf("LockMaxAttempts must be positive, got: %d", cfg.LockMaxAttempts))
	}
	if cfg.LockBackoffBase <= 0 {
		problems = append(problems, fmt.Sprintf("LockBackoffBase must be positive, got: %s", cfg.LockBackoffBase))
	}
	if cfg.LockTTL <= cfg.LockTimeout {
		problems = append(problems, fmt.Sprintf("LockTTL (%s) must exceed LockTimeout (%s) so a live holder never expires mid-operation", cfg.LockTTL, cfg.LockTimeout))
	}

	if cfg.CacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("CacheTTL must be positive, got: %s", cfg.CacheTTL))
	}

	if cfg.RateLimitRequests <= 0 {
		problems = append(problems, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		problems = append(problems, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		problems = append(problems, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// Location resolves the campsite time zone. Validate has already checked it,
// so failures here are impossible after Load.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.CampsiteTimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"redis_addr", cfg.RedisAddr,
		"cache_ttl", cfg.CacheTTL,
		"kafka_events_topic", cfg.KafkaEventsTopic,
		"port", cfg.Port,
		"campsite_capacity", cfg.CampsiteCapacity,
		"campsite_time_zone", cfg.CampsiteTimeZone,
		"max_length_of_stay", cfg.MaxLengthOfStay,
		"booking_min_days_ahead", cfg.BookingMinDaysAhead,
		"booking_max_days_ahead", cfg.BookingMaxDaysAhead,
		"lock_timeout", cfg.LockTimeout,
		"lock_max_attempts", cfg.LockMaxAttempts,
		"lock_backoff_base", cfg.LockBackoffBase,
		"lock_ttl", cfg.LockTTL,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
