package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "campsite"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = ""
	DefaultCacheTTL  = 5 * time.Minute

	DefaultKafkaEventsTopic = ""

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultCampsiteCapacity = 10
	DefaultCampsiteTimeZone = "UTC"

	DefaultMaxLengthOfStay     = 3
	DefaultBookingMinDaysAhead = 1
	DefaultBookingMaxDaysAhead = 30

	DefaultLockTimeout     = 3 * time.Second
	DefaultLockMaxAttempts = 3
	DefaultLockBackoffBase = 100 * time.Millisecond
	DefaultLockTTL         = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
