package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvCacheTTL      = "CACHE_TTL"

	EnvKafkaEventsTopic = "KAFKA_EVENTS_TOPIC"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvCampsiteCapacity = "CAMPSITE_CAPACITY"
	EnvCampsiteTimeZone = "CAMPSITE_TIME_ZONE"

	EnvMaxLengthOfStay     = "MAX_LENGTH_OF_STAY"
	EnvBookingMinDaysAhead = "BOOKING_MIN_DAYS_AHEAD"
	EnvBookingMaxDaysAhead = "BOOKING_MAX_DAYS_AHEAD"

	EnvLockTimeout     = "LOCK_TIMEOUT"
	EnvLockMaxAttempts = "LOCK_MAX_ATTEMPTS"
	EnvLockBackoffBase = "LOCK_BACKOFF_BASE"
	EnvLockTTL         = "LOCK_TTL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
