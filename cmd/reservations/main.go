package main

import (
	"context"

	"campsite/internal/reservations/events"
	"campsite/internal/reservations/handler"
	"campsite/internal/reservations/repository"
	"campsite/internal/reservations/rules"
	"campsite/internal/reservations/service"
	"campsite/internal/reservations/validator"
	"campsite/pkg/app"
	"campsite/pkg/cache"
	"campsite/pkg/clock"
	"campsite/pkg/config"
	"campsite/pkg/kafka"
	kafkaconfig "campsite/pkg/kafka/config"
	"campsite/pkg/lock"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	cfg.SetMongo()
	if cfg.RedisAddr != "" {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")
	reservationService, closeProducer := initServices(cfg)
	defer closeProducer()

	reservationHandler := handler.NewReservationHandler(
		reservationService,
		validator.NewReservationValidator(cfg.Log),
		clock.NewSystem(cfg.Location()),
		cfg.Log,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(reservationHandler)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.ReservationService, func()) {
	repo := repository.NewMongoReservationRepository(cfg)

	lockStore := lock.NewMongoStore(cfg.Client.Mongo.Database(cfg.MongoDatabaseName))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
	defer cancel()
	if err := lockStore.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure lock indexes", "error", err)
	}

	lockManager := lock.NewManager(lockStore, lock.Options{
		MaxAttempts: cfg.LockMaxAttempts,
		BackoffBase: cfg.LockBackoffBase,
		TTL:         cfg.LockTTL,
	}, cfg.Log)

	var availabilityCache cache.AvailabilityCache
	if cfg.RedisAddr != "" {
		availabilityCache = cache.NewRedisCache(cfg.Client.Redis, cfg.CacheTTL, cfg.Log)
		cfg.Log.Info("Using Redis availability cache", "addr", cfg.RedisAddr)
	} else {
		availabilityCache = cache.NewMemoryCache()
		cfg.Log.Info("Using in-memory availability cache")
	}

	publisher, closeProducer := initPublisher(cfg)

	clk := clock.NewSystem(cfg.Location())
	pipeline := rules.NewPipeline(
		rules.MaxLengthOfStayRule{MaxNights: cfg.MaxLengthOfStay},
		rules.BookingWindowRule{
			Clock:        clk,
			MinDaysAhead: cfg.BookingMinDaysAhead,
			MaxDaysAhead: cfg.BookingMaxDaysAhead,
		},
	)

	reservationService := service.NewReservationService(
		repo,
		lockManager,
		availabilityCache,
		pipeline,
		publisher,
		clk,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService, closeProducer
}

func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.KafkaEventsTopic == "" {
		cfg.Log.Info("Kafka events disabled, no topic configured")
		return events.NoopPublisher{}, func() {}
	}

	producer, err := kafka.NewProducer(kafkaconfig.Load(), cfg.KafkaEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	closeProducer := func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
	return events.NewKafkaPublisher(producer, cfg.Log), closeProducer
}
