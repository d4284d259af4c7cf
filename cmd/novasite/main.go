package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appavailability "github.com/dev-master21/nova-site-sub000/internal/app/availability"
	"github.com/dev-master21/nova-site-sub000/internal/domain/calendar"
	"github.com/dev-master21/nova-site-sub000/internal/infra/broker/kafka"
	"github.com/dev-master21/nova-site-sub000/internal/infra/clients"
	"github.com/dev-master21/nova-site-sub000/internal/infra/config"
	mongostore "github.com/dev-master21/nova-site-sub000/internal/infra/db/mongo"
	ginserver "github.com/dev-master21/nova-site-sub000/internal/infra/http/gin"
	"github.com/dev-master21/nova-site-sub000/internal/infra/obs"
	"github.com/dev-master21/nova-site-sub000/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StorageMode = "memory"
		cfg.CollaboratorTimeout = 10 * time.Second
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	stores, ready, err := buildStores(ctx, cfg)
	if err != nil {
		logger.Error("storage init failed", "error", err, "mode", cfg.StorageMode)
		os.Exit(1)
	}
	logger.Info("storage initialized", "mode", cfg.StorageMode)

	httpClient := &http.Client{Timeout: cfg.CollaboratorTimeout}
	service := &appavailability.Service{
		Blocked:  stores.blocked,
		Bookings: stores.bookings,
		Clock:    calendar.Clock{},
		Logger:   logger,
	}
	orchestrator := &appavailability.Orchestrator{
		Search: &clients.PropertySearchClient{
			Client:   httpClient,
			Endpoint: cfg.PropertySearchURL,
			Logger:   logger,
		},
		Service: service,
		Pricing: &clients.PricingClient{
			Client:   httpClient,
			Endpoint: cfg.PricingURL,
			Logger:   logger,
		},
		Logger: logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: ready,
	}, ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{
			Service:      service,
			Orchestrator: orchestrator,
			Pricing:      orchestrator.Pricing,
			DefaultLimit: cfg.DefaultSlotLimit,
		},
		Admin: ginserver.AdminHandler{
			Blocked:  stores.blocked,
			Bookings: stores.bookings,
		},
	})

	if len(cfg.KafkaBrokers) > 0 {
		go runConsumer(ctx, cfg, stores, logger)
	} else {
		logger.Info("kafka consumer disabled, no brokers configured")
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type storeSet struct {
	blocked  appavailability.BlockedStore
	bookings bookingStore
}

// bookingStore joins the read side used by the service with the write side
// the kafka handler maintains.
type bookingStore interface {
	appavailability.BookingStore
	kafka.BookingMirror
}

func buildStores(ctx context.Context, cfg config.Config) (storeSet, func() error, error) {
	if cfg.StorageMode == "memory" {
		return storeSet{
			blocked:  memory.NewBlockedDateStore(),
			bookings: memory.NewBookingMirrorStore(),
		}, nil, nil
	}

	client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return storeSet{}, nil, err
	}
	ready := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}
	return storeSet{
		blocked:  mongostore.NewBlockedDateRepository(client.DB),
		bookings: mongostore.NewBookingMirrorRepository(client.DB),
	}, ready, nil
}

func runConsumer(ctx context.Context, cfg config.Config, stores storeSet, logger *slog.Logger) {
	handler := &kafka.SyncHandler{
		BookingTopic:  cfg.BookingEventsTopic,
		CalendarTopic: cfg.CalendarSyncTopic,
		Mirror:        stores.bookings,
		Blocked:       stores.blocked,
		Logger:        logger,
	}
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, nil, handler)
	if err != nil {
		logger.Error("kafka consumer init failed", "error", err)
		return
	}
	defer consumer.Close()

	topics := []string{cfg.BookingEventsTopic, cfg.CalendarSyncTopic}
	logger.Info("kafka consumer starting", "topics", topics, "group", cfg.KafkaGroupID)
	if err := consumer.Run(ctx, topics); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("kafka consumer stopped", "error", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
