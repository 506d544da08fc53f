package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()

	// --- Database ---
	db, err := database.Open(cfg.Database, log, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL}, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Error("failed to close RabbitMQ client", zap.Error(err))
			}
		}()
		publisher = mqClient

		if err := mqClient.ConsumeOrderEvents(ctx, orderEventHandler(log.Named("orders"))); err != nil {
			log.Error("failed to start order consumer", zap.Error(err))
		}
	} else {
		log.Info("RABBITMQ_URL not set, order events are disabled")
	}

	app := server.New(server.Deps{Config: cfg, DB: db, Publisher: publisher, Log: log})

	// --- Start HTTP Server ---
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.App.Port), zap.String("env", cfg.App.Env))
		errCh <- app.Listen(cfg.App.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during Fiber shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}

// orderEventHandler logs every order.created event received from the order queue.
func orderEventHandler(log *zap.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var event services.OrderCreatedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode order event: %w", err)
		}
		log.Info("order created",
			zap.String("routing_key", msg.RoutingKey),
			zap.String("order_id", event.OrderID),
			zap.String("tx_ref", event.TxRef),
			zap.String("user_id", event.UserID),
			zap.String("total", event.Total),
			zap.Int("items", event.Items),
		)
		return nil
	}
}
