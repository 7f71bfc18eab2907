package learningplatform

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/taallam/learning-platform/internal/cache"
	"github.com/taallam/learning-platform/internal/config"
	"github.com/taallam/learning-platform/internal/migrations"
	"github.com/taallam/learning-platform/internal/rabbitmq"
	authservice "github.com/taallam/learning-platform/internal/services/auth"
	catalogservice "github.com/taallam/learning-platform/internal/services/catalog"
	certservice "github.com/taallam/learning-platform/internal/services/certificate"
	enrollmentservice "github.com/taallam/learning-platform/internal/services/enrollment"
	"github.com/taallam/learning-platform/internal/session"
	"github.com/taallam/learning-platform/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.Connection, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	sessions := session.New(cacheRedis, cfg.Session)
	notifier := rabbitmq.NewNotifier(ch)

	authService := authservice.New(db, logger)
	catalogService := catalogservice.New(db, cacheRedis, logger)
	enrollmentService := enrollmentservice.New(db, notifier, logger)
	certificateService := certservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, sessions, db,
		authService, catalogService, enrollmentService, certificateService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.ch.Close()
		_ = a.conn.Close()
		_ = a.db.DB.Close()
		return err
	}
}
