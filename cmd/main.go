package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	"github.com/healthlink/dispatch_engine/internal/config"
	"github.com/healthlink/dispatch_engine/internal/directory"
	v1 "github.com/healthlink/dispatch_engine/internal/handler/http/v1"
	"github.com/healthlink/dispatch_engine/internal/handler/ws"
	"github.com/healthlink/dispatch_engine/internal/notifier"
	"github.com/healthlink/dispatch_engine/internal/repository"
	"github.com/healthlink/dispatch_engine/internal/service"
	"github.com/healthlink/dispatch_engine/internal/stream"
	"github.com/healthlink/dispatch_engine/internal/validation"
	"github.com/healthlink/dispatch_engine/pkg/logger"
	"github.com/healthlink/dispatch_engine/pkg/postgres"
	redisclient "github.com/healthlink/dispatch_engine/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/healthlink/dispatch_engine/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// storage - реализации хранилищ для выбранного драйвера
type storage struct {
	incidents  service.IncidentRepository
	offers     service.OfferRepository
	slots      service.SlotStore
	responders directory.Store
	close      func()
}

func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger, redisClient *redis.Client) (*storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		mem := repository.NewMemoryStore(cfg.IncidentCacheTTL)
		return &storage{incidents: mem, offers: mem, slots: mem, responders: mem, close: func() {}}, nil
	}

	if err := runMigrations(cfg, log); err != nil {
		return nil, err
	}
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to PostgreSQL")

	return &storage{
		incidents:  repository.NewIncidentRepository(dbpool, redisClient, cfg.IncidentCacheTTL),
		offers:     repository.NewOfferRepository(dbpool),
		slots:      repository.NewSlotStore(dbpool),
		responders: repository.NewResponderRepository(dbpool),
		close:      dbpool.Close,
	}, nil
}

// openNotifier выбирает транспорт уведомлений; для redis запускает воркер доставки
func openNotifier(ctx context.Context, cfg *config.Config, log *logrus.Logger, redisClient *redis.Client) (service.Notifier, func(), error) {
	switch cfg.NotifierBackend {
	case config.NotifierRedis:
		worker := notifier.NewDeliveryWorker(redisClient, log, cfg)
		worker.Start(ctx)
		return notifier.NewRedisNotifier(redisClient), func() {}, nil
	case config.NotifierAMQP:
		n, err := notifier.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			return nil, nil, err
		}
		return n, func() {
			if err := n.Close(); err != nil {
				log.WithError(err).Warn("Failed to close RabbitMQ connection")
			}
		}, nil
	}
	return notifier.NewLogNotifier(log), func() {}, nil
}

// @title Emergency Dispatch API
// @version 1.0
// @description Emergency reporting, responder dispatch and live location coordination.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis нужен для кеша инцидентов и очереди уведомлений
	var redisClient *redis.Client
	if cfg.StorageDriver == config.StoragePostgres || cfg.NotifierBackend == config.NotifierRedis {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisPoolSize)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	store, err := openStorage(ctx, cfg, log, redisClient)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.close()

	// Справочник исполнителей
	responderDirectory := directory.New(store.responders, log, cfg.SpeedKmh, cfg.DirectoryQueueSize)
	if err := responderDirectory.Load(ctx); err != nil {
		log.Fatalf("Failed to load responder directory: %v", err)
	}
	go responderDirectory.Run(ctx)

	notify, closeNotifier, err := openNotifier(ctx, cfg, log, redisClient)
	if err != nil {
		log.Fatalf("Failed to start %s notifier: %v", cfg.NotifierBackend, err)
	}
	defer closeNotifier()

	// Инициализация сервисов
	hub := stream.NewHub(responderDirectory, log, cfg.SpeedKmh, cfg.StreamBuffer)
	dispatcher := service.NewCoordinator(service.Dependencies{
		Incidents: store.incidents,
		Offers:    store.offers,
		Slots:     store.slots,
		Directory: responderDirectory,
		Notifier:  notify,
		Hub:       hub,
		Validator: validation.New(),
	}, log, cfg)
	responders := service.NewResponderService(responderDirectory, log)

	// Незакрытые инциденты продолжают диспетчеризацию после перезапуска
	if _, err := dispatcher.Restore(ctx); err != nil {
		log.Fatalf("Failed to restore open incidents: %v", err)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(dispatcher, responders, hub, log, cfg)
	streamHandler := ws.NewHandler(hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	streamHandler.RegisterRoutes(router)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Dispatch coordinator did not stop in time")
	}
	cancel()

	log.Info("Server gracefully stopped")
}
