package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Gunvolt24/notifier/config"
	cachemem "github.com/Gunvolt24/notifier/internal/cache/memory"
	"github.com/Gunvolt24/notifier/internal/kafka"
	"github.com/Gunvolt24/notifier/internal/ports"
	"github.com/Gunvolt24/notifier/internal/repo/postgres"
	rest "github.com/Gunvolt24/notifier/internal/transport/http"
	"github.com/Gunvolt24/notifier/internal/usecase"
	"github.com/Gunvolt24/notifier/pkg/logger"
	"github.com/Gunvolt24/notifier/pkg/metrics"
	"github.com/Gunvolt24/notifier/pkg/telemetry"
	"github.com/Gunvolt24/notifier/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, консьюмеры проекций).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмеры проекций
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// projectionSpec — настройки консьюмера одной проекции.
type projectionSpec struct {
	enabled         bool
	groupID         string
	seekToBeginning bool
	replay          bool
	projection      usecase.Projection
}

// consumerConfig — общая часть конфигурации консьюмера плюс настройки проекции.
func consumerConfig(cfg *config.Config, spec projectionSpec, logg *logger.ZapLogger) *kafka.ConsumerConfig {
	return &kafka.ConsumerConfig{
		Brokers:            cfg.Kafka.Brokers,
		Topic:              cfg.Kafka.Topic,
		GroupID:            spec.groupID,
		SeekToBeginning:    spec.seekToBeginning,
		ReplayPeriodically: spec.replay,
		Leaps:              kafka.NewLeapSchedule(cfg.IsProd(), cfg.Kafka.BigLeap, cfg.Kafka.SmallLeap),
		PollTimeout:        cfg.Kafka.PollTimeout,
		ProcessTimeout:     cfg.Kafka.ProcessTimeout,
		MaxBackoff:         cfg.Kafka.MaxBackoff,
		Properties:         cfg.Kafka.Properties,
		ZapLogger:          logg.Base(),
		Tracing:            cfg.Tracing.Enabled,
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Миграции до открытия пула: проекции пишут в уже существующие таблицы.
	if cfg.Postgres.Migrate {
		n, mErr := postgres.Migrate(ctx, cfg.Postgres.DSN)
		if mErr != nil {
			closeLogger()
			return nil, func() {}, mErr
		}
		logg.Infof(ctx, "migrations applied count=%d", n)
	}

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Environment: cfg.Env,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка зависимостей доменного слоя.
	orgCache := cachemem.NewOrgCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	inboxRepo := postgres.NewInboxRepository(pool)
	statsRepo := postgres.NewStatisticsRepository(pool)
	exportRepo := postgres.NewExportRepository(pool)
	validator := validate.NewEventValidator()
	inboxService := usecase.NewInboxService(inboxRepo, orgCache, logg)

	if cfg.Projections.StatisticsEnabled {
		collector := usecase.NewStatisticsCollector(statsRepo, logg, 5*time.Second)
		if rErr := prometheus.Register(collector); rErr != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(rErr, &already) {
				logg.Warnf(ctx, "register statistics collector: %v", rErr)
			}
		}
	}

	// По одной группе консьюмеров на каждую проекцию.
	specs := []projectionSpec{
		{
			enabled:         cfg.Projections.InboxEnabled,
			groupID:         cfg.Projections.InboxGroupID,
			seekToBeginning: cfg.Projections.InboxSeekToBeginning,
			replay:          cfg.Projections.InboxReplayPeriodically,
			projection:      usecase.NewInboxProjection(inboxRepo, orgCache, logg),
		},
		{
			enabled:         cfg.Projections.StatisticsEnabled,
			groupID:         cfg.Projections.StatisticsGroupID,
			seekToBeginning: cfg.Projections.StatisticsSeekToBeginning,
			replay:          cfg.Projections.StatisticsReplayPeriodically,
			projection:      usecase.NewStatisticsProjection(statsRepo),
		},
		{
			enabled:         cfg.Projections.ExportEnabled,
			groupID:         cfg.Projections.ExportGroupID,
			seekToBeginning: cfg.Projections.ExportSeekToBeginning,
			replay:          cfg.Projections.ExportReplayPeriodically,
			projection:      usecase.NewExportProjection(exportRepo),
		},
	}

	var list []ProjectionConsumer
	closeConsumers := func() {
		for _, c := range list {
			if cErr := c.Close(); cErr != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", cErr)
			}
		}
	}
	for _, spec := range specs {
		if !spec.enabled {
			logg.Infof(ctx, "projection disabled name=%s", spec.projection.Name())
			continue
		}
		projector := usecase.NewProjector(spec.projection, validator, logg)
		consumer, cErr := kafka.NewConsumer(consumerConfig(cfg, spec, logg), projector.Handler(), logg)
		if cErr != nil {
			closeConsumers()
			pool.Close()
			_ = shutdownTrace(context.Background())
			closeLogger()
			return nil, func() {}, cErr
		}
		list = append(list, consumer)
	}
	consumers := NewConsumers(list...)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(inboxService, consumers, logg, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   consumers,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := consumers.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}

		pool.Close()
		closeLogger()
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмеров; ждёт отмены контекста или ошибки и останавливает их.
// Фатальная ошибка консьюмера (poll/commit) возвращается вызывающему после остановки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмеров.
	go func() {
		a.Logger.Infof(ctx, "kafka consumers starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Errorf(ctx, "background error: %v", err)
			runErr = err
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка консьюмеров
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return runErr
}
