package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wulf-order-services/internal/admin"
	"wulf-order-services/internal/config"
	httpapi "wulf-order-services/internal/http"
	"wulf-order-services/internal/http/handlers"
	"wulf-order-services/internal/localstore"
	"wulf-order-services/internal/logger"
	"wulf-order-services/internal/metrics"
	"wulf-order-services/internal/queue"
	"wulf-order-services/internal/session"
	"wulf-order-services/internal/utils"
	"wulf-order-services/internal/ws"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	location := utils.LoadLocation(cfg.Timezone)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	backend, closeBackend := openBackend(ctx, cfg, log)
	defer closeBackend()

	var submitter queue.Submitter = queue.NewLogSubmitter(log, m)
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err == nil {
			err = queue.EnsureEventsTopology(qc)
			if err != nil {
				_ = qc.Close()
			}
		}
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq setup failed", zap.Error(err))
			}
			log.Warn("rabbitmq setup failed; submissions are only logged", zap.Error(err))
		} else {
			defer qc.Close()
			log.Info("rabbitmq enabled", zap.String("exchange", queue.EventsExchange))
			submitter = queue.NewQueueSubmitter(qc, log, m)

			if cfg.RabbitMQWorkerMode == "daemon" {
				log.Info("submission audit enabled", zap.String("mode", "daemon"), zap.String("queue", queue.AuditQueue))
				go func() {
					err := qc.ConsumeWithRetry(ctx, queue.AuditQueue, queue.AuditHandler(log), 5, 5*time.Second, log)
					if err != nil && ctx.Err() == nil {
						log.Error("consumer stopped", zap.Error(err))
					}
				}()
			} else {
				log.Info("submission audit disabled", zap.String("mode", cfg.RabbitMQWorkerMode))
			}
		}
	} else {
		log.Info("rabbitmq disabled (RABBITMQ_URL is empty)")
	}

	sessions := session.NewRegistry(session.Options{
		Backend:              backend,
		Submitter:            submitter,
		Metrics:              m,
		Logger:               log,
		Location:             location,
		PaymentDelay:         cfg.PaymentDelay,
		TokenSecret:          cfg.TrackingTokenSecret,
		TokenTTL:             cfg.TrackingTokenTTL,
		ReservationMaxTables: cfg.ReservationMaxTables,
		CashierMaxTables:     cfg.CashierMaxTables,
		IdleTTL:              cfg.SessionIdleTTL,
		MaxClients:           cfg.SessionMaxClients,
	})
	go sessions.RunSweeper(ctx, time.Minute)

	h := &handlers.Handler{
		Logger:   log,
		Config:   cfg,
		Sessions: sessions,
		Admin:    admin.NewService(admin.SampleDataset(), submitter, log),
		Location: location,
	}

	router := httpapi.NewRouter(httpapi.Options{
		Logger:   log,
		Config:   cfg,
		Handler:  h,
		WS:       ws.New(sessions, log, cfg.WSHeartbeatInterval),
		Metrics:  m,
		Gatherer: registry,
	})
	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30*time.Second + cfg.PaymentDelay,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("order api ready", zap.String("base", "/api"))
		log.Info("order ws ready", zap.String("base", "/ws"))
		log.Info("order service listening", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.StorageDriver))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	stopWorkers()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}

// openBackend picks the per-client storage. Redis and file failures fall back
// to memory outside production.
func openBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (localstore.Backend, func()) {
	noop := func() {}
	switch cfg.StorageDriver {
	case config.StorageRedis:
		store, err := localstore.NewRedis(ctx, cfg.RedisURL)
		if err == nil {
			log.Info("storage ready", zap.String("driver", config.StorageRedis))
			return store, func() { _ = store.Close() }
		}
		if cfg.Env == "production" {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		log.Warn("redis connection failed; using memory storage", zap.Error(err))
	case config.StorageFile:
		store, err := localstore.NewFile(cfg.StorageFilePath)
		if err == nil {
			log.Info("storage ready", zap.String("driver", config.StorageFile), zap.String("path", cfg.StorageFilePath))
			return store, noop
		}
		if cfg.Env == "production" {
			log.Fatal("file storage failed", zap.Error(err))
		}
		log.Warn("file storage failed; using memory storage", zap.Error(err))
	}
	return localstore.NewMemory(), noop
}
