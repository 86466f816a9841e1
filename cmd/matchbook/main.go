package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/matchbook/internal/app/engine"
	"github.com/muhammadchandra19/matchbook/internal/app/inspect"
	eventv1 "github.com/muhammadchandra19/matchbook/internal/domain/event/v1"
	orderbookv1 "github.com/muhammadchandra19/matchbook/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/matchbook/internal/infrastructure/postgresql/journal"
	commandreader "github.com/muhammadchandra19/matchbook/internal/usecase/command-reader"
	eventpublisher "github.com/muhammadchandra19/matchbook/internal/usecase/event-publisher"
	"github.com/muhammadchandra19/matchbook/internal/usecase/listener"
	"github.com/muhammadchandra19/matchbook/internal/usecase/orderbook"
	"github.com/muhammadchandra19/matchbook/internal/usecase/snapshot"
	"github.com/muhammadchandra19/matchbook/pkg/config"
	"github.com/muhammadchandra19/matchbook/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/matchbook/pkg/logger"
	"github.com/muhammadchandra19/matchbook/pkg/postgresql"
	"github.com/muhammadchandra19/matchbook/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.ParseLevel(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	defer func() {
		_ = log.Sync()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	rclient := redis.NewClient(log, &cfg.Redis)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.NewField("action", "connect_redis"))
		if !rclient.Reconnect(ctx) {
			return
		}
	}
	defer func() {
		if err := rclient.Disconnect(context.Background()); err != nil {
			log.Error(err, logger.NewField("action", "disconnect_redis"))
		}
	}()

	health := healthcheck.HealthCheck{
		Checks: map[string]healthcheck.Checker{
			"redis": rclient.Ping,
		},
		Timeout: cfg.HTTPConfig.ReadHeaderTimeout,
	}

	var publishers eventpublisher.Multi

	if cfg.PublisherConfig.Enabled {
		writer := eventpublisher.NewKafkaWriter(cfg.PublisherBrokers(), cfg.PublisherConfig.Topic, cfg.PublisherConfig.BatchTimeout)
		publisher := eventpublisher.NewPublisher(writer, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error(err, logger.NewField("action", "close_publisher"))
			}
		}()
		publishers = append(publishers, publisher)
	}

	if cfg.Postgres.Enabled {
		pg, err := postgresql.NewClient(ctx, cfg.Postgres.Config)
		if err != nil {
			log.Error(err, logger.NewField("action", "connect_postgres"))
			return
		}
		defer pg.Close()

		j := journal.NewRepository(pg, log)
		if err := j.EnsureSchema(ctx); err != nil {
			log.Error(err, logger.NewField("action", "ensure_journal_schema"))
			return
		}
		if seq, err := j.LastSequence(ctx, cfg.Pair); err != nil {
			log.Error(err, logger.NewField("action", "journal_last_sequence"))
		} else {
			log.Info("Journal opened", logger.NewField("lastSequence", seq))
		}

		health.Checks["postgres"] = pg.Ping
		publishers = append(publishers, j)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := listener.NewMetrics(registry, cfg.Pair)

	options := engine.OptionsFromConfig(cfg.EngineConfig)
	options.Observer = metrics
	options.Listeners = []orderbookv1.Listener{metrics, listener.NewLogging(log, cfg.Pair)}

	var publisher eventv1.Publisher
	if len(publishers) > 0 {
		publisher = publishers
	}

	// Initialize components
	ob := orderbook.NewOrderbook(nil)
	reader := commandreader.NewReader(cfg.KafkaConfig, log)
	snapshotStore := snapshot.NewSnapshotStore(rclient, cfg.Redis.PrefixKey, cfg.Pair, cfg.Redis.SnapshotTTL, log)

	eng, err := engine.NewEngineWithOptions(ob, reader, snapshotStore, publisher, log, cfg, options)
	if err != nil {
		log.Error(err, logger.NewField("action", "restore_snapshot"))
		return
	}

	if err := eng.Start(ctx); err != nil {
		log.Error(err, logger.NewField("action", "start_engine"))
		return
	}

	gin.SetMode(gin.ReleaseMode)
	server := inspect.NewServer(cfg.HTTPConfig, cfg.Pair, eng, registry, health, log)
	go func() {
		if err := server.Start(); err != nil {
			log.Error(err, logger.NewField("action", "start_inspect_server"))
			sigChan <- syscall.SIGTERM
		}
	}()

	log.Info("Matchbook started successfully")

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.NewField("signal", sig.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.EngineConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_inspect_server"))
	}

	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "stop_engine"))
	}

	log.Info("Matchbook shutdown complete")
}
