package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"flightboard-service/internal/config"
	"flightboard-service/internal/db"
	"flightboard-service/internal/db/repositories"
	"flightboard-service/internal/events"
	"flightboard-service/internal/logging"
	"flightboard-service/internal/metrics"
	"flightboard-service/internal/routes"
	"flightboard-service/internal/services"
)

func main() {
	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Flight board service starting up",
		"environment", cfg.AppEnv,
		"db_driver", cfg.DBDriver,
	)

	gdb, err := db.Init(cfg)
	if err != nil {
		logging.Error("Failed to connect to database", "error", err.Error())
		log.Fatalf("Failed to connect to database: %v", err)
	}
	logging.Info("Connected to database", "driver", cfg.DBDriver)

	metricsReg := metrics.NewMetricsRegistry()
	hub := events.NewHub(metricsReg)

	var relay *events.RedisRelay
	if cfg.RedisAddr != "" {
		relay = events.NewRedisRelay(cfg.RedisAddr, cfg.RedisChannel)
		if err := relay.Ping(context.Background()); err != nil {
			logging.Warn("Redis relay unreachable, events will be dropped until it recovers",
				"addr", cfg.RedisAddr, "error", err.Error())
		}
		hub.Attach(relay)
		defer relay.Close()
	}

	flightRepo := repositories.NewFlightRepository(gdb)
	flightSvc := services.NewFlightService(flightRepo, hub, metricsReg)

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, gdb, flightSvc, hub, metricsReg, upSince)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	heartbeat := events.NewHeartbeatBroadcaster(hub, cfg.HeartbeatInterval)
	g.Go(func() error {
		heartbeat.Run(ctx)
		return nil
	})

	g.Go(func() error {
		logging.Info("Server starting", "port", cfg.Port, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logging.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server exited with error", "error", err.Error())
		log.Fatalf("Server exited with error: %v", err)
	}
	logging.Info("Server stopped cleanly")
}
