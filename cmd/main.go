package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "plant_monitor/docs"
	"plant_monitor/internal/config"
	"plant_monitor/internal/handlers"
	"plant_monitor/internal/logger"
	"plant_monitor/internal/metrics"
	"plant_monitor/internal/repository"
	"plant_monitor/internal/repository/db"
	"plant_monitor/internal/repository/seed"
	"plant_monitor/internal/server"
	"plant_monitor/internal/service"
)

const shutdownGrace = 10 * time.Second

// @title                       Plant Monitor API
// @version                     1.0
// @description                 Simulated manufacturing plant dashboard: KPIs, machines, alarms, exports.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	data, err := seed.FromFile(cfg.Seed.Path)
	if err != nil {
		log.Fatalw("failed to load seed", "err", err, "path", cfg.Seed.Path)
	}

	// wire dependencies
	m := metrics.New()
	repos := repository.NewRepository(sqlDB, data)
	services := service.NewService(repos, m, log, service.Options{
		SigningKey:      cfg.Auth.SigningKey,
		TokenTTL:        cfg.Auth.TokenTTL,
		KPIInterval:     cfg.Telemetry.KPIInterval,
		MachineInterval: cfg.Telemetry.MachineInterval,
		AckDelay:        cfg.Alarms.AckDelay,
		DefaultUser:     cfg.Alarms.DefaultUser,
		AnomalyKeep:     cfg.Anomalies.Keep,
	})
	apiHandler := handlers.NewHandler(services, log, m)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if st, err := services.Alarms.Stats(ctx); err == nil {
		m.SetActiveAlarms(st.Active)
	}

	services.Telemetry.Start(ctx)
	go services.Anomalies.Run(ctx, cfg.Anomalies.Interval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, server.WithCORS(apiHandler.InitRoutes(), cfg.CORS.AllowedOrigins), log)
	log.Infow("plant_monitor_started", "port", cfg.Port, "db", cfg.DB.Path, "kpi_interval", cfg.Telemetry.KPIInterval)

	// graceful shutdown
	waitForShutdown(cancel, services.Telemetry, srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler http.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, telemetry service.Telemetry, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()
	telemetry.Stop()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
