package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"weather-dashboard/config"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/events"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/scheduler"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/internal/storage"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description Current conditions and stored history for a fixed set of cities.
// @description Current readings are fetched from OpenWeatherMap and persisted on every request.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Current weather and history
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println("cannot load .env file: ", err.Error())
	}

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
		writers = append(writers, hook)
	}

	l := logger.New(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
	}, writers...)
	if hook != nil {
		hook.SetLogger(l)
	}

	store, err := storage.InitReadingStore(ctx, cnf, l)
	if err != nil {
		l.Fatal("cannot init reading store", map[string]any{"err": err.Error()})
	}

	gateway, err := repositories.InitWeatherRepository(cnf, l)
	if err != nil {
		l.Fatal("cannot init weather gateway", map[string]any{"err": err.Error()})
	}

	var publisher weather.ReadingPublisher
	var eventsPublisher *events.Publisher
	if cnf.Events.URL != "" {
		eventsPublisher, err = events.NewPublisher(cnf.Events, l)
		if err != nil {
			l.Fatal("cannot init reading events", map[string]any{"err": err.Error()})
		}
		publisher = eventsPublisher
	}

	locations := models.Locations(cnf.Weather.Locations)
	currentService := weather.NewCurrentService(gateway, store, publisher, locations, l)
	historyService := weather.NewHistoryService(store, locations, cnf.Weather.MaxHistoryDays, l)

	var collector *scheduler.Collector
	if cnf.Collector.Interval > 0 {
		collector = scheduler.New(locations, time.Duration(cnf.Collector.Interval)*time.Minute, currentService, l)
		if err := collector.Start(); err != nil {
			l.Fatal("cannot start collector", map[string]any{"err": err.Error()})
		}
	}

	app := httpserver.InitFiberServer(cnf.App.Name, cnf.Server)

	v1.NewRouter(
		app,
		currentService,
		historyService,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":     cnf.Server.Port,
		"storage":  cnf.Storage.Driver,
		"provider": gateway.Name(),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if collector != nil {
			collector.Stop()
		}
		_ = app.ShutdownWithContext(shutdownCtx)
		if eventsPublisher != nil {
			if err := eventsPublisher.Close(); err != nil {
				l.Warning("cannot close reading events", map[string]any{"err": err.Error()})
			}
		}
		if err := store.Close(shutdownCtx); err != nil {
			l.Warning("cannot close reading store", map[string]any{"err": err.Error()})
		}
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
