package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sahil1290-cm/flightinsightdashboard/internal/api"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/config"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/insights"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/market"
	"github.com/sahil1290-cm/flightinsightdashboard/internal/storage/sqlite"
	"github.com/sahil1290-cm/flightinsightdashboard/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	catalog := market.NewCatalog(cfg.Market)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := market.NewGenerator(catalog, rng, log)

	var textGenerator insights.TextGenerator
	if cfg.Insights.OpenAIAPIKey != "" {
		textGenerator = insights.NewOpenAIGenerator(
			cfg.Insights.OpenAIAPIKey,
			cfg.Insights.Model,
			time.Duration(cfg.Insights.TimeoutSeconds)*time.Second,
			log,
		)
		log.Info("external insights generation enabled", logger.String("model", cfg.Insights.Model))
	} else {
		log.Warn("OPENAI_API_KEY not set, insights will use the local rule-based strategy")
	}
	composer := insights.NewComposer(textGenerator, log)

	var searchStorage *sqlite.SearchStorage
	if cfg.Storage.Enabled {
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatal("failed to open search history database", logger.Error(err))
		}
		defer db.Close()

		searchStorage, err = sqlite.NewSearchStorage(db, log)
		if err != nil {
			log.Fatal("failed to initialize search history storage", logger.Error(err))
		}
	} else {
		log.Info("search history storage disabled")
	}

	router, err := api.NewRouter(generator, composer, searchStorage, cfg, log)
	if err != nil {
		log.Fatal("failed to create router", logger.Error(err))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		log.Info("server starting", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server crashed", logger.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Error(err))
	}
}
