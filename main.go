package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/kotrzina/gas-wizard/pkg/config"
	"github.com/kotrzina/gas-wizard/pkg/gwgp"
	"github.com/kotrzina/gas-wizard/pkg/hook"
	"github.com/kotrzina/gas-wizard/pkg/prometheus"
	"github.com/kotrzina/gas-wizard/pkg/store"
	"github.com/kotrzina/gas-wizard/pkg/wa"
)

func main() {
	// for development purposes
	// we don't care about errors here
	_ = godotenv.Load(".env")
	conf := config.NewConfig()

	c := context.Background()
	ctx, cancel := context.WithCancel(c)

	logger := createLogger(conf)
	mon := prometheus.New()
	storage := createStorage(ctx, conf, logger)

	selector, err := gwgp.NewSelector(conf.ParserBackend)
	if err != nil {
		logger.Fatalf("could not create selector: %v", err)
	}

	scraper := gwgp.NewScraper(
		conf.SourceURL,
		gwgp.NewFetcher(),
		gwgp.NewExtractor(selector, gwgp.DefaultPatterns),
		mon,
		logger,
	)

	// prices are loaded once and kept for the whole process lifetime
	snapshot, err := scraper.Scrape(ctx)
	if err != nil {
		logger.Errorf("could not load prices, running without price data: %v", err)
		addEvent(storage, logger, fmt.Sprintf("scrape failed: %v", err))
	} else {
		addEvent(storage, logger, fmt.Sprintf("scraped %d cities: %s", snapshot.Len(), snapshot.DateInfo()))
		announce(conf, snapshot, logger)
	}

	if conf.WhatsAppEnabled {
		client := wa.New(ctx, conf, logger)
		defer client.Close()
		hook.NewBot(client, snapshot, storage, conf, mon, logger)
		if err := client.Connect(); err != nil {
			logger.Fatalf("could not connect to WhatsApp: %v", err)
		}
	}

	StartServer(NewRouter(&HandlerRepository{
		snapshot: snapshot,
		storage:  storage,
		config:   conf,
		monitor:  mon,
		logger:   logger,
	}), conf.HTTPPort, cancel, logger)
}

func createLogger(conf *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	if conf.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

func createStorage(ctx context.Context, conf *config.Config, logger *logrus.Logger) store.Storage {
	switch conf.Store {
	case "redis":
		return store.NewRedisStore(conf)
	case "postgres":
		storage, err := store.NewPostgresStore(ctx, conf.DBString)
		if err != nil {
			logger.Fatalf("could not create postgres storage: %v", err)
		}
		return storage
	case "memory":
		return store.NewFakeStore()
	default:
		logger.Fatalf("unknown storage %q", conf.Store)
		return nil
	}
}

func addEvent(storage store.Storage, logger *logrus.Logger, event string) {
	if err := storage.AddEvent(event); err != nil {
		logger.Errorf("could not store event: %v", err)
	}
}

func announce(conf *config.Config, snapshot *gwgp.Snapshot, logger *logrus.Logger) {
	if conf.DiscordHook == "" {
		return
	}

	if err := hook.NewDiscord(conf.DiscordHook).SendSnapshot(snapshot); err != nil {
		logger.Errorf("could not announce prices: %v", err)
	}
}
