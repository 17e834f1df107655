// Command hydrabatchd runs the batch change intake API: it loads
// configuration, opens the SQLite-backed repositories, wires the C1-C8
// pipeline into a batchservice.Service, and serves it over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hydrabatch/hydrabatch/internal/api"
	"github.com/hydrabatch/hydrabatch/internal/batchservice"
	"github.com/hydrabatch/hydrabatch/internal/config"
	"github.com/hydrabatch/hydrabatch/internal/converter"
	"github.com/hydrabatch/hydrabatch/internal/logging"
	"github.com/hydrabatch/hydrabatch/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to JSON configuration file (or set HYDRABATCH_CONFIG)")
		dbPath     = flag.String("db", "hydrabatch.db", "Path to the SQLite database file")
		host       = flag.String("host", "", "Override the management API bind host")
		port       = flag.Int("port", 0, "Override the management API bind port")
		workers    = flag.Int("workers", 4, "Converter worker pool size")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.API.Host = *host
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
	})
	logger.Info("hydrabatch starting",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
		"db", *dbPath,
		"batch_change_limit", cfg.Batch.ChangeLimit,
	)

	db, err := store.Open(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	conv := converter.NewAsyncConverter(db.BatchChangeStore(), *workers)
	svc := batchservice.New(cfg, db.ZoneStore(), db.RecordSetStore(), db.BatchChangeStore(), conv)

	srv := api.New(cfg, svc, logger)

	go func() {
		logger.Info("api listening", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil {
			logger.Error("api server exited", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
