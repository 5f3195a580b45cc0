package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/api/rest"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/backend/v1"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/logger"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/infile"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/inmemory"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/inpsql"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// add a waiting group for the journal storage goroutines
	wg := &sync.WaitGroup{}
	// get configuration
	cfg := config.NewDefaultConfiguration()
	if err := cfg.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	zapLog, err := logger.NewZapLog(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLog.Sync() }()
	zapLog.Info("starting dashboard",
		zap.String("version", buildVersion),
		zap.String("date", buildDate),
		zap.String("commit", buildCommit),
		zap.String("address", cfg.ServerAddress),
		zap.String("backend", cfg.BackendURL),
	)
	// initialize (or retrieve if present) the journal, switch between "inpsql", "infile" and "inmemory" modules
	var journal storage.AuditStorage
	switch {
	case cfg.DatabaseDSN != "":
		journal, err = inpsql.InitStorage(ctx, wg, cfg, zapLog)
	case cfg.FileStoragePath != "":
		journal, err = infile.InitStorage(ctx, wg, cfg, zapLog)
	default:
		journal = inmemory.InitStorage(zapLog)
	}
	if err != nil {
		zapLog.Fatal("journal storage initialization failed", zap.Error(err))
	}
	api, err := backend.InitClient(cfg)
	if err != nil {
		zapLog.Fatal("backend client initialization failed", zap.Error(err))
	}
	// initialize server
	server, err := rest.InitServer(ctx, cfg, api, journal, zapLog)
	if err != nil {
		zapLog.Fatal("server initialization failed", zap.Error(err))
	}
	// set a listener for os.Signal
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-done
		zapLog.Info("server shutdown attempted")
		ctxTO, cancelTO := context.WithTimeout(ctx, 5*time.Second)
		defer cancelTO()
		if err := server.Shutdown(ctxTO); err != nil {
			zapLog.Error("server shutdown failed", zap.Error(err))
		}
		cancel()
	}()
	// start up the server
	zapLog.Info("server start attempted")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLog.Fatal("server failed", zap.Error(err))
	}
	// wait for the journal goroutines to close their resources before exiting
	wg.Wait()
	zapLog.Info("server shutdown succeeded")
}
