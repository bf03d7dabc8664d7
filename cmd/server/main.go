package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/config"
	"github.com/mamadbah2/loombook/internal/repository"
	"github.com/mamadbah2/loombook/internal/repository/memory"
	"github.com/mamadbah2/loombook/internal/repository/mongodb"
	"github.com/mamadbah2/loombook/internal/repository/sheets"
	"github.com/mamadbah2/loombook/internal/scheduler"
	"github.com/mamadbah2/loombook/internal/server/handlers"
	"github.com/mamadbah2/loombook/internal/server/router"
	"github.com/mamadbah2/loombook/internal/service/audit"
	"github.com/mamadbah2/loombook/internal/service/ledger"
	"github.com/mamadbah2/loombook/internal/service/notify"
	reportingsvc "github.com/mamadbah2/loombook/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/loombook/pkg/clients/whatsapp"
	"github.com/mamadbah2/loombook/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore := openStore(cfg, baseLogger)
	defer closeStore()

	loc, err := cfg.Alerts.Location()
	if err != nil {
		baseLogger.Fatal("failed to load timezone", zap.Error(err))
	}

	auditLogger := audit.NewLogger(store.AuditLogs, time.Now, baseLogger.Named("svc.audit"))
	ledgerSvc := ledger.NewService(store, auditLogger, baseLogger.Named("svc.ledger"), ledger.WithLocation(loc))

	if cfg.Store.SeedDemo {
		if _, err := ledgerSvc.Seed(context.Background()); err != nil {
			baseLogger.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		googleRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = googleRepo
	} else {
		baseLogger.Warn("google sheets not configured, sheet export disabled")
	}
	reportingSvc := reportingsvc.NewService(sheetsRepo, baseLogger.Named("svc.reporting"))

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		notifySvc := notify.NewService(whatsClient, cfg.WhatsApp.ManagerID, baseLogger.Named("svc.notify"))

		sched, err := scheduler.NewScheduler(cfg.Alerts, ledgerSvc, notifySvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	} else {
		baseLogger.Warn("whatsapp token missing, alert digest disabled")
	}

	handler := handlers.NewHandler(ledgerSvc, auditLogger, reportingSvc, baseLogger.Named("handlers.api"))
	engine := router.New(handler, cfg.Server.AllowedOrigins, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore picks the ledger backend and returns its close function.
func openStore(cfg *config.Config, log *zap.Logger) (repository.Ledger, func()) {
	if cfg.Store.Driver != config.StoreMongo {
		log.Warn("using in-memory store, data is lost on restart")
		return memory.New(), func() {}
	}

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		log.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	return mongoRepo.Ledger(), func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			log.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}
