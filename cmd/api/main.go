package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/orders-api/internal/audit"
	"github.com/BruksfildServices01/orders-api/internal/auth"
	"github.com/BruksfildServices01/orders-api/internal/config"
	dbpkg "github.com/BruksfildServices01/orders-api/internal/db"
	infraRepo "github.com/BruksfildServices01/orders-api/internal/infra/repository"
	"github.com/BruksfildServices01/orders-api/internal/logger"
	"github.com/BruksfildServices01/orders-api/internal/routes"
	"github.com/BruksfildServices01/orders-api/internal/timezone"
	ucOrder "github.com/BruksfildServices01/orders-api/internal/usecase/order"
)

func main() {

	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	loc, err := timezone.Load(cfg.Timezone)
	if err != nil {
		logger.Log.Warn("unknown APP_TIMEZONE, using default",
			logger.String("default", timezone.DefaultTimezone),
			logger.Error(err),
		)
		loc = timezone.Location(timezone.DefaultTimezone)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Log.Fatal("database init failed", logger.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatal("database handle failed", logger.Error(err))
	}
	defer sqlDB.Close()

	issuer, err := auth.FromConfig(cfg)
	if err != nil {
		logger.Log.Fatal("jwt keys failed", logger.Error(err))
	}

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	var seq ucOrder.Sequencer
	if cfg.OrderSequence == config.SequenceRedis {
		rdb, err := dbpkg.NewRedis(context.Background(), cfg)
		if err != nil {
			logger.Log.Fatal("redis unreachable", logger.Error(err))
		}
		defer rdb.Close()

		seq = ucOrder.NewRedisSequencer(rdb)
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)
	defer auditDispatcher.Close()

	done := make(chan struct{})
	defer close(done)

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, cfg, routes.Deps{
		Orders:    infraRepo.NewOrderGormRepository(db),
		Users:     infraRepo.NewUserGormRepository(db),
		Sequencer: seq,
		Clock:     ucOrder.LocalClock{Location: loc},
		Audit:     auditDispatcher,
		Issuer:    issuer,
		Log:       logger.Log,
		AuditLogs: auditLogger,
		Ping:      sqlDB.PingContext,
		Done:      done,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Log.Info("server running",
			logger.String("addr", cfg.Addr()),
			logger.String("jwt_alg", issuer.Algorithm()),
			logger.String("order_sequence", cfg.OrderSequence),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("failed to start server", logger.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", logger.Error(err))
	}
	logger.Log.Info("server stopped")
}
