package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/biblioteca-backend/internal/api"
	"github.com/baharkarakas/biblioteca-backend/internal/auth"
	"github.com/baharkarakas/biblioteca-backend/internal/config"
	"github.com/baharkarakas/biblioteca-backend/internal/db"
	"github.com/baharkarakas/biblioteca-backend/internal/logger"
	"github.com/baharkarakas/biblioteca-backend/internal/metrics"
	"github.com/baharkarakas/biblioteca-backend/internal/repository/postgres"
	"github.com/baharkarakas/biblioteca-backend/internal/services"
	"github.com/baharkarakas/biblioteca-backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}
	if cfg.Seed {
		if err := db.SeedRoles(ctx, pool); err != nil {
			log.Error("seed roles", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	userSvc := services.NewUserService(repos.Users, repos.Roles, tm)
	bookSvc := services.NewBookService(repos.Books)
	loanSvc := services.NewLoanService(repos.Txs, repos.Loans, repos.Users, repos.AuditLogs, wp)

	r := api.NewRouter(api.RouterDeps{
		Cfg:     cfg,
		TM:      tm,
		UserSvc: userSvc,
		BookSvc: bookSvc,
		LoanSvc: loanSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
