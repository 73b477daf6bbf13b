package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/config"
	pg "github.com/Danhnam1/mobile-smoking-sub000/internal/infra/db/postgres"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/logging"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/metrics"
	paygw "github.com/Danhnam1/mobile-smoking-sub000/internal/infra/payment"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/sched"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/web"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, sandbox checks)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Repositories ----
	packageRepo := pg.NewPackageRepo(pool)
	paymentRepo := pg.NewPaymentRepo(pool)
	membershipRepo := pg.NewMembershipRepo(pool)
	transactionRepo := pg.NewTransactionRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Payment gateway ----
	gateway, err := paygw.NewPayPalGateway(ctx, cfg.PayPal)
	if err != nil {
		logger.Fatal().Err(err).Msg("paypal gateway")
	}

	// ---- Use cases ----
	checkoutUC := usecase.NewCheckoutUseCase(paymentRepo, packageRepo, membershipRepo, transactionRepo, gateway, txManager, logger)
	membershipUC := usecase.NewMembershipUseCase(membershipRepo, logger)
	packageUC := usecase.NewPackageUseCase(packageRepo)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	srv := web.NewServer(checkoutUC, membershipUC, packageUC, auth, logger)
	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Expiry worker ----
	worker := sched.NewExpiryWorker(cfg.Worker.ExpiryInterval, membershipUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
