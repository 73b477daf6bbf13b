package main

import (
	"context"
	"flag"
	"log"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/config"
	pg "github.com/Danhnam1/mobile-smoking-sub000/internal/infra/db/postgres"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/redis"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/web"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/usecase"
)

// This script sets up a clean, predictable state for manual end-to-end
// testing of the checkout flow against the PayPal sandbox.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	userID := flag.String("user", "e2e-user-1", "user id to mint a token for")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 5)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer redisClient.Close()

	log.Println("--- Starting E2E Environment Setup ---")

	// 1. Clean the Redis cache to remove stale pending order records.
	log.Println("[1/3] Wiping Redis cache...")
	if err := redisClient.FlushDB(ctx); err != nil {
		log.Fatalf("failed to flush redis: %v", err)
	}

	// 2. Clean the payment and membership tables; packages stay.
	log.Println("[2/3] Wiping payment state...")
	_, err = pool.Exec(ctx, `TRUNCATE transactions, user_memberships, payments;`)
	if err != nil {
		log.Fatalf("failed to truncate tables: %v", err)
	}

	// 3. Make sure at least one purchasable package exists.
	log.Println("[3/3] Ensuring a test package exists...")
	packageUC := usecase.NewPackageUseCase(pg.NewPackageRepo(pool))
	pkgs, err := packageUC.List(ctx)
	if err != nil {
		log.Fatalf("list packages: %v", err)
	}
	if len(pkgs) == 0 {
		p, err := packageUC.Create(ctx, "Premium", 299_000, 30, true, false)
		if err != nil {
			log.Fatalf("create package: %v", err)
		}
		log.Printf("created package %s (%s)", p.Name, p.ID)
	}

	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	token, err := auth.Mint(*userID)
	if err != nil {
		log.Fatalf("mint token: %v", err)
	}

	log.Println("--- E2E Environment Setup Complete ---")
	log.Printf("user: %s", *userID)
	log.Printf("bearer token: %s", token)
}
