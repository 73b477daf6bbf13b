package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/config"
	pg "github.com/Danhnam1/mobile-smoking-sub000/internal/infra/db/postgres"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	schemaPath := flag.String("schema", "deploy/postgres/init.sql", "path to the DDL file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema applied")

	packageRepo := pg.NewPackageRepo(pool)
	packageUC := usecase.NewPackageUseCase(packageRepo)

	// If packages already exist, do nothing
	pkgs, err := packageUC.List(ctx)
	if err != nil {
		log.Fatalf("list packages: %v", err)
	}
	if len(pkgs) > 0 {
		fmt.Printf("%d packages already present. No changes.\n", len(pkgs))
		for _, p := range pkgs {
			fmt.Printf("  - %s (days=%d, price=%d VND)\n", p.Name, p.DurationDays, p.Price)
		}
		return
	}

	seed := []struct {
		Name    string
		Price   int64
		Days    int
		Message bool
		Assign  bool
	}{
		{"Basic", 99_000, 7, false, false},
		{"Premium", 299_000, 30, true, false},
		{"Premium Plus", 799_000, 90, true, true},
	}

	for _, s := range seed {
		p, err := packageUC.Create(ctx, s.Name, s.Price, s.Days, s.Message, s.Assign)
		if err != nil {
			log.Fatalf("create package %q: %v", s.Name, err)
		}
		fmt.Printf("created package %s (%s)\n", p.Name, p.ID)
	}
}
