package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Danhnam1/mobile-smoking-sub000/internal/client"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/config"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/logging"
	"github.com/Danhnam1/mobile-smoking-sub000/internal/infra/redis"
)

// Simulates the mobile app's side of the checkout flow against a running
// server: start a checkout, paste the redirect URL the approval page ends on,
// and watch the interceptor and the focus reconciler resolve it.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	baseURL := flag.String("server", "http://localhost:8080", "server base URL")
	token := flag.String("token", "", "bearer token (see cmd/e2e-setup)")
	userID := flag.String("user", "e2e-user-1", "user id matching the token subject")
	flag.Parse()

	if *token == "" {
		log.Fatal("-token is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	api := client.NewAPIClient(*baseURL, *token, logger)
	store := redis.NewPendingOrderStore(redisClient)
	session := client.NewSession(*userID, api, store, logger)

	interceptor := client.NewApprovalInterceptor(session, cfg.PayPal.ReturnURL, cfg.PayPal.CancelURL, client.InterceptorEvents{
		OnResolved: func(res *client.CaptureResult) {
			fmt.Printf("resolved: membership %s active until %s (replayed=%v)\n",
				res.Membership.ID, res.Membership.ExpireDate.Format(time.RFC3339), res.Replayed)
		},
		OnCancelled: func() { fmt.Println("checkout cancelled") },
		OnError:     func(err error) { fmt.Printf("resolution error: %v\n", err) },
	}, logger)
	poller := client.NewStatusPoller(session, logger)

	// Pick the first package and start a checkout.
	pkgs, err := api.Packages(ctx)
	if err != nil {
		log.Fatalf("list packages: %v", err)
	}
	if len(pkgs) == 0 {
		log.Fatal("no packages; run cmd/seed first")
	}
	pkg := pkgs[0]
	fmt.Printf("buying %s (%d VND, %d days)\n", pkg.Name, pkg.Price, pkg.DurationDays)

	res, err := session.StartCheckout(ctx, pkg)
	if err != nil {
		log.Fatalf("start checkout: %v", err)
	}
	fmt.Printf("order %s created\napprove at: %s\n", res.OrderID, res.ApproveURL)
	fmt.Println("after approving (or cancelling), paste the final redirect URL here.")
	fmt.Println("press enter on an empty line to simulate app refocus instead.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			outcome, err := poller.OnFocus(ctx)
			if err != nil {
				fmt.Printf("reconcile error: %v\n", err)
				continue
			}
			fmt.Printf("reconcile outcome: %s\n", outcome)
			if outcome != client.ResolutionPending && outcome != client.ResolutionUnknown {
				break
			}
			continue
		}

		decision := interceptor.Observe(ctx, client.NavigationEvent{URL: line})
		fmt.Printf("navigation decision: %d\n", decision)
		if m := session.Mirror().Current(); m != nil {
			fmt.Printf("membership mirror: %s (%s)\n", m.ID, m.Status)
			break
		}
	}
}
