package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/corazor/contact-service/internal/config"
	"github.com/corazor/contact-service/internal/healthcheck"
	"github.com/corazor/contact-service/internal/observability"
)

// healthcheck pings the deployed site once and exits non-zero unless it is
// healthy. Meant to be run from cron.
func main() {
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	pinger := healthcheck.NewPinger(cfg.Site.URL, *timeout, logger)
	res := pinger.Check(context.Background())

	_ = json.NewEncoder(os.Stdout).Encode(res)
	if res.Status != healthcheck.StatusHealthy {
		_ = logger.Sync()
		os.Exit(1)
	}
}
