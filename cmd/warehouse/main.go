package main

import (
	"log"
	"os"

	"github.com/safar/go-warehouse/internal/config"
	"github.com/safar/go-warehouse/internal/console"
	"github.com/safar/go-warehouse/internal/logging"
	"github.com/safar/go-warehouse/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Init logger: %v", err)
	}

	s, err := store.New(store.OptionsFromConfig(&cfg.Seed))
	if err != nil {
		log.Fatalf("Init store: %v", err)
	}

	logger.Info("warehouse started", "products", s.Catalog.Len(), "admin", cfg.Seed.AdminLogin)

	if err := console.NewSession(s, os.Stdin, os.Stdout, logger).Run(); err != nil {
		logger.Error("console session ended", "error", err)
		os.Exit(1)
	}
}

