package main

import (
	"context"
	"log"

	"github.com/gridwatch/dominion-schedule/internal/config"
	"github.com/gridwatch/dominion-schedule/internal/dominion"
	"github.com/gridwatch/dominion-schedule/internal/logging"
	"github.com/gridwatch/dominion-schedule/internal/scheduler"
)

func main() {

	cfg := config.Load()
	logging.Setup(cfg.LogFormat)

	extractor := dominion.NewExtractor(cfg)

	// Daemon mode: fire on the configured cron expression and keep running.
	// A failed run is logged and retried at the next tick.
	if cfg.ExtractCron != "" {
		err := scheduler.Run(cfg.ExtractCron, func() {
			if _, err := extractor.Run(context.Background()); err != nil {
				log.Printf("Extraction failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	// One-shot mode for external schedulers (cron jobs, Render, etc.).
	if _, err := extractor.Run(context.Background()); err != nil {
		log.Fatalf("Extraction failed: %v", err)
	}
	log.Println("Extraction completed successfully")
}
