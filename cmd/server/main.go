package main

import (
	"fmt"
	"log"
	"time"

	"qalib/internal/config"
	"qalib/internal/extractor"
	"qalib/internal/handler"
	"qalib/internal/port"
	"qalib/internal/router"
	"qalib/internal/service"
	"qalib/internal/session"
	s3storage "qalib/internal/storage/s3"

	// Register extraction providers.
	_ "qalib/internal/extractor/claude"
	_ "qalib/internal/extractor/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize artifact storage when a bucket is configured
	var objectStorage port.ObjectStorage
	if cfg.Storage.Enabled() {
		objectStorage, err = s3storage.NewS3Client(&cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
		log.Printf("[Server] artifact storage enabled, bucket=%s", cfg.Storage.Bucket)
	}

	// Initialize extraction providers with fallback
	ext, err := buildExtractor(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	// Initialize sessions
	store := session.NewStore(cfg.Session.TTL)
	issuer := session.NewTokenIssuer(cfg.Session)
	go sweepSessions(store, cfg.Session.TTL)

	// Initialize services
	fillSvc := service.NewFillService(objectStorage, cfg)
	extractSvc := service.NewExtractService(ext)
	reportSvc := service.NewReportService(cfg.Fonts)
	sessionSvc := service.NewSessionService(store, issuer)

	// Initialize handlers
	fillH := handler.NewFillHandler(fillSvc)
	extractH := handler.NewExtractHandler(extractSvc, sessionSvc)
	reportH := handler.NewReportHandler(reportSvc, sessionSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	healthH := handler.NewHealthHandler(cfg.Fonts)

	// Setup router
	r := router.Setup(cfg, sessionSvc, fillH, extractH, reportH, sessionH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildExtractor wires the primary provider, adding the secondary behind a
// fallback chain when one is configured.
func buildExtractor(cfg *config.ExtractorConfig) (port.Extractor, error) {
	primary, err := extractor.NewExtractor(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := extractor.NewExtractor(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return extractor.NewFallbackExtractor(
		[]port.Extractor{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}

// sweepSessions evicts expired sessions periodically.
func sweepSessions(store *session.Store, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	for range time.Tick(interval) {
		if n := store.Sweep(); n > 0 {
			log.Printf("[Session] swept %d expired sessions", n)
		}
	}
}
