package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"peakbridge/internal/config"
	"peakbridge/internal/email/noop"
	"peakbridge/internal/email/ses"
	"peakbridge/internal/extract"
	"peakbridge/internal/handler"
	"peakbridge/internal/port"
	"peakbridge/internal/repository/postgres"
	"peakbridge/internal/router"
	"peakbridge/internal/service"
	localstorage "peakbridge/internal/storage/local"
	s3storage "peakbridge/internal/storage/s3"
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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	jobRepo := postgres.NewJobRepo(db)
	fileRepo := postgres.NewJobFileRepo(db)
	rowRepo := postgres.NewRowRepo(db)

	// Initialize storage
	var storage port.ObjectStorage
	switch cfg.Storage.Provider {
	case "s3":
		storage, err = s3storage.NewS3Client(&cfg.Storage)
	default:
		storage, err = localstorage.NewLocalStore(cfg.Storage.Dir)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize email
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	extractSvc := service.NewExtractService(extract.NewEngine())
	jobSvc := service.NewJobService(jobRepo, fileRepo, rowRepo, storage, cfg.Storage.Bucket, cfg.Upload)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	jobH := handler.NewJobHandler(jobSvc)
	rowH := handler.NewRowHandler(jobSvc)
	extractH := handler.NewExtractHandler(extractSvc)
	healthH := handler.NewHealthHandler(db)

	// Start the extraction queue worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := service.NewExtractQueueWorker(jobRepo, fileRepo, rowRepo, storage, extractSvc,
		emailSender, cfg.Email.NotifyTo, service.ExtractQueueConfig{
			PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
			MaxRetries:   cfg.Queue.MaxRetries,
			Concurrency:  cfg.Queue.Concurrency,
		})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	// Setup router
	r := router.Setup(cfg, authSvc, authH, jobH, rowH, extractH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone
	log.Println("Shutdown complete")

	return nil
}
