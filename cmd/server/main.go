package main

import (
	"fmt"
	"log"

	"saralgst/internal/config"
	"saralgst/internal/email/noop"
	"saralgst/internal/email/ses"
	"saralgst/internal/extract"
	"saralgst/internal/handler"
	"saralgst/internal/ocr/vision"
	"saralgst/internal/port"
	"saralgst/internal/repository/postgres"
	"saralgst/internal/router"
	"saralgst/internal/service"
	s3storage "saralgst/internal/storage/s3"
	"saralgst/internal/structurer/gemini"
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
	invoiceRepo := postgres.NewInvoiceRepo(db)
	issueRepo := postgres.NewIssueRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize extraction providers
	recognizer := vision.NewClient(&cfg.OCR)
	structurer := gemini.NewStructurer(&cfg.Structurer)
	orchestrator := extract.NewOrchestrator(recognizer, structurer, cfg.Pipeline.DirectMultimodal)

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	invoiceSvc := service.NewInvoiceService(
		invoiceRepo,
		issueRepo,
		s3Client,
		orchestrator,
		emailSender,
		cfg.S3.Bucket,
		cfg.S3.PresignExpiry,
		cfg.Email.ReviewerAddr,
		cfg.Pipeline.ConfidenceThreshold,
	)
	issueSvc := service.NewIssueService(issueRepo, invoiceRepo)
	exportSvc := service.NewExportService(invoiceRepo)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	issueH := handler.NewIssueHandler(issueSvc)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(invoiceH, issueH, exportH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
