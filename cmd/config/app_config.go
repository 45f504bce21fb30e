package config

import (
	"billora-backend/domain"
	"billora-backend/internal/api/handlers"
	"billora-backend/internal/api/presenters"
	"billora-backend/internal/api/routes"
	"billora-backend/internal/middleware"
	"billora-backend/internal/utils"
	"billora-backend/internal/utils/logger"
	"billora-backend/internal/utils/mailing"
	"billora-backend/internal/utils/storage"
	"billora-backend/pkg/ai"
	"billora-backend/pkg/analysis"
	"billora-backend/pkg/email"
	"billora-backend/pkg/invoice"
	"billora-backend/pkg/jwt"
	"billora-backend/pkg/qrcode"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type stores struct {
	invoices invoice.InvoiceRepository
	analyses analysis.AnalysisRepository
	qrCodes  qrcode.QRRepository
}

// NewApp builds every client, wires repositories, services and handlers, and
// returns the app together with a cleanup that closes what it opened.
func NewApp(ctx context.Context, cfg *utils.Config) (*fiber.App, func(), error) {
	log := logger.WithComponent("app")
	var closers []io.Closer
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close client")
			}
		}
	}

	utils.InitValidator()
	validator := utils.Validate
	app := fiber.New(fiber.Config{
		AppName:      "Billora",
		ErrorHandler: errorHandler,
	})
	middlewares := middleware.NewMiddleware()

	// setting up logging and recover
	accessLog, err := openAccessLog(cfg.AccessLogPath)
	if err != nil {
		return nil, cleanup, err
	}
	if accessLog != os.Stdout {
		closers = append(closers, accessLog)
	}
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     accessLog,
	}))

	// Repository
	store, storeCloser, err := newStores(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	closers = append(closers, storeCloser)

	// utils
	mailer := mailing.NewMailer(mailing.MailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPortNumber(),
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SendGridAPIKey,
		FromEmail:    cfg.MailFromEmail,
		FromName:     cfg.MailFromName,
	})

	var archive storage.AwsS3
	if cfg.AWSS3Bucket != "" {
		s3, err := storage.NewAwsS3(ctx, storage.S3Config{
			Bucket:    cfg.AWSS3Bucket,
			Region:    cfg.AWSS3Region,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		archive = s3
	}

	// AI providers
	tagGenerator := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.AITimeout(),
	})
	analysisGenerator := ai.NewHuggingFaceGenerator(ai.HuggingFaceConfig{
		APIKey:   cfg.HuggingFaceAPIKey,
		ModelURL: cfg.HuggingFaceModelURL,
		Timeout:  cfg.AITimeout(),
	})
	if cfg.AIAnalysisProvider == utils.AIProviderGemini {
		gemini := ai.NewGeminiGenerator(ai.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		closers = append(closers, gemini)
		analysisGenerator = gemini
	}

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	analysisService := analysis.NewAnalysisService(store.invoices, store.analyses, analysisGenerator, cfg.AITimeout())
	suggestService := analysis.NewSuggestService(store.invoices, store.analyses, tagGenerator, cfg.AITimeout())
	qrService := qrcode.NewQRService(store.qrCodes, store.invoices, store.analyses, cfg.PublicBaseURL)
	emailService := email.NewEmailService(mailer, archive, cfg.MailFromName)

	// Handler
	aiHandler := handlers.NewAIHandler(analysisService, suggestService, validator)
	qrHandler := handlers.NewQRHandler(qrService, validator)
	emailHandler := handlers.NewEmailHandler(emailService, validator)

	// routes
	routesConfig := routes.Config{
		App:          app,
		AIHandler:    aiHandler,
		QRHandler:    qrHandler,
		EmailHandler: emailHandler,
		Middleware:   middlewares,
		JWTService:   jwtService,
	}
	routesConfig.Setup()

	log.Info().
		Str("store", cfg.StoreDriver).
		Str("analysis_provider", cfg.AIAnalysisProvider).
		Bool("pdf_archive", archive != nil).
		Msg("application wired")
	return app, cleanup, nil
}

func newStores(ctx context.Context, cfg *utils.Config) (stores, io.Closer, error) {
	if cfg.StoreDriver == utils.StoreDriverPostgres {
		db, err := ConnectDB(cfg)
		if err != nil {
			return stores{}, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return stores{}, nil, err
		}
		return stores{
			invoices: invoice.NewInvoiceRepository(db),
			analyses: analysis.NewAnalysisRepository(db),
			qrCodes:  qrcode.NewQRRepository(db),
		}, sqlDB, nil
	}

	client, err := ConnectFirestore(ctx, cfg)
	if err != nil {
		return stores{}, nil, err
	}
	return stores{
		invoices: invoice.NewInvoiceFirestoreRepository(client),
		analyses: analysis.NewAnalysisFirestoreRepository(client),
		qrCodes:  qrcode.NewQRFirestoreRepository(client),
	}, client, nil
}

func openAccessLog(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return presenters.ErrorResponse(c, fiberErr.Code, fiberErr.Message, nil)
	}
	return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageInternalServerError, err)
}
