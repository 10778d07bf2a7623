package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/lifestory-backend/internal/api"
	"github.com/futig/lifestory-backend/internal/api/catalog"
	"github.com/futig/lifestory-backend/internal/api/invitation"
	sessionapi "github.com/futig/lifestory-backend/internal/api/session"
	storybookapi "github.com/futig/lifestory-backend/internal/api/storybook"
	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/integration/asr"
	"github.com/futig/lifestory-backend/internal/integration/llm"
	"github.com/futig/lifestory-backend/internal/integration/mail"
	"github.com/futig/lifestory-backend/internal/pkg/formatter"
	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/pkg/validator"
	"github.com/futig/lifestory-backend/internal/questionbank"
	"github.com/futig/lifestory-backend/internal/repository"
	"github.com/futig/lifestory-backend/internal/usecase/narrative"
	"github.com/futig/lifestory-backend/internal/usecase/session"
	"github.com/futig/lifestory-backend/internal/usecase/storybook"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkglogger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	sessionRepo := repository.NewSessionPostgres(db)
	responseRepo := repository.NewResponsePostgres(db)
	invitationRepo := repository.NewInvitationPostgres(db)
	shareLinkRepo := repository.NewShareLinkPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var llmConnector narrative.TextGenerator
	var asrConnector session.ASRConnector
	var mailConnector session.MailConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		llmConnector = llm.NewMockConnector(logger)
		asrConnector = asr.NewMockConnector(logger)
		mailConnector = mail.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		llmConnector = llm.NewConnector(cfg.LLMConnectorCfg, logger)
		asrConnector = asr.NewConnector(cfg.ASRConnectorCfg, logger)
		mailConnector = mail.NewConnector(cfg.MailConnectorCfg, logger)
	}

	// Static question catalog
	bank, err := questionbank.Load()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load question catalog: %w", err)
	}

	generator, err := narrative.NewGenerator(llmConnector)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create narrative generator: %w", err)
	}

	setupDocumentLicense(cfg.StorybookCfg, logger)
	formatters := formatter.NewFactory(cfg.StorybookCfg.FontPath)

	requestValidator := validator.New(cfg.FileUploadCfg)
	storyCache := cache.New(cfg.StorybookCfg.CacheTTL, cfg.StorybookCfg.CacheTTL/2)
	logger.Info("Story services initialized")

	// Initialize use cases
	sessionUC := session.NewUsecase(
		sessionRepo,
		responseRepo,
		invitationRepo,
		bank,
		requestValidator,
		asrConnector,
		mailConnector,
		storyCache,
		cfg.SessionCfg,
		cfg.StorybookCfg.SiteURL,
	)

	storybookUC := storybook.NewUsecase(
		sessionUC,
		bank,
		generator,
		shareLinkRepo,
		formatters,
		storyCache,
		cfg.StorybookCfg.ShareBaseURL,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	handlers := &api.Handlers{
		Catalog:    catalog.NewHandler(bank),
		Session:    sessionapi.NewHandler(sessionUC, cfg.FileUploadCfg),
		Invitation: invitation.NewHandler(sessionUC),
		Storybook:  storybookapi.NewHandler(storybookUC),
	}
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(handlers, cfg, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
