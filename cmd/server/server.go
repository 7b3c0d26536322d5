package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/config"
	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/intent"
	"jan-server/services/qa-api/internal/domain/knowledgebase"
	"jan-server/services/qa-api/internal/domain/qa"
	"jan-server/services/qa-api/internal/domain/qarecord"
	"jan-server/services/qa-api/internal/infrastructure/database"
	"jan-server/services/qa-api/internal/infrastructure/database/transaction"
	"jan-server/services/qa-api/internal/infrastructure/flowise"
	"jan-server/services/qa-api/internal/infrastructure/gstore"
	"jan-server/services/qa-api/internal/infrastructure/lock"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/infrastructure/mermaid"
	"jan-server/services/qa-api/internal/infrastructure/observability"
	"jan-server/services/qa-api/internal/infrastructure/ollama"
	conversationrepo "jan-server/services/qa-api/internal/infrastructure/repository/conversation"
	entityrepo "jan-server/services/qa-api/internal/infrastructure/repository/entity"
	qarecordrepo "jan-server/services/qa-api/internal/infrastructure/repository/qarecord"
	"jan-server/services/qa-api/internal/interfaces/httpserver"
	"jan-server/services/qa-api/internal/interfaces/httpserver/handlers"
)

// @title QA API
// @version 1.0
// @description Question answering gateway with intent routing, entity extraction and knowledge graph lookups.
// @contact.name Jan Server Team
// @contact.url https://github.com/janhq/jan-server
// @BasePath /
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.ConfigFrom(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.Migrate(ctx, db, cfg.DBDriver, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	var locker intent.Locker
	if cfg.RoutingLockEnabled {
		redisLocker, err := lock.NewRedisLocker(ctx, cfg.RedisURL, cfg.RoutingLockTTL, log)
		if err != nil {
			log.Fatal().Err(err).Msg("initialize routing lock")
		}
		defer func() {
			if err := redisLocker.Close(); err != nil {
				log.Error().Err(err).Msg("close routing lock")
			}
		}()
		locker = redisLocker
	}

	txDB := transaction.NewDatabase(db)
	conversationService := conversation.NewService(conversationrepo.NewRepository(txDB, log), log)
	recordRepository := qarecordrepo.NewRepository(txDB)

	flowiseClient := newFlowiseClient(cfg, log)
	gstoreClient := newGStoreClient(cfg, log)

	entityService := entity.NewService(entityrepo.NewRepository(txDB), gstoreClient, log)
	router := intent.NewRouter(
		ollama.NewClient(ollama.Config{URL: cfg.OllamaURL, Model: cfg.OllamaModel, Timeout: cfg.OllamaTimeout}, log),
		conversationService,
		intent.Routes(cfg.ChatflowIDs()),
		locker,
		log,
	)
	qaService := qa.NewService(qa.Dependencies{
		Conversations:        conversationService,
		Router:               router,
		Engine:               flowiseClient,
		Rewriter:             mermaid.NewClient(mermaid.Config{URL: cfg.MermaidURL, Timeout: cfg.MermaidTimeout}, log),
		Turns:                recordRepository,
		Entities:             entityService,
		ExtractionChatflowID: cfg.FlowiseChatflowID,
	}, log)

	handlerProvider := handlers.NewProvider(handlers.Services{
		QA:            qaService,
		Turns:         qarecord.NewService(recordRepository, entityService, conversationService, log),
		Entities:      entityService,
		Conversations: conversationService,
		KnowledgeBase: knowledgebase.NewService(flowiseClient, log),
	}, newHealthHandler(cfg, txDB, gstoreClient, log), log)

	httpServer := httpserver.New(cfg, log, handlerProvider)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newFlowiseClient(cfg *config.Config, log zerolog.Logger) *flowise.Client {
	return flowise.NewClient(flowise.Config{
		BaseURL:         cfg.FlowiseBaseURL,
		APIKey:          cfg.FlowiseAPIKey,
		Timeout:         cfg.FlowiseTimeout,
		StoreTimeout:    cfg.FlowiseStoreTimeout,
		DefaultChatflow: cfg.FlowiseChatflowID,
	}, log)
}

func newGStoreClient(cfg *config.Config, log zerolog.Logger) *gstore.Client {
	return gstore.NewClient(gstore.Config{
		BaseURL:     cfg.GStoreBaseURL,
		Username:    cfg.GStoreUsername,
		Password:    cfg.GStorePassword,
		DBName:      cfg.GStoreDBName,
		Timeout:     cfg.GStoreTimeout,
		PingTimeout: cfg.GStorePingTimeout,
	}, log)
}

func newHealthHandler(cfg *config.Config, db *transaction.Database, graphStore *gstore.Client, log zerolog.Logger) *handlers.HealthHandler {
	return handlers.NewHealthHandler(cfg.ServiceName, map[string]handlers.Pinger{
		"database": db,
		"gstore":   graphStore,
	}, log)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
