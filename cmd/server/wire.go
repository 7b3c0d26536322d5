//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"jan-server/services/qa-api/internal/config"
	"jan-server/services/qa-api/internal/domain/chatflow"
	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/diagram"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/graph"
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
	"jan-server/services/qa-api/internal/infrastructure/ollama"
	conversationrepo "jan-server/services/qa-api/internal/infrastructure/repository/conversation"
	entityrepo "jan-server/services/qa-api/internal/infrastructure/repository/entity"
	qarecordrepo "jan-server/services/qa-api/internal/infrastructure/repository/qarecord"
	"jan-server/services/qa-api/internal/interfaces/httpserver"
	"jan-server/services/qa-api/internal/interfaces/httpserver/handlers"
)

var repositorySet = wire.NewSet(
	newGormDB,
	transaction.NewDatabase,
	conversationrepo.NewRepository,
	wire.Bind(new(conversation.Repository), new(*conversationrepo.Repository)),
	qarecordrepo.NewRepository,
	wire.Bind(new(qarecord.Repository), new(*qarecordrepo.Repository)),
	wire.Bind(new(qa.TurnStore), new(*qarecordrepo.Repository)),
	entityrepo.NewRepository,
	wire.Bind(new(entity.Repository), new(*entityrepo.Repository)),
)

var adapterSet = wire.NewSet(
	newFlowiseClient,
	wire.Bind(new(chatflow.Engine), new(*flowise.Client)),
	wire.Bind(new(knowledgebase.Catalog), new(*flowise.Client)),
	newGStoreClient,
	wire.Bind(new(graph.Querier), new(*gstore.Client)),
	newOllamaClient,
	wire.Bind(new(intent.Classifier), new(*ollama.Client)),
	newMermaidClient,
	wire.Bind(new(diagram.Rewriter), new(*mermaid.Client)),
	newRoutingLocker,
)

var serviceSet = wire.NewSet(
	conversation.NewService,
	wire.Bind(new(qarecord.ConversationReader), new(conversation.Service)),
	wire.Bind(new(intent.ConversationStore), new(conversation.Service)),
	entity.NewService,
	wire.Bind(new(qarecord.EntityLister), new(*entity.Service)),
	wire.Bind(new(qa.EntityExtractor), new(*entity.Service)),
	qarecord.NewService,
	knowledgebase.NewService,
	newRoutes,
	intent.NewRouter,
	wire.Bind(new(qa.Resolver), new(*intent.Router)),
	newQADependencies,
	qa.NewService,
)

var httpSet = wire.NewSet(
	newHandlerServices,
	newHealthHandler,
	handlers.NewProvider,
	httpserver.New,
)

// BuildApplication demonstrates how to assemble the QA service with Wire.
func BuildApplication(ctx context.Context) (*Application, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		repositorySet,
		adapterSet,
		serviceSet,
		httpSet,
		NewApplication,
	)
	return nil, nil, nil
}

func newGormDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(database.ConfigFrom(cfg))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, cfg.DBDriver, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newOllamaClient(cfg *config.Config, log zerolog.Logger) *ollama.Client {
	return ollama.NewClient(ollama.Config{URL: cfg.OllamaURL, Model: cfg.OllamaModel, Timeout: cfg.OllamaTimeout}, log)
}

func newMermaidClient(cfg *config.Config, log zerolog.Logger) *mermaid.Client {
	return mermaid.NewClient(mermaid.Config{URL: cfg.MermaidURL, Timeout: cfg.MermaidTimeout}, log)
}

// newRoutingLocker returns a nil Locker when the lock is disabled.
func newRoutingLocker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (intent.Locker, func(), error) {
	if !cfg.RoutingLockEnabled {
		return nil, func() {}, nil
	}
	locker, err := lock.NewRedisLocker(ctx, cfg.RedisURL, cfg.RoutingLockTTL, log)
	if err != nil {
		return nil, nil, err
	}
	return locker, func() { _ = locker.Close() }, nil
}

func newRoutes(cfg *config.Config) intent.Routes {
	return intent.Routes(cfg.ChatflowIDs())
}

func newQADependencies(
	cfg *config.Config,
	conversations qarecord.ConversationReader,
	router qa.Resolver,
	engine chatflow.Engine,
	rewriter diagram.Rewriter,
	turns qa.TurnStore,
	entities qa.EntityExtractor,
) qa.Dependencies {
	return qa.Dependencies{
		Conversations:        conversations,
		Router:               router,
		Engine:               engine,
		Rewriter:             rewriter,
		Turns:                turns,
		Entities:             entities,
		ExtractionChatflowID: cfg.FlowiseChatflowID,
	}
}

func newHandlerServices(
	qaService *qa.Service,
	turns *qarecord.Service,
	entities *entity.Service,
	conversations conversation.Service,
	kb *knowledgebase.Service,
) handlers.Services {
	return handlers.Services{
		QA:            qaService,
		Turns:         turns,
		Entities:      entities,
		Conversations: conversations,
		KnowledgeBase: kb,
	}
}
