package handlers

import (
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/conversation"
)

// Services groups the domain services the handlers call.
type Services struct {
	QA            QAService
	Turns         TurnService
	Entities      EntityService
	Conversations conversation.Service
	KnowledgeBase KnowledgeBaseService
}

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	QA            *QAHandler
	History       *HistoryHandler
	Entity        *EntityHandler
	Conversation  *ConversationHandler
	KnowledgeBase *KnowledgeBaseHandler
	Health        *HealthHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(services Services, health *HealthHandler, log zerolog.Logger) *Provider {
	return &Provider{
		QA:            NewQAHandler(services.QA, log),
		History:       NewHistoryHandler(services.Turns, log),
		Entity:        NewEntityHandler(services.Entities, log),
		Conversation:  NewConversationHandler(services.Conversations, log),
		KnowledgeBase: NewKnowledgeBaseHandler(services.KnowledgeBase, log),
		Health:        health,
	}
}
