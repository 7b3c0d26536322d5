package routes

import (
	"github.com/gin-gonic/gin"

	"jan-server/services/qa-api/internal/interfaces/httpserver/handlers"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{handlers: handlerProvider}
}

// Register attaches the API routes at the root of the engine; existing
// clients call them without a version prefix.
func (p *Provider) Register(engine *gin.Engine) {
	registerQARoutes(engine, p.handlers.QA, p.handlers.History, p.handlers.Entity)
	registerConversationRoutes(engine, p.handlers.Conversation, p.handlers.History)
	registerKnowledgeBaseRoutes(engine, p.handlers.KnowledgeBase)
}

func registerQARoutes(router gin.IRoutes, qa *handlers.QAHandler, history *handlers.HistoryHandler, entity *handlers.EntityHandler) {
	router.POST("/qa", qa.Ask)
	router.DELETE("/qa/:id", history.Delete)
	router.GET("/history", history.History)
	router.POST("/feedback", history.Feedback)
	router.POST("/entity/query", entity.Query)
}

func registerConversationRoutes(router gin.IRoutes, conversation *handlers.ConversationHandler, history *handlers.HistoryHandler) {
	router.POST("/conversations", conversation.Create)
	router.GET("/conversations", conversation.List)
	router.GET("/conversations/:conversation_id", conversation.Get)
	router.PUT("/conversations/:conversation_id", conversation.Update)
	router.DELETE("/conversations/:conversation_id", conversation.Delete)
	router.GET("/conversations/:conversation_id/qa", history.ConversationTurns)
}

func registerKnowledgeBaseRoutes(router gin.IRoutes, kb *handlers.KnowledgeBaseHandler) {
	router.GET("/knowledge-bases", kb.List)
	router.GET("/knowledge-bases/:kb_id/files", kb.Files)
}
