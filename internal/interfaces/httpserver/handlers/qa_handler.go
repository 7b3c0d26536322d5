package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"jan-server/services/qa-api/internal/domain/qa"
	"jan-server/services/qa-api/internal/infrastructure/metrics"
	"jan-server/services/qa-api/internal/infrastructure/observability"
	"jan-server/services/qa-api/internal/interfaces/httpserver/requests"
	"jan-server/services/qa-api/internal/interfaces/httpserver/responses"
)

// QAService answers questions.
type QAService interface {
	Ask(ctx context.Context, params qa.AskParams) (*qa.Answer, error)
}

// QAHandler exposes the question endpoint.
type QAHandler struct {
	service QAService
	log     zerolog.Logger
}

// NewQAHandler constructs the handler.
func NewQAHandler(service QAService, log zerolog.Logger) *QAHandler {
	return &QAHandler{
		service: service,
		log:     log.With().Str("handler", "qa").Logger(),
	}
}

// Ask handles POST /qa
// @Summary Ask a question
// @Description Routes the question to a chatflow, tags entities in the answer and records the turn
// @Tags QA
// @Accept json
// @Produce json
// @Param request body requests.QARequest true "Question"
// @Success 200 {object} responses.QAResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Failure 504 {object} responses.ErrorResponse
// @Router /qa [post]
func (h *QAHandler) Ask(c *gin.Context) {
	var req requests.QARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), "qa.ask",
		attribute.String("qa.username", req.Username),
		attribute.Bool("qa.in_conversation", req.ConversationID != nil && *req.ConversationID != ""),
	)
	defer span.End()

	answer, err := h.service.Ask(ctx, qa.AskParams{
		Username:       req.Username,
		Question:       req.Question,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		observability.RecordError(ctx, err)
		responses.HandleError(c, err, "failed to answer question")
		return
	}

	metrics.RecordIntent(int(answer.Decision.IntentID), string(answer.Decision.Source))
	metrics.RecordDiagramRewrite(answer.DiagramRewritten)
	metrics.RecordEntitiesExtracted(len(answer.Entities))
	observability.AddSpanAttributes(ctx,
		attribute.Int("qa.intent_id", int(answer.Decision.IntentID)),
		attribute.String("qa.intent_source", string(answer.Decision.Source)),
		attribute.String("qa.chatflow_id", answer.Decision.ChatflowID),
		attribute.Bool("qa.first_turn", answer.FirstTurn),
		attribute.Bool("qa.diagram_rewritten", answer.DiagramRewritten),
		attribute.Int("qa.entities", len(answer.Entities)),
	)

	c.JSON(http.StatusOK, responses.NewQAResponse(answer))
}
