package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/qarecord"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/interfaces/httpserver/requests"
	"jan-server/services/qa-api/internal/interfaces/httpserver/responses"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// TurnService reads, rates and deletes recorded turns.
type TurnService interface {
	History(ctx context.Context, username string, pagination query.Pagination) (*qarecord.TurnPage, error)
	ConversationTurns(ctx context.Context, conversationID string, pagination query.Pagination) (*qarecord.ConversationTurns, error)
	Feedback(ctx context.Context, id uint, feedback qarecord.FeedbackType) error
	Delete(ctx context.Context, id uint) error
}

// HistoryHandler exposes turn history, feedback and deletion.
type HistoryHandler struct {
	service TurnService
	log     zerolog.Logger
}

// NewHistoryHandler constructs the handler.
func NewHistoryHandler(service TurnService, log zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		log:     log.With().Str("handler", "history").Logger(),
	}
}

// History handles GET /history
// @Summary List a user's turns
// @Description Returns the user's live turns, newest first, with source documents and entities
// @Tags History
// @Produce json
// @Param username query string true "Username"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} responses.HistoryResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /history [get]
func (h *HistoryHandler) History(c *gin.Context) {
	var q requests.UserPageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	page, err := h.service.History(c.Request.Context(), q.Username, q.Pagination())
	if err != nil {
		responses.HandleError(c, err, "failed to load history")
		return
	}

	c.JSON(http.StatusOK, responses.NewHistoryResponse(page))
}

// ConversationTurns handles GET /conversations/:conversation_id/qa
// @Summary List the turns of a conversation
// @Description Returns the conversation's live turns, oldest first
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} responses.ConversationQAResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /conversations/{conversation_id}/qa [get]
func (h *HistoryHandler) ConversationTurns(c *gin.Context) {
	var q requests.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	turns, err := h.service.ConversationTurns(c.Request.Context(), c.Param("conversation_id"), q.Pagination())
	if err != nil {
		responses.HandleError(c, err, "failed to load conversation turns")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationQAResponse(turns))
}

// Feedback handles POST /feedback
// @Summary Like or dislike a turn
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body requests.FeedbackRequest true "Feedback"
// @Success 200 {object} responses.StatusResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /feedback [post]
func (h *HistoryHandler) Feedback(c *gin.Context) {
	var req requests.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	if err := h.service.Feedback(c.Request.Context(), req.ID, qarecord.FeedbackType(req.Type)); err != nil {
		responses.HandleError(c, err, "failed to record feedback")
		return
	}

	c.JSON(http.StatusOK, responses.OK)
}

// Delete handles DELETE /qa/:id
// @Summary Delete a turn
// @Tags QA
// @Produce json
// @Param id path int true "Turn ID"
// @Success 200 {object} responses.StatusResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /qa/{id} [delete]
func (h *HistoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "id must be a positive integer", "e2c6a91d-48f3-4b07-9d5e-3f1a8c0b7e64")
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id)); err != nil {
		responses.HandleError(c, err, "failed to delete record")
		return
	}

	c.JSON(http.StatusOK, responses.OK)
}
