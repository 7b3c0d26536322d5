package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/interfaces/httpserver/requests"
	"jan-server/services/qa-api/internal/interfaces/httpserver/responses"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

const conversationNotFoundUUID = "7c4f2b85-9e13-4a6d-b0f8-5d2e1c7a3b90"

// ConversationHandler exposes conversation CRUD.
type ConversationHandler struct {
	service conversation.Service
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service conversation.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// Create handles POST /conversations
// @Summary Create a conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body requests.CreateConversationRequest true "Conversation"
// @Success 200 {object} responses.ConversationInfo
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	var req requests.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	params := conversation.CreateParams{
		Username:    req.Username,
		Title:       conversation.DefaultTitle,
		Description: req.Description,
	}
	if req.Title != nil {
		params.Title = *req.Title
	}

	conv, err := h.service.Create(c.Request.Context(), params)
	if err != nil {
		responses.HandleError(c, err, "failed to create conversation")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationInfo(conv))
}

// List handles GET /conversations
// @Summary List a user's conversations
// @Description Most recently updated first
// @Tags Conversations
// @Produce json
// @Param username query string true "Username"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} responses.ConversationsResponse
// @Failure 400 {object} responses.ErrorResponse
// @Router /conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	var q requests.UserPageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), q.Username, q.Pagination())
	if err != nil {
		responses.HandleError(c, err, "failed to list conversations")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationsResponse(items, total))
}

// Get handles GET /conversations/:conversation_id
// @Summary Get a conversation
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} responses.ConversationInfo
// @Failure 404 {object} responses.ErrorResponse
// @Router /conversations/{conversation_id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.service.Get(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to get conversation")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationInfo(conv))
}

// Update handles PUT /conversations/:conversation_id
// @Summary Update a conversation
// @Description Overwrites only the supplied fields
// @Tags Conversations
// @Accept json
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param request body requests.UpdateConversationRequest true "Changes"
// @Success 200 {object} responses.StatusResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /conversations/{conversation_id} [put]
func (h *ConversationHandler) Update(c *gin.Context) {
	var req requests.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	params := conversation.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.IsActive != nil {
		active := *req.IsActive == 1
		params.IsActive = &active
	}

	if !h.service.Update(c.Request.Context(), c.Param("conversation_id"), params) {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "conversation not found", conversationNotFoundUUID)
		return
	}

	c.JSON(http.StatusOK, responses.OK)
}

// Delete handles DELETE /conversations/:conversation_id
// @Summary Delete a conversation
// @Description Soft-deletes the conversation and all of its turns
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} responses.StatusResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /conversations/{conversation_id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	ok, err := h.service.Delete(c.Request.Context(), c.Param("conversation_id"))
	if err != nil {
		responses.HandleError(c, err, "failed to delete conversation")
		return
	}
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeNotFound, "conversation not found", conversationNotFoundUUID)
		return
	}

	c.JSON(http.StatusOK, responses.OK)
}
