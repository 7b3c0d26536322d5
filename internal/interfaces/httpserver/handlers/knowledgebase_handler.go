package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/knowledgebase"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/interfaces/httpserver/requests"
	"jan-server/services/qa-api/internal/interfaces/httpserver/responses"
)

// KnowledgeBaseService lists document stores and their files.
type KnowledgeBaseService interface {
	List(ctx context.Context, pagination query.Pagination) (*knowledgebase.Page[knowledgebase.KnowledgeBase], error)
	Files(ctx context.Context, id string, pagination query.Pagination) (*knowledgebase.FilesPage, error)
}

// KnowledgeBaseHandler exposes the document store catalog.
type KnowledgeBaseHandler struct {
	service KnowledgeBaseService
	log     zerolog.Logger
}

// NewKnowledgeBaseHandler constructs the handler.
func NewKnowledgeBaseHandler(service KnowledgeBaseService, log zerolog.Logger) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{
		service: service,
		log:     log.With().Str("handler", "knowledgebase").Logger(),
	}
}

// List handles GET /knowledge-bases
// @Summary List knowledge bases
// @Tags Knowledge Bases
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} responses.KnowledgeBasesResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /knowledge-bases [get]
func (h *KnowledgeBaseHandler) List(c *gin.Context) {
	var q requests.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), q.Pagination())
	if err != nil {
		responses.HandleError(c, err, "failed to list knowledge bases")
		return
	}

	c.JSON(http.StatusOK, responses.NewKnowledgeBasesResponse(page))
}

// Files handles GET /knowledge-bases/:kb_id/files
// @Summary List the files of a knowledge base
// @Tags Knowledge Bases
// @Produce json
// @Param kb_id path string true "Knowledge base ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} responses.KnowledgeBaseFilesResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /knowledge-bases/{kb_id}/files [get]
func (h *KnowledgeBaseHandler) Files(c *gin.Context) {
	var q requests.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	page, err := h.service.Files(c.Request.Context(), c.Param("kb_id"), q.Pagination())
	if err != nil {
		responses.HandleError(c, err, "failed to list knowledge base files")
		return
	}

	c.JSON(http.StatusOK, responses.NewKnowledgeBaseFilesResponse(page))
}
