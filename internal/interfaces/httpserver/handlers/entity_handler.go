package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/infrastructure/metrics"
	"jan-server/services/qa-api/internal/infrastructure/observability"
	"jan-server/services/qa-api/internal/interfaces/httpserver/requests"
	"jan-server/services/qa-api/internal/interfaces/httpserver/responses"
)

// EntityService resolves graph relations of entities.
type EntityService interface {
	Query(ctx context.Context, entityID uint, entityText string) (*entity.QueryResult, error)
}

// EntityHandler exposes the entity click endpoint.
type EntityHandler struct {
	service EntityService
	log     zerolog.Logger
}

// NewEntityHandler constructs the handler.
func NewEntityHandler(service EntityService, log zerolog.Logger) *EntityHandler {
	return &EntityHandler{
		service: service,
		log:     log.With().Str("handler", "entity").Logger(),
	}
}

// Query handles POST /entity/query
// @Summary Query the knowledge graph for an entity
// @Description Counts the click and returns the entity's nodes and relations, cached after the first successful lookup
// @Tags Entities
// @Accept json
// @Produce json
// @Param request body requests.EntityClickRequest true "Entity click"
// @Success 200 {object} responses.EntityQueryResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 502 {object} responses.ErrorResponse
// @Router /entity/query [post]
func (h *EntityHandler) Query(c *gin.Context) {
	var req requests.EntityClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleBindError(c, err)
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), "entity.query",
		attribute.Int64("entity.id", int64(req.EntityID)),
	)
	defer span.End()

	result, err := h.service.Query(ctx, req.EntityID, req.EntityText)
	if err != nil {
		observability.RecordError(ctx, err)
		responses.HandleError(c, err, "failed to query entity")
		return
	}

	metrics.RecordEntityQuery(result.Cached)
	observability.AddSpanAttributes(ctx, attribute.Bool("entity.cached", result.Cached))

	c.JSON(http.StatusOK, responses.NewEntityQueryResponse(result))
}
