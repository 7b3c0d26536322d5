package entity

import (
	"context"

	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/graph"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// QueryResult is the graph view of an entity.
type QueryResult struct {
	Entity *Entity
	Graph  *graph.Result
	Cached bool
}

// Service implements extraction and graph re-query for entities.
type Service struct {
	repo    Repository
	querier graph.Querier
	log     zerolog.Logger
}

// NewService creates an entity service.
func NewService(repo Repository, querier graph.Querier, log zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		querier: querier,
		log:     log.With().Str("component", "entity-service").Logger(),
	}
}

// ExtractAndSave persists the tagged spans of annotated as entities of the
// turn. Texts already stored for the turn, or repeated within annotated, are
// skipped, so running it twice on the same text creates nothing new.
func (s *Service) ExtractAndSave(ctx context.Context, recordID uint, annotated string) ([]*Entity, error) {
	spans := ExtractSpans(annotated)
	if len(spans) == 0 {
		return []*Entity{}, nil
	}

	existing, err := s.repo.FindByRecordID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(existing)+len(spans))
	for _, e := range existing {
		seen[e.EntityText] = struct{}{}
	}

	created := make([]*Entity, 0, len(spans))
	for _, span := range spans {
		if _, dup := seen[span.Text]; dup {
			continue
		}
		seen[span.Text] = struct{}{}
		created = append(created, &Entity{
			QARecordID:    recordID,
			EntityText:    span.Text,
			StartPosition: span.Start,
			EndPosition:   span.End,
		})
	}
	if len(created) == 0 {
		return created, nil
	}
	if err := s.repo.CreateBatch(ctx, created); err != nil {
		return nil, err
	}

	logger.WithRequest(ctx, s.log).Debug().
		Uint("qa_record_id", recordID).
		Int("spans", len(spans)).
		Int("created", len(created)).
		Msg("entities extracted")
	return created, nil
}

// ForRecord lists the entities of one turn.
func (s *Service) ForRecord(ctx context.Context, recordID uint) ([]*Entity, error) {
	return s.repo.FindByRecordID(ctx, recordID)
}

// ForRecords lists the entities of several turns keyed by turn id.
func (s *Service) ForRecords(ctx context.Context, recordIDs []uint) (map[uint][]*Entity, error) {
	if len(recordIDs) == 0 {
		return map[uint][]*Entity{}, nil
	}
	return s.repo.FindByRecordIDs(ctx, recordIDs)
}

// Query returns the graph relations of an entity. Every call counts as a
// click. The first successful lookup is cached on the entity and served from
// there afterwards. On an uncached entity, graph transport failures and
// non-200 responses are returned as EXTERNAL errors (HTTP 502) and cache
// nothing; a malformed graph payload decodes to an empty result, which is
// cached like any other answer.
func (s *Service) Query(ctx context.Context, entityID uint, entityText string) (*QueryResult, error) {
	ent, err := s.repo.FindByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementClickCount(ctx, entityID); err != nil {
		return nil, err
	}
	ent.ClickCount++

	if ent.GraphCache != nil {
		return &QueryResult{Entity: ent, Graph: ent.GraphCache, Cached: true}, nil
	}

	result, err := s.querier.QueryEntity(ctx, entityText)
	if err != nil {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"graph query failed", err, "6f0b3c2e-1d4a-4e8b-9a57-3c0e2f9d7b14",
			map[string]any{"entity_id": entityID})
	}
	if result == nil {
		result = graph.Empty()
	}

	written, err := s.repo.SetGraphCacheIfEmpty(ctx, entityID, result)
	if err != nil {
		return nil, err
	}
	if !written {
		// Another request cached first; serve what is stored.
		if stored, err := s.repo.FindByID(ctx, entityID); err == nil && stored.GraphCache != nil {
			result = stored.GraphCache
		}
	}
	ent.GraphCache = result
	return &QueryResult{Entity: ent, Graph: result, Cached: false}, nil
}
