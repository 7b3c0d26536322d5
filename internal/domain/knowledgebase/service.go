package knowledgebase

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// Page is one locally paginated slice of a listing. Total counts every
// upstream item, including ones skipped because they could not be decoded.
type Page[T any] struct {
	Total int
	Items []T
}

// FilesPage is a page of one store's files.
type FilesPage struct {
	Page[File]
	KnowledgeBaseID   string
	KnowledgeBaseName string
}

// Service reshapes the engine's document-store catalog. The engine offers no
// server-side paging, so every listing fetches the full catalog first.
type Service struct {
	catalog Catalog
	log     zerolog.Logger
}

// NewService creates a knowledge-base service.
func NewService(catalog Catalog, log zerolog.Logger) *Service {
	return &Service{
		catalog: catalog,
		log:     log.With().Str("component", "knowledgebase-service").Logger(),
	}
}

// List returns a page of stores.
func (s *Service) List(ctx context.Context, pagination query.Pagination) (*Page[KnowledgeBase], error) {
	raw, err := s.catalog.ListStores(ctx)
	if err != nil {
		return nil, upstreamError(ctx, "failed to list knowledge bases", err)
	}

	start, end := pagination.Window(len(raw))
	items := make([]KnowledgeBase, 0, end-start)
	for _, record := range raw[start:end] {
		kb, err := decode(record)
		if err != nil {
			logger.WithRequest(ctx, s.log).Warn().Err(err).Msg("skipping malformed knowledge base")
			continue
		}
		items = append(items, *kb)
	}
	return &Page[KnowledgeBase]{Total: len(raw), Items: items}, nil
}

// Files returns a page of the files of one store across all of its loaders.
func (s *Service) Files(ctx context.Context, id string, pagination query.Pagination) (*FilesPage, error) {
	raw, err := s.catalog.GetStore(ctx, id)
	if err != nil {
		return nil, upstreamError(ctx, "failed to fetch knowledge base", err)
	}
	if isEmptyRecord(raw) {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"knowledge base not found", nil, "2b7e9c41-5a0d-4c36-8f12-9d4e6a3b0c75",
			map[string]any{"knowledge_base_id": id})
	}
	kb, err := decode(raw)
	if err != nil {
		return nil, upstreamError(ctx, "failed to decode knowledge base", err)
	}

	files := kb.Files()
	start, end := pagination.Window(len(files))
	return &FilesPage{
		Page:              Page[File]{Total: len(files), Items: files[start:end]},
		KnowledgeBaseID:   kb.ID,
		KnowledgeBaseName: kb.Name,
	}, nil
}

func decode(raw json.RawMessage) (*KnowledgeBase, error) {
	var kb KnowledgeBase
	if err := json.Unmarshal(raw, &kb); err != nil {
		return nil, err
	}
	kb.normalize()
	return &kb, nil
}

// normalize replaces absent collections with empty ones so they render as
// [] and {} rather than null.
func (kb *KnowledgeBase) normalize() {
	if kb.Loaders == nil {
		kb.Loaders = []Loader{}
	}
	if kb.WhereUsed == nil {
		kb.WhereUsed = []string{}
	}
	for _, cfg := range []*ComponentConfig{kb.VectorStoreConfig, kb.EmbeddingConfig} {
		if cfg != nil && cfg.Config == nil {
			cfg.Config = map[string]any{}
		}
	}
	for i := range kb.Loaders {
		loader := &kb.Loaders[i]
		if loader.LoaderConfig == nil {
			loader.LoaderConfig = map[string]any{}
		}
		if loader.SplitterConfig == nil {
			loader.SplitterConfig = map[string]any{}
		}
		if loader.Files == nil {
			loader.Files = []File{}
		}
	}
}

func isEmptyRecord(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

func upstreamError(ctx context.Context, message string, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
		message, err, "8d3f1a6c-0e27-4b95-a1c4-7f2e5b9d6a08")
}
