package entity

import (
	"context"

	"jan-server/services/qa-api/internal/domain/graph"
)

// Repository persists extracted entities.
type Repository interface {
	FindByRecordID(ctx context.Context, recordID uint) ([]*Entity, error)
	// FindByRecordIDs groups entities by their owning turn, ordered by id.
	FindByRecordIDs(ctx context.Context, recordIDs []uint) (map[uint][]*Entity, error)
	FindByID(ctx context.Context, id uint) (*Entity, error)
	CreateBatch(ctx context.Context, entities []*Entity) error
	IncrementClickCount(ctx context.Context, id uint) error
	// SetGraphCacheIfEmpty writes the cache only when none is stored yet and
	// reports whether this call wrote it.
	SetGraphCacheIfEmpty(ctx context.Context, id uint, result *graph.Result) (bool, error)
}
