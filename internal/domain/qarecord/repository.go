package qarecord

import (
	"context"

	"jan-server/services/qa-api/internal/domain/query"
)

// Repository persists QA turns. Soft-deleted turns are invisible to every
// read except FindByID.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id uint) (*Record, error)
	CountByConversation(ctx context.Context, conversationID string) (int64, error)
	// ListByConversation orders turns oldest first.
	ListByConversation(ctx context.Context, conversationID string, pagination query.Pagination) ([]*Record, int64, error)
	// ListByUsername orders turns newest first.
	ListByUsername(ctx context.Context, username string, pagination query.Pagination) ([]*Record, int64, error)
	// IncrementFeedback reports false for missing or soft-deleted turns.
	IncrementFeedback(ctx context.Context, id uint, feedback FeedbackType) (bool, error)
	// SoftDelete reports false for missing or already deleted turns.
	SoftDelete(ctx context.Context, id uint) (bool, error)
}
