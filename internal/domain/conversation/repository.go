package conversation

import (
	"context"

	"jan-server/services/qa-api/internal/domain/query"
)

// Repository persists conversations.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	// FindByConversationID returns a NOT_FOUND error for missing or soft-deleted rows.
	FindByConversationID(ctx context.Context, conversationID string) (*Conversation, error)
	ListByUsername(ctx context.Context, username string, pagination query.Pagination) ([]*Conversation, int64, error)
	// Update applies params in one transaction. It reports false when the
	// conversation does not exist.
	Update(ctx context.Context, conversationID string, params UpdateParams) (bool, error)
	// SoftDelete marks the conversation and all of its live turns as deleted.
	SoftDelete(ctx context.Context, conversationID string) (bool, error)
}
