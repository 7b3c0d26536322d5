package qarecord

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "jan-server/services/qa-api/internal/domain/qarecord"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/infrastructure/database/entities"
	"jan-server/services/qa-api/internal/infrastructure/database/transaction"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// Repository persists QA turns in the qa_history table.
type Repository struct {
	db *transaction.Database
}

// NewRepository builds a turn repository.
func NewRepository(db *transaction.Database) *Repository {
	return &Repository{db: db}
}

// Create appends a turn.
func (r *Repository) Create(ctx context.Context, record *domain.Record) error {
	entity := entities.NewSchemaQARecord(record)
	if err := r.db.GetTx(ctx).Omit("Conversation").Create(entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create qa record", err, "8c5e2a14-3f9b-4d60-b7a1-0e6d4c9f2b83")
	}
	record.ID = entity.ID
	record.CreatedAt = entity.CreatedAt
	record.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByID fetches a turn regardless of its deleted flag.
func (r *Repository) FindByID(ctx context.Context, id uint) (*domain.Record, error) {
	var entity entities.QARecord
	if err := r.db.GetTx(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"qa record not found", nil, "2d7b9f40-6a1c-4e85-93d2-5f0a8c3e1b67",
				map[string]any{"qa_record_id": id})
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find qa record", err, "a0e3c6d9-1b4f-4a72-8e5c-9d2b7f0a4c16")
	}
	return entity.EtoD(), nil
}

// CountByConversation counts the live turns of a conversation.
func (r *Repository) CountByConversation(ctx context.Context, conversationID string) (int64, error) {
	var total int64
	if err := r.db.GetTx(ctx).Model(&entities.QARecord{}).
		Where("conversation_id = ? AND is_deleted = 0", conversationID).
		Count(&total).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count qa records", err, "f4b1d8e2-7c3a-4096-a5e8-1c6f9b2d0e73")
	}
	return total, nil
}

// ListByConversation pages the live turns of a conversation, oldest first.
func (r *Repository) ListByConversation(ctx context.Context, conversationID string, pagination query.Pagination) ([]*domain.Record, int64, error) {
	return r.list(ctx, pagination, "ASC", "conversation_id = ? AND is_deleted = 0", conversationID)
}

// ListByUsername pages the live turns of a user, newest first.
func (r *Repository) ListByUsername(ctx context.Context, username string, pagination query.Pagination) ([]*domain.Record, int64, error) {
	return r.list(ctx, pagination, "DESC", "username = ? AND is_deleted = 0", username)
}

func (r *Repository) list(ctx context.Context, pagination query.Pagination, direction string, where string, args ...any) ([]*domain.Record, int64, error) {
	scoped := func() *gorm.DB {
		return r.db.GetTx(ctx).Model(&entities.QARecord{}).Where(where, args...)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count qa records", err, "b7d2f5a8-0e1c-4b39-96f4-3a8e1d5c7b20")
	}

	var rows []entities.QARecord
	if err := scoped().
		Order("created_at " + direction).
		Order("id " + direction).
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list qa records", err, "c3a9e6b1-5d8f-4072-b1e4-7f0c2a9d6e35")
	}

	records := make([]*domain.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].EtoD()
	}
	return records, total, nil
}

// IncrementFeedback adds one like or dislike to a live turn.
func (r *Repository) IncrementFeedback(ctx context.Context, id uint, feedback domain.FeedbackType) (bool, error) {
	column := "likes"
	if feedback == domain.FeedbackDislike {
		column = "dislikes"
	}
	res := r.db.GetTx(ctx).Model(&entities.QARecord{}).
		Where("id = ? AND is_deleted = 0", id).
		Updates(map[string]any{
			column:       gorm.Expr(column + " + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to record feedback", res.Error, "d8f0b3c6-2a5e-4c91-8d7b-4e1a6f3c9b52")
	}
	return res.RowsAffected > 0, nil
}

// SoftDelete marks a live turn as deleted.
func (r *Repository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.GetTx(ctx).Model(&entities.QARecord{}).
		Where("id = ? AND is_deleted = 0", id).
		Updates(map[string]any{"is_deleted": 1, "updated_at": time.Now()})
	if res.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete qa record", res.Error, "e5c7a0d3-9b2f-4e68-a4c1-8f3d6b0e2a79")
	}
	return res.RowsAffected > 0, nil
}
