package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	domain "jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/infrastructure/database/entities"
	"jan-server/services/qa-api/internal/infrastructure/database/transaction"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// Repository persists conversations.
type Repository struct {
	db  *transaction.Database
	log zerolog.Logger
}

// NewRepository builds a conversation repository.
func NewRepository(db *transaction.Database, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("component", "conversation-repository").Logger(),
	}
}

// Create inserts the conversation record.
func (r *Repository) Create(ctx context.Context, conv *domain.Conversation) error {
	entity := entities.NewSchemaConversation(conv)

	if err := r.db.GetTx(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				fmt.Sprintf("conversation already exists: %s", conv.ConversationID), err,
				"3e9a1c47-8b2d-4f60-a5c3-6d0e7f1b9a22")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation", err, "5b2c8e10-4d7f-4a93-b16e-2f9d0c3a7e58")
	}

	conv.ID = entity.ID
	conv.CreatedAt = entity.CreatedAt
	conv.UpdatedAt = entity.UpdatedAt
	return nil
}

// FindByConversationID fetches a live conversation.
func (r *Repository) FindByConversationID(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	entity, err := r.findLive(r.db.GetTx(ctx), conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"conversation not found", nil, "7c4d2a91-0e6b-4b38-9f57-1a8e3d6c0b44",
				map[string]any{"conversation_id": conversationID})
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation", err, "0d8f6b23-9a1e-4c75-82b4-5e3f7a0c1d96")
	}
	return entity.EtoD(), nil
}

// ListByUsername returns live conversations of a user, most recently updated first.
func (r *Repository) ListByUsername(ctx context.Context, username string, pagination query.Pagination) ([]*domain.Conversation, int64, error) {
	live := func() *gorm.DB {
		return r.db.GetTx(ctx).Model(&entities.Conversation{}).
			Where("username = ? AND is_deleted = 0", username)
	}

	var total int64
	if err := live().Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count conversations", err, "1f7e3b58-2c0a-4d96-a4e1-8b6d9c2f0a37")
	}

	var rows []entities.Conversation
	if err := live().Order("updated_at DESC").Order("id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations", err, "9b0a4e26-7d3c-4f81-b5a9-3c1e8f6d2b70")
	}

	result := make([]*domain.Conversation, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, total, nil
}

// Update applies params in one transaction. Extra is shallow-merged into the
// stored bag; a stored bag that is not an object is logged and replaced.
func (r *Repository) Update(ctx context.Context, conversationID string, params domain.UpdateParams) (bool, error) {
	found := false
	err := r.db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		entity, err := r.findLive(tx, conversationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		updates := map[string]any{"updated_at": time.Now()}
		if params.Title != nil {
			updates["title"] = *params.Title
		}
		if params.Description != nil {
			updates["description"] = *params.Description
		}
		if params.IsActive != nil {
			if *params.IsActive {
				updates["is_active"] = 1
			} else {
				updates["is_active"] = 0
			}
		}
		if params.Extra != nil {
			current, ok := domain.DecodeExtra(entity.Extra)
			if !ok {
				logger.WithRequest(ctx, r.log).Warn().
					Str("conversation_id", conversationID).
					Str("stored_extra", string(entity.Extra)).
					Msg("stored extra is not an object, replacing it")
			}
			updates["extra"] = entities.MarshalExtra(current.Merge(params.Extra))
		}

		return tx.Model(&entities.Conversation{}).Where("id = ?", entity.ID).Updates(updates).Error
	})
	if err != nil {
		return false, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation", err, "4a6c0e82-1b3d-4e57-9f20-7d5b8a1c3e69",
			map[string]any{"conversation_id": conversationID})
	}
	return found, nil
}

// SoftDelete marks the conversation and all of its live turns as deleted in
// one transaction.
func (r *Repository) SoftDelete(ctx context.Context, conversationID string) (bool, error) {
	deleted := false
	err := r.db.InTx(ctx, func(ctx context.Context, tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&entities.Conversation{}).
			Where("conversation_id = ? AND is_deleted = 0", conversationID).
			Updates(map[string]any{"is_deleted": 1, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&entities.QARecord{}).
			Where("conversation_id = ? AND is_deleted = 0", conversationID).
			Updates(map[string]any{"is_deleted": 1, "updated_at": now}).Error
	})
	if err != nil {
		return false, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete conversation", err, "6e1d9b35-0c8a-4f72-a3b6-9e4c2d7f1a08",
			map[string]any{"conversation_id": conversationID})
	}
	return deleted, nil
}

func (r *Repository) findLive(db *gorm.DB, conversationID string) (*entities.Conversation, error) {
	var entity entities.Conversation
	if err := db.Where("conversation_id = ? AND is_deleted = 0", conversationID).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}
