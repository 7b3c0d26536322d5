package entity

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/graph"
	"jan-server/services/qa-api/internal/infrastructure/database/entities"
	"jan-server/services/qa-api/internal/infrastructure/database/transaction"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// Repository persists extracted entities in the qa_entities table.
type Repository struct {
	db *transaction.Database
}

// NewRepository builds an entity repository.
func NewRepository(db *transaction.Database) *Repository {
	return &Repository{db: db}
}

// FindByRecordID lists the entities of one turn in insertion order.
func (r *Repository) FindByRecordID(ctx context.Context, recordID uint) ([]*domain.Entity, error) {
	var rows []entities.QAEntity
	if err := r.db.GetTx(ctx).
		Where("qa_record_id = ?", recordID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list entities", err, "1a4d7b0e-3c6f-4982-b5a8-6e9c2f1d4b07")
	}
	result := make([]*domain.Entity, len(rows))
	for i := range rows {
		result[i] = rows[i].EtoD()
	}
	return result, nil
}

// FindByRecordIDs groups the entities of several turns by turn id.
func (r *Repository) FindByRecordIDs(ctx context.Context, recordIDs []uint) (map[uint][]*domain.Entity, error) {
	grouped := make(map[uint][]*domain.Entity, len(recordIDs))
	if len(recordIDs) == 0 {
		return grouped, nil
	}

	var rows []entities.QAEntity
	if err := r.db.GetTx(ctx).
		Where("qa_record_id IN ?", recordIDs).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list entities", err, "2b5e8c1f-4d7a-4093-86b9-7f0d3a2e5c18")
	}
	for i := range rows {
		e := rows[i].EtoD()
		grouped[e.QARecordID] = append(grouped[e.QARecordID], e)
	}
	return grouped, nil
}

// FindByID fetches one entity.
func (r *Repository) FindByID(ctx context.Context, id uint) (*domain.Entity, error) {
	var row entities.QAEntity
	if err := r.db.GetTx(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"entity not found", nil, "3c6f9d2a-5e8b-4104-97ca-8a1e4b3f6d29",
				map[string]any{"entity_id": id})
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find entity", err, "4d7a0e3b-6f9c-4215-a8db-9b2f5c4a7e30")
	}
	return row.EtoD(), nil
}

// CreateBatch inserts entities in one statement and copies back their ids.
func (r *Repository) CreateBatch(ctx context.Context, batch []*domain.Entity) error {
	if len(batch) == 0 {
		return nil
	}
	rows := make([]*entities.QAEntity, len(batch))
	for i, e := range batch {
		rows[i] = entities.NewSchemaQAEntity(e)
	}
	if err := r.db.GetTx(ctx).Omit("QARecord").Create(&rows).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create entities", err, "5e8b1f4c-7a0d-4326-b9ec-0c3a6d5b8f41")
	}
	for i, row := range rows {
		batch[i].ID = row.ID
		batch[i].CreatedAt = row.CreatedAt
		batch[i].UpdatedAt = row.UpdatedAt
	}
	return nil
}

// IncrementClickCount adds one click to an entity.
func (r *Repository) IncrementClickCount(ctx context.Context, id uint) error {
	res := r.db.GetTx(ctx).Model(&entities.QAEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"click_count": gorm.Expr("click_count + 1"),
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count entity click", res.Error, "6f9c2a5d-8b1e-4437-8afd-1d4b7e6c9a52")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"entity not found", nil, "7a0d3b6e-9c2f-4548-9b0e-2e5c8f7d0b63",
			map[string]any{"entity_id": id})
	}
	return nil
}

// SetGraphCacheIfEmpty stores result only when the entity has no cache yet.
func (r *Repository) SetGraphCacheIfEmpty(ctx context.Context, id uint, result *graph.Result) (bool, error) {
	res := r.db.GetTx(ctx).Model(&entities.QAEntity{}).
		Where("id = ? AND gstore_query_cache IS NULL", id).
		Updates(map[string]any{
			"gstore_query_cache": entities.MarshalGraph(result),
			"updated_at":         time.Now(),
		})
	if res.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to cache graph result", res.Error, "8b1e4c7f-0d3a-4659-ac1f-3f6d9a8e1c74")
	}
	return res.RowsAffected > 0, nil
}
