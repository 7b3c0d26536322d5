package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/graph"
)

// QAEntity represents a tagged span of an annotated answer.
type QAEntity struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	QARecordID       uint           `gorm:"column:qa_record_id;index;not null"`
	QARecord         *QARecord      `gorm:"foreignKey:QARecordID;constraint:OnDelete:CASCADE"`
	EntityText       string         `gorm:"type:varchar(255);not null"`
	EntityType       *string        `gorm:"type:varchar(64)"`
	StartPosition    int            `gorm:"not null"`
	EndPosition      int            `gorm:"not null"`
	GStoreQueryCache datatypes.JSON `gorm:"column:gstore_query_cache"`
	ClickCount       int            `gorm:"not null;default:0"`
}

// TableName specifies the table name for QAEntity.
func (QAEntity) TableName() string {
	return "qa_entities"
}

// NewSchemaQAEntity converts a domain entity into its row.
func NewSchemaQAEntity(e *entity.Entity) *QAEntity {
	return &QAEntity{
		ID:               e.ID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		QARecordID:       e.QARecordID,
		EntityText:       e.EntityText,
		EntityType:       e.EntityType,
		StartPosition:    e.StartPosition,
		EndPosition:      e.EndPosition,
		GStoreQueryCache: MarshalGraph(e.GraphCache),
		ClickCount:       e.ClickCount,
	}
}

// EtoD converts the row to a domain entity.
func (e *QAEntity) EtoD() *entity.Entity {
	return &entity.Entity{
		ID:            e.ID,
		QARecordID:    e.QARecordID,
		EntityText:    e.EntityText,
		EntityType:    e.EntityType,
		StartPosition: e.StartPosition,
		EndPosition:   e.EndPosition,
		GraphCache:    unmarshalGraph(e.GStoreQueryCache),
		ClickCount:    e.ClickCount,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// MarshalGraph encodes a cached graph result; nil stays SQL NULL.
func MarshalGraph(result *graph.Result) datatypes.JSON {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func unmarshalGraph(raw datatypes.JSON) *graph.Result {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var result graph.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	if result.Nodes == nil {
		result.Nodes = []graph.Node{}
	}
	if result.Relations == nil {
		result.Relations = []graph.Relation{}
	}
	return &result
}
