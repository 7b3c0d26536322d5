package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"jan-server/services/qa-api/internal/domain/conversation"
)

// Conversation represents the database schema for conversations.
type Conversation struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	ConversationID string         `gorm:"column:conversation_id;type:varchar(64);uniqueIndex;not null"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Username       string         `gorm:"type:varchar(64);index;not null"`
	Description    *string        `gorm:"type:text"`
	IsActive       int            `gorm:"not null;default:1"`
	IsDeleted      int            `gorm:"not null;default:0"`
	Extra          datatypes.JSON `gorm:"column:extra"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// NewSchemaConversation converts a domain conversation into its row.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		ID:             c.ID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
		ConversationID: c.ConversationID,
		Title:          c.Title,
		Username:       c.Username,
		Description:    c.Description,
		IsActive:       boolToInt(c.IsActive),
		IsDeleted:      boolToInt(c.IsDeleted),
		Extra:          MarshalExtra(c.Extra),
	}
}

// EtoD converts the row to a domain conversation. A stored bag that is not an
// object decodes to an empty bag.
func (c *Conversation) EtoD() *conversation.Conversation {
	extra, _ := conversation.DecodeExtra(c.Extra)
	return &conversation.Conversation{
		ID:             c.ID,
		ConversationID: c.ConversationID,
		Title:          c.Title,
		Username:       c.Username,
		Description:    c.Description,
		IsActive:       c.IsActive != 0,
		IsDeleted:      c.IsDeleted != 0,
		Extra:          extra,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// MarshalExtra encodes a bag; nil bags are stored as SQL NULL.
func MarshalExtra(extra conversation.Extra) datatypes.JSON {
	if extra == nil {
		return nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
