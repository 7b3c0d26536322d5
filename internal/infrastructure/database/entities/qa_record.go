package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"jan-server/services/qa-api/internal/domain/chatflow"
	"jan-server/services/qa-api/internal/domain/qarecord"
)

const extraKeySourceDocuments = "source_documents"

// QARecord represents one question/answer turn.
type QARecord struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Username        string         `gorm:"type:varchar(64);index;not null"`
	ConversationID  *string        `gorm:"column:conversation_id;type:varchar(64);index"`
	Conversation    *Conversation  `gorm:"foreignKey:ConversationID;references:ConversationID"`
	Question        string         `gorm:"type:text;not null"`
	AnswerRaw       string         `gorm:"type:text"`
	AnswerAnnotated string         `gorm:"type:text"`
	ChatflowID      string         `gorm:"column:chatflow_id;type:varchar(64)"`
	Likes           int            `gorm:"not null;default:0"`
	Dislikes        int            `gorm:"not null;default:0"`
	IsDeleted       int            `gorm:"not null;default:0"`
	Extra           datatypes.JSON `gorm:"column:extra"`
}

// TableName specifies the table name for QARecord.
func (QARecord) TableName() string {
	return "qa_history"
}

type recordExtra struct {
	SourceDocuments []chatflow.SourceDocument `json:"source_documents"`
}

// NewSchemaQARecord converts a domain record into its row. Source documents
// are kept in the extension bag, which stays NULL when there are none.
func NewSchemaQARecord(r *qarecord.Record) *QARecord {
	row := &QARecord{
		ID:              r.ID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Username:        r.Username,
		ConversationID:  r.ConversationID,
		Question:        r.Question,
		AnswerRaw:       r.AnswerRaw,
		AnswerAnnotated: r.AnswerAnnotated,
		ChatflowID:      r.ChatflowID,
		Likes:           r.Likes,
		Dislikes:        r.Dislikes,
		IsDeleted:       boolToInt(r.IsDeleted),
	}
	if len(r.SourceDocuments) > 0 {
		if data, err := json.Marshal(recordExtra{SourceDocuments: r.SourceDocuments}); err == nil {
			row.Extra = datatypes.JSON(data)
		}
	}
	return row
}

// EtoD converts the row to a domain record.
func (r *QARecord) EtoD() *qarecord.Record {
	return &qarecord.Record{
		ID:              r.ID,
		Username:        r.Username,
		ConversationID:  r.ConversationID,
		Question:        r.Question,
		AnswerRaw:       r.AnswerRaw,
		AnswerAnnotated: r.AnswerAnnotated,
		ChatflowID:      r.ChatflowID,
		Likes:           r.Likes,
		Dislikes:        r.Dislikes,
		IsDeleted:       r.IsDeleted != 0,
		SourceDocuments: sourceDocuments(r.Extra),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func sourceDocuments(raw datatypes.JSON) []chatflow.SourceDocument {
	docs := []chatflow.SourceDocument{}
	if len(raw) == 0 {
		return docs
	}
	var extra recordExtra
	if err := json.Unmarshal(raw, &extra); err != nil || extra.SourceDocuments == nil {
		return docs
	}
	return extra.SourceDocuments
}
