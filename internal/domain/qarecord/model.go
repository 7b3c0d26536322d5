package qarecord

import (
	"time"

	"jan-server/services/qa-api/internal/domain/chatflow"
)

// FeedbackType is a like or dislike vote on a turn.
type FeedbackType string

const (
	FeedbackLike    FeedbackType = "like"
	FeedbackDislike FeedbackType = "dislike"
)

// Valid reports whether the feedback type is supported.
func (f FeedbackType) Valid() bool {
	return f == FeedbackLike || f == FeedbackDislike
}

// Record is one persisted question/answer turn.
type Record struct {
	ID              uint
	Username        string
	ConversationID  *string
	Question        string
	AnswerRaw       string
	AnswerAnnotated string
	ChatflowID      string
	Likes           int
	Dislikes        int
	IsDeleted       bool
	SourceDocuments []chatflow.SourceDocument
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
