package requests

import "jan-server/services/qa-api/internal/domain/query"

// CreateConversationRequest opens a new conversation.
type CreateConversationRequest struct {
	Username    string  `json:"username" binding:"required,max=64"`
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

// UpdateConversationRequest selectively overwrites conversation fields.
type UpdateConversationRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	IsActive    *int    `json:"is_active" binding:"omitempty,oneof=0 1"`
}

// QARequest asks one question, optionally inside a conversation.
type QARequest struct {
	Username       string  `json:"username" binding:"required,max=64"`
	Question       string  `json:"question" binding:"required"`
	ConversationID *string `json:"conversation_id"`
	// ChatflowID is accepted for compatibility; routing decides the chatflow.
	ChatflowID *string `json:"chatflow_id"`
}

// FeedbackRequest votes on a turn.
type FeedbackRequest struct {
	ID   uint   `json:"id" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// EntityClickRequest looks up the graph relations of an entity.
type EntityClickRequest struct {
	EntityID   uint   `json:"entity_id" binding:"required"`
	EntityText string `json:"entity_text" binding:"required"`
}

// PageQuery carries 1-based page and size query parameters.
type PageQuery struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

// Pagination normalizes the query into a domain pagination.
func (q PageQuery) Pagination() query.Pagination {
	return query.NewPagination(q.Page, q.Size)
}

// UserPageQuery is a page query scoped to a username.
type UserPageQuery struct {
	PageQuery
	Username string `form:"username" binding:"required"`
}
