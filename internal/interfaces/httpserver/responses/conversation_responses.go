package responses

import (
	"time"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/knowledgebase"
)

// ConversationInfo is a conversation in API responses. is_active is 0 or 1.
type ConversationInfo struct {
	ID             uint      `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	Username       string    `json:"username"`
	Description    *string   `json:"description"`
	IsActive       int       `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ConversationsResponse is a page of a user's conversations.
type ConversationsResponse struct {
	Total int64              `json:"total"`
	Items []ConversationInfo `json:"items"`
}

// KnowledgeBasesResponse is a page of document stores.
type KnowledgeBasesResponse struct {
	Total int                           `json:"total"`
	Items []knowledgebase.KnowledgeBase `json:"items"`
}

// KnowledgeBaseFilesResponse is a page of the files of one store.
type KnowledgeBaseFilesResponse struct {
	Total             int                  `json:"total"`
	KnowledgeBaseID   string               `json:"knowledge_base_id"`
	KnowledgeBaseName string               `json:"knowledge_base_name"`
	Items             []knowledgebase.File `json:"items"`
}

// NewConversationInfo maps a conversation.
func NewConversationInfo(c *conversation.Conversation) ConversationInfo {
	active := 0
	if c.IsActive {
		active = 1
	}
	return ConversationInfo{
		ID:             c.ID,
		ConversationID: c.ConversationID,
		Title:          c.Title,
		Username:       c.Username,
		Description:    c.Description,
		IsActive:       active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// NewConversationsResponse maps a page of conversations.
func NewConversationsResponse(items []*conversation.Conversation, total int64) ConversationsResponse {
	infos := make([]ConversationInfo, 0, len(items))
	for _, c := range items {
		infos = append(infos, NewConversationInfo(c))
	}
	return ConversationsResponse{Total: total, Items: infos}
}

// NewKnowledgeBasesResponse maps a page of stores.
func NewKnowledgeBasesResponse(page *knowledgebase.Page[knowledgebase.KnowledgeBase]) KnowledgeBasesResponse {
	items := page.Items
	if items == nil {
		items = []knowledgebase.KnowledgeBase{}
	}
	return KnowledgeBasesResponse{Total: page.Total, Items: items}
}

// NewKnowledgeBaseFilesResponse maps a page of store files.
func NewKnowledgeBaseFilesResponse(page *knowledgebase.FilesPage) KnowledgeBaseFilesResponse {
	items := page.Items
	if items == nil {
		items = []knowledgebase.File{}
	}
	return KnowledgeBaseFilesResponse{
		Total:             page.Total,
		KnowledgeBaseID:   page.KnowledgeBaseID,
		KnowledgeBaseName: page.KnowledgeBaseName,
		Items:             items,
	}
}
