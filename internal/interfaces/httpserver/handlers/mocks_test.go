package handlers_test

import (
	"context"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/knowledgebase"
	"jan-server/services/qa-api/internal/domain/qa"
	"jan-server/services/qa-api/internal/domain/qarecord"
	"jan-server/services/qa-api/internal/domain/query"
)

type MockQAService struct {
	AskFunc func(ctx context.Context, params qa.AskParams) (*qa.Answer, error)
}

func (m *MockQAService) Ask(ctx context.Context, params qa.AskParams) (*qa.Answer, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, params)
	}
	return nil, nil
}

type MockTurnService struct {
	HistoryFunc           func(ctx context.Context, username string, pagination query.Pagination) (*qarecord.TurnPage, error)
	ConversationTurnsFunc func(ctx context.Context, conversationID string, pagination query.Pagination) (*qarecord.ConversationTurns, error)
	FeedbackFunc          func(ctx context.Context, id uint, feedback qarecord.FeedbackType) error
	DeleteFunc            func(ctx context.Context, id uint) error
}

func (m *MockTurnService) History(ctx context.Context, username string, pagination query.Pagination) (*qarecord.TurnPage, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, username, pagination)
	}
	return &qarecord.TurnPage{}, nil
}

func (m *MockTurnService) ConversationTurns(ctx context.Context, conversationID string, pagination query.Pagination) (*qarecord.ConversationTurns, error) {
	if m.ConversationTurnsFunc != nil {
		return m.ConversationTurnsFunc(ctx, conversationID, pagination)
	}
	return &qarecord.ConversationTurns{}, nil
}

func (m *MockTurnService) Feedback(ctx context.Context, id uint, feedback qarecord.FeedbackType) error {
	if m.FeedbackFunc != nil {
		return m.FeedbackFunc(ctx, id, feedback)
	}
	return nil
}

func (m *MockTurnService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type MockEntityService struct {
	QueryFunc func(ctx context.Context, entityID uint, entityText string) (*entity.QueryResult, error)
}

func (m *MockEntityService) Query(ctx context.Context, entityID uint, entityText string) (*entity.QueryResult, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, entityID, entityText)
	}
	return nil, nil
}

type MockConversationService struct {
	CreateFunc func(ctx context.Context, params conversation.CreateParams) (*conversation.Conversation, error)
	GetFunc    func(ctx context.Context, conversationID string) (*conversation.Conversation, error)
	ListFunc   func(ctx context.Context, username string, pagination query.Pagination) ([]*conversation.Conversation, int64, error)
	UpdateFunc func(ctx context.Context, conversationID string, params conversation.UpdateParams) bool
	DeleteFunc func(ctx context.Context, conversationID string) (bool, error)
}

func (m *MockConversationService) Create(ctx context.Context, params conversation.CreateParams) (*conversation.Conversation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &conversation.Conversation{ConversationID: "c1", Username: params.Username, Title: params.Title, IsActive: true}, nil
}

func (m *MockConversationService) Get(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, conversationID)
	}
	return nil, nil
}

func (m *MockConversationService) List(ctx context.Context, username string, pagination query.Pagination) ([]*conversation.Conversation, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, username, pagination)
	}
	return nil, 0, nil
}

func (m *MockConversationService) Update(ctx context.Context, conversationID string, params conversation.UpdateParams) bool {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, conversationID, params)
	}
	return true
}

func (m *MockConversationService) Delete(ctx context.Context, conversationID string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, conversationID)
	}
	return true, nil
}

type MockKnowledgeBaseService struct {
	ListFunc  func(ctx context.Context, pagination query.Pagination) (*knowledgebase.Page[knowledgebase.KnowledgeBase], error)
	FilesFunc func(ctx context.Context, id string, pagination query.Pagination) (*knowledgebase.FilesPage, error)
}

func (m *MockKnowledgeBaseService) List(ctx context.Context, pagination query.Pagination) (*knowledgebase.Page[knowledgebase.KnowledgeBase], error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, pagination)
	}
	return &knowledgebase.Page[knowledgebase.KnowledgeBase]{}, nil
}

func (m *MockKnowledgeBaseService) Files(ctx context.Context, id string, pagination query.Pagination) (*knowledgebase.FilesPage, error) {
	if m.FilesFunc != nil {
		return m.FilesFunc(ctx, id, pagination)
	}
	return &knowledgebase.FilesPage{}, nil
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
