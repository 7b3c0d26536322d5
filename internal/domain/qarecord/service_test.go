package qarecord

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

type mockRepository struct {
	ListByUsernameFunc     func(ctx context.Context, username string, pagination query.Pagination) ([]*Record, int64, error)
	ListByConversationFunc func(ctx context.Context, conversationID string, pagination query.Pagination) ([]*Record, int64, error)
	IncrementFeedbackFunc  func(ctx context.Context, id uint, feedback FeedbackType) (bool, error)
	SoftDeleteFunc         func(ctx context.Context, id uint) (bool, error)
	feedbackCalls          int
}

func (m *mockRepository) Create(ctx context.Context, record *Record) error { return nil }

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Record, error) { return nil, nil }

func (m *mockRepository) CountByConversation(ctx context.Context, conversationID string) (int64, error) {
	return 0, nil
}

func (m *mockRepository) ListByConversation(ctx context.Context, conversationID string, pagination query.Pagination) ([]*Record, int64, error) {
	if m.ListByConversationFunc != nil {
		return m.ListByConversationFunc(ctx, conversationID, pagination)
	}
	return nil, 0, nil
}

func (m *mockRepository) ListByUsername(ctx context.Context, username string, pagination query.Pagination) ([]*Record, int64, error) {
	if m.ListByUsernameFunc != nil {
		return m.ListByUsernameFunc(ctx, username, pagination)
	}
	return nil, 0, nil
}

func (m *mockRepository) IncrementFeedback(ctx context.Context, id uint, feedback FeedbackType) (bool, error) {
	m.feedbackCalls++
	if m.IncrementFeedbackFunc != nil {
		return m.IncrementFeedbackFunc(ctx, id, feedback)
	}
	return true, nil
}

func (m *mockRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id)
	}
	return true, nil
}

type mockEntityLister struct {
	byRecord map[uint][]*entity.Entity
	asked    []uint
}

func (m *mockEntityLister) ForRecords(ctx context.Context, recordIDs []uint) (map[uint][]*entity.Entity, error) {
	m.asked = recordIDs
	return m.byRecord, nil
}

type mockConversationReader struct {
	GetFunc func(ctx context.Context, conversationID string) (*conversation.Conversation, error)
}

func (m *mockConversationReader) Get(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, conversationID)
	}
	return &conversation.Conversation{ConversationID: conversationID, Title: conversation.DefaultTitle}, nil
}

func TestHistoryAttachesEntities(t *testing.T) {
	repo := &mockRepository{ListByUsernameFunc: func(_ context.Context, username string, p query.Pagination) ([]*Record, int64, error) {
		assert.Equal(t, "alice", username)
		assert.Equal(t, 10, p.Offset())
		return []*Record{{ID: 3}, {ID: 2}}, 12, nil
	}}
	lister := &mockEntityLister{byRecord: map[uint][]*entity.Entity{3: {{ID: 9, EntityText: "坦克"}}}}
	svc := NewService(repo, lister, &mockConversationReader{}, zerolog.Nop())

	page, err := svc.History(context.Background(), "alice", query.NewPagination(2, 10))
	require.NoError(t, err)

	assert.Equal(t, int64(12), page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, []uint{3, 2}, lister.asked)
	assert.Len(t, page.Items[0].Entities, 1)
	assert.NotNil(t, page.Items[1].Entities)
	assert.Empty(t, page.Items[1].Entities)
}

func TestConversationTurnsIncludesTitle(t *testing.T) {
	repo := &mockRepository{ListByConversationFunc: func(_ context.Context, id string, _ query.Pagination) ([]*Record, int64, error) {
		return []*Record{{ID: 1, ConversationID: &id}}, 1, nil
	}}
	reader := &mockConversationReader{GetFunc: func(_ context.Context, id string) (*conversation.Conversation, error) {
		return &conversation.Conversation{ConversationID: id, Title: "装备保养"}, nil
	}}
	svc := NewService(repo, &mockEntityLister{}, reader, zerolog.Nop())

	turns, err := svc.ConversationTurns(context.Background(), "c1", query.NewPagination(1, 10))
	require.NoError(t, err)

	assert.Equal(t, "c1", turns.ConversationID)
	assert.Equal(t, "装备保养", turns.ConversationTitle)
	assert.Equal(t, int64(1), turns.Total)
}

func TestConversationTurnsUnknownConversation(t *testing.T) {
	reader := &mockConversationReader{GetFunc: func(ctx context.Context, _ string) (*conversation.Conversation, error) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
	}}
	svc := NewService(&mockRepository{}, &mockEntityLister{}, reader, zerolog.Nop())

	_, err := svc.ConversationTurns(context.Background(), "gone", query.NewPagination(1, 10))

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestFeedbackRejectsUnknownType(t *testing.T) {
	repo := &mockRepository{}
	svc := NewService(repo, &mockEntityLister{}, &mockConversationReader{}, zerolog.Nop())

	err := svc.Feedback(context.Background(), 1, FeedbackType("love"))

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.Zero(t, repo.feedbackCalls)
}

func TestFeedbackMissingRecord(t *testing.T) {
	repo := &mockRepository{IncrementFeedbackFunc: func(context.Context, uint, FeedbackType) (bool, error) {
		return false, nil
	}}
	svc := NewService(repo, &mockEntityLister{}, &mockConversationReader{}, zerolog.Nop())

	err := svc.Feedback(context.Background(), 1, FeedbackDislike)

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestDelete(t *testing.T) {
	deleted := map[uint]bool{}
	repo := &mockRepository{SoftDeleteFunc: func(_ context.Context, id uint) (bool, error) {
		if deleted[id] {
			return false, nil
		}
		deleted[id] = true
		return true, nil
	}}
	svc := NewService(repo, &mockEntityLister{}, &mockConversationReader{}, zerolog.Nop())

	require.NoError(t, svc.Delete(context.Background(), 4))
	err := svc.Delete(context.Background(), 4)

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}
