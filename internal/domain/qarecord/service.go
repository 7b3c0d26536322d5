package qarecord

import (
	"context"

	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// Turn is a record together with its extracted entities.
type Turn struct {
	Record   *Record
	Entities []*entity.Entity
}

// TurnPage is one page of turns.
type TurnPage struct {
	Total int64
	Items []Turn
}

// ConversationTurns is a page of turns inside a conversation.
type ConversationTurns struct {
	TurnPage
	ConversationID    string
	ConversationTitle string
}

// EntityLister loads entities for a batch of turns.
type EntityLister interface {
	ForRecords(ctx context.Context, recordIDs []uint) (map[uint][]*entity.Entity, error)
}

// ConversationReader resolves a live conversation.
type ConversationReader interface {
	Get(ctx context.Context, conversationID string) (*conversation.Conversation, error)
}

// Service implements history, feedback and deletion of turns.
type Service struct {
	repo          Repository
	entities      EntityLister
	conversations ConversationReader
	log           zerolog.Logger
}

// NewService creates a turn service.
func NewService(repo Repository, entities EntityLister, conversations ConversationReader, log zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		entities:      entities,
		conversations: conversations,
		log:           log.With().Str("component", "qarecord-service").Logger(),
	}
}

// History returns the user's live turns, newest first.
func (s *Service) History(ctx context.Context, username string, pagination query.Pagination) (*TurnPage, error) {
	records, total, err := s.repo.ListByUsername(ctx, username, pagination)
	if err != nil {
		return nil, err
	}
	items, err := s.withEntities(ctx, records)
	if err != nil {
		return nil, err
	}
	return &TurnPage{Total: total, Items: items}, nil
}

// ConversationTurns returns the live turns of a conversation, oldest first.
func (s *Service) ConversationTurns(ctx context.Context, conversationID string, pagination query.Pagination) (*ConversationTurns, error) {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	records, total, err := s.repo.ListByConversation(ctx, conversationID, pagination)
	if err != nil {
		return nil, err
	}
	items, err := s.withEntities(ctx, records)
	if err != nil {
		return nil, err
	}
	return &ConversationTurns{
		TurnPage:          TurnPage{Total: total, Items: items},
		ConversationID:    conversationID,
		ConversationTitle: conv.Title,
	}, nil
}

// Feedback counts a like or dislike on a live turn.
func (s *Service) Feedback(ctx context.Context, id uint, feedback FeedbackType) error {
	if !feedback.Valid() {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"type must be like or dislike", nil, "4e1c7a90-2f6b-4d83-b5e0-1a9c3d7f2e46",
			map[string]any{"type": string(feedback)})
	}
	ok, err := s.repo.IncrementFeedback(ctx, id, feedback)
	if err != nil {
		return err
	}
	if !ok {
		return recordNotFound(ctx, id)
	}
	logger.WithRequest(ctx, s.log).Debug().Uint("qa_record_id", id).Str("type", string(feedback)).Msg("feedback recorded")
	return nil
}

// Delete soft-deletes a live turn.
func (s *Service) Delete(ctx context.Context, id uint) error {
	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return recordNotFound(ctx, id)
	}
	return nil
}

func (s *Service) withEntities(ctx context.Context, records []*Record) ([]Turn, error) {
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	byRecord, err := s.entities.ForRecords(ctx, ids)
	if err != nil {
		return nil, err
	}
	turns := make([]Turn, 0, len(records))
	for _, r := range records {
		ents := byRecord[r.ID]
		if ents == nil {
			ents = []*entity.Entity{}
		}
		turns = append(turns, Turn{Record: r, Entities: ents})
	}
	return turns, nil
}

func recordNotFound(ctx context.Context, id uint) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"record not found or deleted", nil, "9a2d5e17-6c3b-4f04-8e71-b0d4c2a6f935",
		map[string]any{"qa_record_id": id})
}
