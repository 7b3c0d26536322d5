package conversation

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/query"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// Service exposes conversation use cases.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Conversation, error)
	Get(ctx context.Context, conversationID string) (*Conversation, error)
	List(ctx context.Context, username string, pagination query.Pagination) ([]*Conversation, int64, error)
	// Update reports false when nothing changed, including when the store failed.
	Update(ctx context.Context, conversationID string, params UpdateParams) bool
	Delete(ctx context.Context, conversationID string) (bool, error)
}

// DefaultService implements Service on top of a Repository.
type DefaultService struct {
	repo Repository
	log  zerolog.Logger
}

// NewService creates a conversation service.
func NewService(repo Repository, log zerolog.Logger) Service {
	return &DefaultService{
		repo: repo,
		log:  log.With().Str("component", "conversation-service").Logger(),
	}
}

// Create stores a new conversation, generating an id when none is supplied.
func (s *DefaultService) Create(ctx context.Context, params CreateParams) (*Conversation, error) {
	if strings.TrimSpace(params.Username) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"username is required", nil, "c1a0e6f2-3b1d-4f57-9d0e-5a1f7c2b8e01")
	}

	conversationID := strings.TrimSpace(params.ConversationID)
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	title := params.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	conv := &Conversation{
		ConversationID: conversationID,
		Title:          title,
		Username:       params.Username,
		Description:    params.Description,
		IsActive:       true,
		Extra:          Extra{},
	}
	if err := s.repo.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Get returns a live conversation.
func (s *DefaultService) Get(ctx context.Context, conversationID string) (*Conversation, error) {
	return s.repo.FindByConversationID(ctx, conversationID)
}

// List returns a page of the user's conversations, most recently updated first.
func (s *DefaultService) List(ctx context.Context, username string, pagination query.Pagination) ([]*Conversation, int64, error) {
	return s.repo.ListByUsername(ctx, username, pagination)
}

// Update applies a selective update. Store failures are logged and reported as false.
func (s *DefaultService) Update(ctx context.Context, conversationID string, params UpdateParams) bool {
	ok, err := s.repo.Update(ctx, conversationID, params)
	if err != nil {
		log := logger.WithRequest(ctx, s.log)
		var platformErr *platformerrors.PlatformError
		if errors.As(err, &platformErr) {
			platformerrors.LogError(*log, platformErr)
		} else {
			log.Error().Err(err).Str("conversation_id", conversationID).Msg("conversation update failed")
		}
		return false
	}
	return ok
}

// Delete soft-deletes the conversation and cascades to its turns.
func (s *DefaultService) Delete(ctx context.Context, conversationID string) (bool, error) {
	return s.repo.SoftDelete(ctx, conversationID)
}
