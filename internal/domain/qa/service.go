package qa

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/chatflow"
	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/domain/diagram"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/intent"
	"jan-server/services/qa-api/internal/domain/qarecord"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// AskParams is one incoming question.
type AskParams struct {
	Username       string
	Question       string
	ConversationID *string
}

// Answer is the persisted turn of an Ask call.
type Answer struct {
	Record   *qarecord.Record
	Entities []*entity.Entity
	Decision intent.Decision
	// DiagramRewritten is true when the answer was replaced by the diagram
	// service and entity extraction was skipped.
	DiagramRewritten bool
	FirstTurn        bool
}

// Resolver picks the chatflow for a question.
type Resolver interface {
	Resolve(ctx context.Context, question string, conv *conversation.Conversation) intent.Decision
}

// TurnStore is the part of the turn repository the workflow writes through.
type TurnStore interface {
	Create(ctx context.Context, record *qarecord.Record) error
	CountByConversation(ctx context.Context, conversationID string) (int64, error)
}

// EntityExtractor persists tagged spans of an annotated answer.
type EntityExtractor interface {
	ExtractAndSave(ctx context.Context, recordID uint, annotated string) ([]*entity.Entity, error)
}

// Dependencies groups the collaborators of the question workflow.
type Dependencies struct {
	Conversations qarecord.ConversationReader
	Router        Resolver
	Engine        chatflow.Engine
	Rewriter      diagram.Rewriter
	Turns         TurnStore
	Entities      EntityExtractor
	// ExtractionChatflowID is the chatflow that tags entities in answers.
	ExtractionChatflowID string
}

// Service runs the question answering workflow.
type Service struct {
	deps Dependencies
	log  zerolog.Logger
}

// NewService creates the question workflow.
func NewService(deps Dependencies, log zerolog.Logger) *Service {
	return &Service{
		deps: deps,
		log:  log.With().Str("component", "qa-service").Logger(),
	}
}

// Ask answers one question and records the turn. Ownership is checked before
// any external system is called. Failures of the diagram service and of entity
// tagging fall back to the untouched answer; a failing conversation engine
// fails the request.
func (s *Service) Ask(ctx context.Context, params AskParams) (*Answer, error) {
	log := logger.WithRequest(ctx, s.log)

	conv, err := s.authorize(ctx, params)
	if err != nil {
		return nil, err
	}

	firstTurn := true
	conversationID := ""
	if conv != nil {
		conversationID = conv.ConversationID
		count, err := s.deps.Turns.CountByConversation(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		firstTurn = count == 0
	}

	decision := s.deps.Router.Resolve(ctx, params.Question, conv)

	prediction, err := s.deps.Engine.Predict(ctx, chatflow.PredictionRequest{
		ChatflowID:     decision.ChatflowID,
		Question:       params.Question,
		OverrideConfig: chatflow.SessionOverride(conversationID),
	})
	if err != nil {
		return nil, err
	}
	original := prediction.Text
	answerRaw := original

	rewritten := false
	if text, applied, err := s.deps.Rewriter.Rewrite(ctx, original); err != nil {
		log.Warn().Err(err).Msg("diagram rewrite failed, keeping original answer")
	} else if applied {
		answerRaw = text
		rewritten = true
	}

	annotated := answerRaw
	if !rewritten {
		annotated = s.annotate(ctx, original)
	}
	if firstTurn {
		annotated = intent.Banner(decision.IntentID, annotated)
	}

	record := &qarecord.Record{
		Username:        params.Username,
		Question:        params.Question,
		AnswerRaw:       answerRaw,
		AnswerAnnotated: annotated,
		ChatflowID:      decision.ChatflowID,
		SourceDocuments: prediction.SourceDocuments,
	}
	if conv != nil {
		record.ConversationID = &conv.ConversationID
	}
	if err := s.deps.Turns.Create(ctx, record); err != nil {
		return nil, err
	}

	entities := []*entity.Entity{}
	if !rewritten {
		created, err := s.deps.Entities.ExtractAndSave(ctx, record.ID, annotated)
		if err != nil {
			log.Warn().Err(err).Uint("qa_record_id", record.ID).Msg("entity extraction failed")
		} else {
			entities = created
		}
	}

	log.Info().
		Uint("qa_record_id", record.ID).
		Str("chatflow_id", decision.ChatflowID).
		Int("intent_id", int(decision.IntentID)).
		Str("intent_source", string(decision.Source)).
		Bool("first_turn", firstTurn).
		Bool("diagram_rewritten", rewritten).
		Int("entities", len(entities)).
		Msg("question answered")

	return &Answer{
		Record:           record,
		Entities:         entities,
		Decision:         decision,
		DiagramRewritten: rewritten,
		FirstTurn:        firstTurn,
	}, nil
}

func (s *Service) authorize(ctx context.Context, params AskParams) (*conversation.Conversation, error) {
	if params.ConversationID == nil || *params.ConversationID == "" {
		return nil, nil
	}
	conv, err := s.deps.Conversations.Get(ctx, *params.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conv.OwnedBy(params.Username) {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"no permission to access this conversation", nil, "d5a8e3f0-7b2c-4e19-936a-0f4b1c8d2e57",
			map[string]any{"conversation_id": conv.ConversationID})
	}
	return conv, nil
}

// annotate asks the engine to tag entities in answer. Any failure or blank
// output yields answer unchanged.
func (s *Service) annotate(ctx context.Context, answer string) string {
	prediction, err := s.deps.Engine.Predict(ctx, chatflow.PredictionRequest{
		ChatflowID:     s.deps.ExtractionChatflowID,
		Question:       entity.BuildExtractionPrompt(answer),
		OverrideConfig: map[string]any{},
	})
	if err != nil {
		logger.WithRequest(ctx, s.log).Warn().Err(err).Msg("entity tagging failed, using original answer")
		return answer
	}
	if strings.TrimSpace(prediction.Text) == "" {
		return answer
	}
	return prediction.Text
}
