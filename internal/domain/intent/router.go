package intent

import (
	"context"

	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/conversation"
	"jan-server/services/qa-api/internal/infrastructure/logger"
)

const (
	ExtraKeyIntentID   = "intent_id"
	ExtraKeyChatflowID = "chatflow_id"
)

// Source tells where a routing decision came from.
type Source string

const (
	SourceCache      Source = "cache"
	SourceClassifier Source = "classifier"
	SourceFallback   Source = "fallback"
)

// Decision is the resolved routing for one question.
type Decision struct {
	IntentID   ID
	ChatflowID string
	Source     Source
}

// Locker serializes first-time routing per conversation. Unlock must be safe to
// call exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ConversationStore is the part of the conversation service the router needs.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) (*conversation.Conversation, error)
	Update(ctx context.Context, conversationID string, params conversation.UpdateParams) bool
}

// Router resolves which chatflow handles a question. A conversation moves from
// unrouted to routed at most once; the decision is cached in its extension bag.
type Router struct {
	classifier    Classifier
	conversations ConversationStore
	routes        Routes
	locker        Locker
	log           zerolog.Logger
}

// NewRouter builds a router. locker may be nil, in which case concurrent first
// questions on the same conversation race and the last bag write wins.
func NewRouter(classifier Classifier, conversations ConversationStore, routes Routes, locker Locker, log zerolog.Logger) *Router {
	return &Router{
		classifier:    classifier,
		conversations: conversations,
		routes:        routes,
		locker:        locker,
		log:           log.With().Str("component", "intent-router").Logger(),
	}
}

// Resolve returns the routing decision. conv is nil for turns outside any
// conversation, which are always classified and never touch a bag.
func (r *Router) Resolve(ctx context.Context, question string, conv *conversation.Conversation) Decision {
	if conv == nil {
		return r.classify(ctx, question)
	}
	if decision, ok := cachedDecision(conv.Extra); ok {
		return decision
	}

	if r.locker != nil {
		unlock, err := r.locker.Lock(ctx, "qa-api:intent:"+conv.ConversationID)
		if err != nil {
			logger.WithRequest(ctx, r.log).Warn().Err(err).
				Str("conversation_id", conv.ConversationID).
				Msg("routing lock unavailable, continuing unguarded")
		} else {
			defer unlock()
			if fresh, err := r.conversations.Get(ctx, conv.ConversationID); err == nil {
				if decision, ok := cachedDecision(fresh.Extra); ok {
					return decision
				}
			}
		}
	}

	decision := r.classify(ctx, question)
	patch := conversation.Extra{
		ExtraKeyIntentID:   int(decision.IntentID),
		ExtraKeyChatflowID: decision.ChatflowID,
	}
	if !r.conversations.Update(ctx, conv.ConversationID, conversation.UpdateParams{Extra: patch}) {
		logger.WithRequest(ctx, r.log).Warn().
			Str("conversation_id", conv.ConversationID).
			Int("intent_id", int(decision.IntentID)).
			Msg("routing decision not persisted")
	} else {
		conv.Extra = conv.Extra.Merge(patch)
	}
	return decision
}

func (r *Router) classify(ctx context.Context, question string) Decision {
	log := logger.WithRequest(ctx, r.log)

	raw, err := r.classifier.Classify(ctx, BuildPrompt(question))
	if err != nil {
		log.Warn().Err(err).Int("intent_id", int(Default)).Msg("intent classification failed, using default")
		return Decision{IntentID: Default, ChatflowID: r.routes.ChatflowFor(Default), Source: SourceFallback}
	}

	id := Normalize(raw)
	source := SourceClassifier
	if int(id) != raw {
		log.Warn().Int("raw_intent_id", raw).Int("intent_id", int(id)).Msg("intent out of range, using default")
		source = SourceFallback
	}
	chatflowID := r.routes.ChatflowFor(id)
	log.Info().Int("intent_id", int(id)).Str("chatflow_id", chatflowID).Msg("intent classified")
	return Decision{IntentID: id, ChatflowID: chatflowID, Source: source}
}

func cachedDecision(extra conversation.Extra) (Decision, bool) {
	raw, ok := extra.Int(ExtraKeyIntentID)
	if !ok || raw == 0 {
		return Decision{}, false
	}
	chatflowID, ok := extra.String(ExtraKeyChatflowID)
	if !ok || chatflowID == "" {
		return Decision{}, false
	}
	return Decision{IntentID: Normalize(raw), ChatflowID: chatflowID, Source: SourceCache}, true
}
