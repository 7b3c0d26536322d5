package chatflow

import "context"

// SourceDocument is a retrieval reference returned alongside an answer.
type SourceDocument struct {
	PageContent string         `json:"pageContent"`
	Metadata    map[string]any `json:"metadata"`
}

// PredictionRequest targets one chatflow (pipeline) of the conversation engine.
type PredictionRequest struct {
	ChatflowID     string
	Question       string
	OverrideConfig map[string]any
}

// Prediction is the normalized engine answer.
type Prediction struct {
	Text            string
	SourceDocuments []SourceDocument
}

// Engine is the conversation engine that answers questions.
type Engine interface {
	Predict(ctx context.Context, req PredictionRequest) (*Prediction, error)
}

// SessionOverride builds the override configuration that keys the engine's own
// multi-turn memory to a conversation.
func SessionOverride(conversationID string) map[string]any {
	if conversationID == "" {
		return map[string]any{}
	}
	return map[string]any{"sessionId": conversationID}
}
