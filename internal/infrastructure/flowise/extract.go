package flowise

import (
	"encoding/json"

	"jan-server/services/qa-api/internal/domain/chatflow"
)

var (
	answerKeys     = []string{"text", "answer", "result", "message"}
	nestedDataKeys = []string{"text", "answer", "result"}
)

// ExtractText finds the answer text in a prediction payload. It looks at the
// top-level answer keys, then inside a "data" object, and otherwise renders
// the whole payload as JSON. A bare string payload is the answer itself.
func ExtractText(payload any) string {
	switch v := payload.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		if text, ok := firstString(v, answerKeys); ok {
			return text
		}
		if data, ok := v["data"].(map[string]any); ok {
			if text, ok := firstString(data, nestedDataKeys); ok {
				return text
			}
		}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(raw)
}

// ExtractSourceDocuments reads the sourceDocuments list of a prediction.
// Entries that do not look like documents are dropped.
func ExtractSourceDocuments(payload any) []chatflow.SourceDocument {
	docs := []chatflow.SourceDocument{}
	m, ok := payload.(map[string]any)
	if !ok {
		return docs
	}
	items, ok := m["sourceDocuments"].([]any)
	if !ok {
		return docs
	}
	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var doc chatflow.SourceDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		if doc.Metadata == nil {
			doc.Metadata = map[string]any{}
		}
		docs = append(docs, doc)
	}
	return docs
}

func firstString(m map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := m[key].(string); ok {
			return s, true
		}
	}
	return "", false
}
