package conversation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const DefaultTitle = "新对话"

// Extra is the open-ended extension bag attached to a conversation.
type Extra map[string]any

// Merge returns a shallow merge of patch over e. Neither input is modified.
func (e Extra) Merge(patch Extra) Extra {
	merged := make(Extra, len(e)+len(patch))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// Int reads an integral value, accepting JSON numbers and numeric strings.
func (e Extra) Int(key string) (int, bool) {
	switch v := e[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// String reads a string value.
func (e Extra) String(key string) (string, bool) {
	v, ok := e[key].(string)
	return v, ok
}

// DecodeExtra parses a stored bag. ok is false when the stored JSON is present
// but is not an object; callers treat that as a data-integrity anomaly.
func DecodeExtra(raw []byte) (Extra, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Extra{}, true
	}
	var extra Extra
	if err := json.Unmarshal(raw, &extra); err != nil {
		return Extra{}, false
	}
	if extra == nil {
		extra = Extra{}
	}
	return extra, true
}

// Conversation is a named thread of QA turns owned by a single username.
type Conversation struct {
	ID             uint
	ConversationID string
	Title          string
	Username       string
	Description    *string
	IsActive       bool
	IsDeleted      bool
	Extra          Extra
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnedBy reports whether username owns the conversation.
func (c *Conversation) OwnedBy(username string) bool {
	return c.Username == username
}

// CreateParams carries the inputs for a new conversation.
type CreateParams struct {
	ConversationID string
	Username       string
	Title          string
	Description    *string
}

// UpdateParams selectively overwrites fields; nil fields are left untouched.
// Extra is merged into the stored bag rather than replacing it.
type UpdateParams struct {
	Title       *string
	Description *string
	IsActive    *bool
	Extra       Extra
}

// IsEmpty reports whether the update carries no changes.
func (p UpdateParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.IsActive == nil && p.Extra == nil
}
