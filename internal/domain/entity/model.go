package entity

import (
	"time"

	"jan-server/services/qa-api/internal/domain/graph"
)

// Entity is a tagged span extracted from an annotated answer.
type Entity struct {
	ID            uint
	QARecordID    uint
	EntityText    string
	EntityType    *string
	StartPosition int
	EndPosition   int
	// GraphCache is nil until the entity is queried for the first time.
	GraphCache *graph.Result
	ClickCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Span is one tag match inside an annotated text. Offsets count runes and
// cover the whole tagged match.
type Span struct {
	Text  string
	Start int
	End   int
}
