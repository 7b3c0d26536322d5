package responses

import (
	"time"

	"jan-server/services/qa-api/internal/domain/chatflow"
	"jan-server/services/qa-api/internal/domain/entity"
	"jan-server/services/qa-api/internal/domain/graph"
	"jan-server/services/qa-api/internal/domain/qa"
	"jan-server/services/qa-api/internal/domain/qarecord"
)

// EntityInfo is an extracted entity in API responses.
type EntityInfo struct {
	ID            uint    `json:"id"`
	EntityText    string  `json:"entity_text"`
	EntityType    *string `json:"entity_type"`
	StartPosition int     `json:"start_position"`
	EndPosition   int     `json:"end_position"`
	ClickCount    int     `json:"click_count"`
}

// QAResponse is the answer to POST /qa.
type QAResponse struct {
	ID              uint                      `json:"id"`
	Username        string                    `json:"username"`
	ConversationID  *string                   `json:"conversation_id"`
	Question        string                    `json:"question"`
	AnswerRaw       string                    `json:"answer_raw"`
	AnswerAnnotated string                    `json:"answer_annotated"`
	SourceDocuments []chatflow.SourceDocument `json:"source_documents"`
	Entities        []EntityInfo              `json:"entities"`
}

// HistoryItem is one turn in a listing.
type HistoryItem struct {
	ID              uint                      `json:"id"`
	Username        string                    `json:"username"`
	ConversationID  *string                   `json:"conversation_id"`
	Question        string                    `json:"question"`
	AnswerAnnotated string                    `json:"answer_annotated"`
	SourceDocuments []chatflow.SourceDocument `json:"source_documents"`
	Entities        []EntityInfo              `json:"entities"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// HistoryResponse is a page of a user's turns.
type HistoryResponse struct {
	Total int64         `json:"total"`
	Items []HistoryItem `json:"items"`
}

// ConversationQAResponse is a page of the turns of one conversation.
type ConversationQAResponse struct {
	ConversationID    string        `json:"conversation_id"`
	ConversationTitle string        `json:"conversation_title"`
	Total             int64         `json:"total"`
	Items             []HistoryItem `json:"items"`
}

// EntityQueryResponse is the graph view of a clicked entity.
type EntityQueryResponse struct {
	EntityID   uint             `json:"entity_id"`
	EntityText string           `json:"entity_text"`
	Nodes      []graph.Node     `json:"nodes"`
	Relations  []graph.Relation `json:"relations"`
	Cached     bool             `json:"cached"`
}

// NewEntityInfos maps entities, never returning nil.
func NewEntityInfos(entities []*entity.Entity) []EntityInfo {
	infos := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		infos = append(infos, EntityInfo{
			ID:            e.ID,
			EntityText:    e.EntityText,
			EntityType:    e.EntityType,
			StartPosition: e.StartPosition,
			EndPosition:   e.EndPosition,
			ClickCount:    e.ClickCount,
		})
	}
	return infos
}

// NewQAResponse maps an answered question.
func NewQAResponse(answer *qa.Answer) QAResponse {
	r := answer.Record
	return QAResponse{
		ID:              r.ID,
		Username:        r.Username,
		ConversationID:  r.ConversationID,
		Question:        r.Question,
		AnswerRaw:       r.AnswerRaw,
		AnswerAnnotated: r.AnswerAnnotated,
		SourceDocuments: sourceDocuments(r.SourceDocuments),
		Entities:        NewEntityInfos(answer.Entities),
	}
}

// NewHistoryItems maps a page of turns.
func NewHistoryItems(turns []qarecord.Turn) []HistoryItem {
	items := make([]HistoryItem, 0, len(turns))
	for _, t := range turns {
		items = append(items, HistoryItem{
			ID:              t.Record.ID,
			Username:        t.Record.Username,
			ConversationID:  t.Record.ConversationID,
			Question:        t.Record.Question,
			AnswerAnnotated: t.Record.AnswerAnnotated,
			SourceDocuments: sourceDocuments(t.Record.SourceDocuments),
			Entities:        NewEntityInfos(t.Entities),
			CreatedAt:       t.Record.CreatedAt,
		})
	}
	return items
}

// NewHistoryResponse maps a user's history page.
func NewHistoryResponse(page *qarecord.TurnPage) HistoryResponse {
	return HistoryResponse{Total: page.Total, Items: NewHistoryItems(page.Items)}
}

// NewConversationQAResponse maps a conversation's turns page.
func NewConversationQAResponse(turns *qarecord.ConversationTurns) ConversationQAResponse {
	return ConversationQAResponse{
		ConversationID:    turns.ConversationID,
		ConversationTitle: turns.ConversationTitle,
		Total:             turns.Total,
		Items:             NewHistoryItems(turns.Items),
	}
}

// NewEntityQueryResponse maps a graph lookup.
func NewEntityQueryResponse(result *entity.QueryResult) EntityQueryResponse {
	g := result.Graph
	if g == nil {
		g = graph.Empty()
	}
	nodes, relations := g.Nodes, g.Relations
	if nodes == nil {
		nodes = []graph.Node{}
	}
	if relations == nil {
		relations = []graph.Relation{}
	}
	return EntityQueryResponse{
		EntityID:   result.Entity.ID,
		EntityText: result.Entity.EntityText,
		Nodes:      nodes,
		Relations:  relations,
		Cached:     result.Cached,
	}
}

func sourceDocuments(docs []chatflow.SourceDocument) []chatflow.SourceDocument {
	if docs == nil {
		return []chatflow.SourceDocument{}
	}
	return docs
}
