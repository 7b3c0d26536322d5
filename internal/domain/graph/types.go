package graph

import "context"

const (
	TargetTypeLiteral = "literal"
	TargetTypeURI     = "uri"
)

// Node is a graph resource.
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// Relation is one triple, with literal objects inlined as TargetValue.
type Relation struct {
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	Relation     string         `json:"relation"`
	PredicateURI string         `json:"predicate_uri"`
	Properties   map[string]any `json:"properties"`
	TargetType   string         `json:"target_type"`
	TargetValue  *string        `json:"target_value,omitempty"`
}

// Result is the node/relation set returned for an entity lookup.
type Result struct {
	Nodes     []Node     `json:"nodes"`
	Relations []Relation `json:"relations"`
}

// Empty returns a result with non-nil empty slices.
func Empty() *Result {
	return &Result{Nodes: []Node{}, Relations: []Relation{}}
}

// Querier looks up triples related to an entity string.
type Querier interface {
	// QueryEntity returns an error only for transport failures or non-200
	// answers. Malformed payloads yield an empty result.
	QueryEntity(ctx context.Context, entityText string) (*Result, error)
	// Ping runs a trivial query to confirm the endpoint is reachable.
	Ping(ctx context.Context) error
}
