package gstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/qa-api/internal/domain/graph"
)

func uri(v string) term     { return term{Type: "uri", Value: v} }
func literal(v string) term { return term{Type: "literal", Value: v} }

func TestParseBindingsDeduplicatesNodes(t *testing.T) {
	rows := []binding{
		{"subject": uri("http://kg/a"), "predicate": uri("http://kg/p#rel"), "object": uri("http://kg/b")},
		{"subject": uri("http://kg/a"), "predicate": uri("http://kg/p#rel2"), "object": uri("http://kg/b")},
		{"subject": uri("http://kg/b"), "predicate": uri("http://kg/p/name"), "object": literal("乙")},
	}

	result := ParseBindings(rows)

	require.Len(t, result.Nodes, 2)
	assert.Equal(t, "http://kg/a", result.Nodes[0].ID)
	assert.Equal(t, "a", result.Nodes[0].Label)
	assert.Equal(t, "http://kg/b", result.Nodes[1].ID)

	require.Len(t, result.Relations, 3)
	assert.Equal(t, "rel", result.Relations[0].Relation)
	assert.Equal(t, "http://kg/p#rel", result.Relations[0].PredicateURI)
	assert.Nil(t, result.Relations[0].TargetValue)
	assert.Equal(t, "name", result.Relations[2].Relation)
	require.NotNil(t, result.Relations[2].TargetValue)
	assert.Equal(t, "乙", *result.Relations[2].TargetValue)
}

func TestParseBindingsIncompleteRows(t *testing.T) {
	rows := []binding{
		{"subject": uri("http://kg/a")},
		{"predicate": uri("http://kg/p"), "object": literal("x")},
	}

	result := ParseBindings(rows)

	assert.Len(t, result.Nodes, 1)
	assert.Empty(t, result.Relations)
}

func TestParseBindingsNonHTTPObjectIsLiteral(t *testing.T) {
	rows := []binding{
		{"subject": uri("http://kg/a"), "predicate": uri("http://kg/p"), "object": term{Type: "bnode", Value: "_:b0"}},
	}

	result := ParseBindings(rows)

	assert.Len(t, result.Nodes, 1)
	require.Len(t, result.Relations, 1)
	assert.Equal(t, graph.TargetTypeLiteral, result.Relations[0].TargetType)
}

func TestLocalName(t *testing.T) {
	assert.Equal(t, "label", localName("http://www.w3.org/2000/01/rdf-schema#label"))
	assert.Equal(t, "COT", localName("http://kg.example/COT"))
	assert.Equal(t, "plain", localName("plain"))
}
