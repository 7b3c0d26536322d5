package gstore

import (
	"strings"

	"jan-server/services/qa-api/internal/domain/graph"
)

type term struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type binding map[string]term

type queryResponse struct {
	Results *struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

// ParseBindings turns SPARQL result rows into a node/relation set. Nodes are
// unique by URI in first-seen order; literal objects become relation values
// rather than nodes.
func ParseBindings(rows []binding) *graph.Result {
	result := graph.Empty()
	seen := make(map[string]struct{})

	addNode := func(uri, labelKey, typeKey string, row binding) {
		if _, ok := seen[uri]; ok {
			return
		}
		seen[uri] = struct{}{}
		label := localName(uri)
		if l, ok := row[labelKey]; ok {
			label = l.Value
		}
		result.Nodes = append(result.Nodes, graph.Node{
			ID:         uri,
			Label:      label,
			Type:       row[typeKey].Value,
			Properties: map[string]any{},
		})
	}

	for _, row := range rows {
		subject, hasSubject := row["subject"]
		object, hasObject := row["object"]
		predicate, hasPredicate := row["predicate"]

		if hasSubject {
			addNode(subject.Value, "subjectLabel", "subjectType", row)
		}
		if hasObject && isResource(object) {
			addNode(object.Value, "objectLabel", "objectType", row)
		}

		if !hasSubject || !hasPredicate || !hasObject {
			continue
		}
		rel := graph.Relation{
			Source:       subject.Value,
			Target:       object.Value,
			Relation:     localName(predicate.Value),
			PredicateURI: predicate.Value,
			Properties:   map[string]any{},
			TargetType:   graph.TargetTypeURI,
		}
		if object.Type == "literal" || !strings.HasPrefix(object.Value, "http") {
			value := object.Value
			rel.TargetType = graph.TargetTypeLiteral
			rel.TargetValue = &value
		}
		result.Relations = append(result.Relations, rel)
	}
	return result
}

func isResource(t term) bool {
	return t.Type == "uri" || strings.HasPrefix(t.Value, "http")
}

// localName returns the part of a URI after its last '#', or failing that its
// last '/'.
func localName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
