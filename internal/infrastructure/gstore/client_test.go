package gstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jan-server/services/qa-api/internal/domain/graph"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:     srv.URL + "/",
		Username:    "root",
		Password:    "123456",
		DBName:      "kg",
		Timeout:     5 * time.Second,
		PingTimeout: time.Second,
	}, zerolog.Nop())
}

const bindingsPayload = `{
	"results": {"bindings": [
		{
			"subject": {"type": "uri", "value": "http://kg.example/COT"},
			"predicate": {"type": "uri", "value": "http://kg.example/schema#isA"},
			"object": {"type": "uri", "value": "http://kg.example/Method"},
			"subjectLabel": {"type": "literal", "value": "COT"},
			"subjectType": {"type": "uri", "value": "http://kg.example/Concept"}
		},
		{
			"subject": {"type": "uri", "value": "http://kg.example/COT"},
			"predicate": {"type": "uri", "value": "http://kg.example/schema#desc"},
			"object": {"type": "literal", "value": "思维链"}
		}
	]}
}`

func TestQueryEntity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "query", body["operation"])
		assert.Equal(t, "root", body["username"])
		assert.Equal(t, "kg", body["db_name"])
		assert.Contains(t, body["sparql"], `LCASE("COT")`)

		_, _ = w.Write([]byte(bindingsPayload))
	})

	result, err := client.QueryEntity(context.Background(), "COT")
	require.NoError(t, err)

	require.Len(t, result.Nodes, 2)
	assert.Equal(t, "COT", result.Nodes[0].Label)
	assert.Equal(t, "http://kg.example/Concept", result.Nodes[0].Type)
	assert.Equal(t, "Method", result.Nodes[1].Label)
	require.Len(t, result.Relations, 2)
	assert.Equal(t, graph.TargetTypeURI, result.Relations[0].TargetType)
	assert.Equal(t, graph.TargetTypeLiteral, result.Relations[1].TargetType)
}

func TestQueryEntityMalformedIsEmpty(t *testing.T) {
	for _, payload := range []string{`{}`, `not json`, `{"results": null}`} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(payload))
		})

		result, err := client.QueryEntity(context.Background(), "COT")

		require.NoError(t, err, payload)
		assert.Empty(t, result.Nodes, payload)
		assert.NotNil(t, result.Relations, payload)
	}
}

func TestQueryEntityNon200IsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.QueryEntity(context.Background(), "COT")

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestPing(t *testing.T) {
	healthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, pingQuery, body["sparql"])
		_, _ = w.Write([]byte(`{}`))
	})
	assert.NoError(t, healthy.Ping(context.Background()))

	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	assert.Error(t, failing.Ping(context.Background()))
}
