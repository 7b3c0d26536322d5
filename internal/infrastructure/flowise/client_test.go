package flowise

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

	"jan-server/services/qa-api/internal/domain/chatflow"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:         srv.URL,
		APIKey:          apiKey,
		Timeout:         5 * time.Second,
		StoreTimeout:    5 * time.Second,
		DefaultChatflow: "default-flow",
	}, zerolog.Nop())
}

func TestPredictPostsQuestion(t *testing.T) {
	client := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/prediction/flow-1", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "什么是COT", body["question"])
		assert.Equal(t, map[string]any{"sessionId": "c1"}, body["overrideConfig"])

		_, _ = w.Write([]byte(`{"text":"答案","sourceDocuments":[{"pageContent":"p","metadata":{"page":1}},"junk"]}`))
	})

	prediction, err := client.Predict(context.Background(), chatflow.PredictionRequest{
		ChatflowID:     "flow-1",
		Question:       "什么是COT",
		OverrideConfig: map[string]any{"sessionId": "c1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "答案", prediction.Text)
	require.Len(t, prediction.SourceDocuments, 1)
	assert.Equal(t, "p", prediction.SourceDocuments[0].PageContent)
}

func TestPredictDefaultsChatflowAndOmitsAuth(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/prediction/default-flow", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{}, body["overrideConfig"])

		_, _ = w.Write([]byte(`"plain answer"`))
	})

	prediction, err := client.Predict(context.Background(), chatflow.PredictionRequest{Question: "q"})
	require.NoError(t, err)

	assert.Equal(t, "plain answer", prediction.Text)
	assert.Empty(t, prediction.SourceDocuments)
}

func TestPredictUpstreamStatusIsExternal(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Predict(context.Background(), chatflow.PredictionRequest{Question: "q"})

	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestListStores(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/document-store/store", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	})

	stores, err := client.ListStores(context.Background())
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}

func TestListStoresNonListIsEmpty(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"nope"}`))
	})

	stores, err := client.ListStores(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stores)
	assert.Empty(t, stores)
}

func TestGetStore(t *testing.T) {
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/document-store/store/kb1":
			_, _ = w.Write([]byte(`{"id":"kb1"}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})

	record, err := client.GetStore(context.Background(), "kb1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"kb1"}`, string(record))

	record, err = client.GetStore(context.Background(), "other")
	require.NoError(t, err)
	assert.Nil(t, record)
}
