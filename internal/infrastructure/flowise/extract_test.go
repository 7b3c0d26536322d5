package flowise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	cases := []struct {
		name    string
		payload any
		want    string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"text key", map[string]any{"text": "a", "answer": "b"}, "a"},
		{"answer key", map[string]any{"answer": "b"}, "b"},
		{"result key", map[string]any{"result": "c"}, "c"},
		{"message key", map[string]any{"message": "d"}, "d"},
		{"nested data", map[string]any{"data": map[string]any{"answer": "e"}}, "e"},
		{"non-string text", map[string]any{"text": 1.0}, `{"text":1}`},
		{"list", []any{"x"}, `["x"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractText(tc.payload))
		})
	}
}

func TestExtractSourceDocuments(t *testing.T) {
	payload := map[string]any{"sourceDocuments": []any{
		map[string]any{"pageContent": "p1"},
		map[string]any{"pageContent": "p2", "metadata": map[string]any{"source": "s"}},
		"junk",
	}}

	docs := ExtractSourceDocuments(payload)

	assert.Len(t, docs, 2)
	assert.Equal(t, map[string]any{}, docs[0].Metadata)
	assert.Equal(t, "s", docs[1].Metadata["source"])
	assert.Empty(t, ExtractSourceDocuments("text"))
	assert.Empty(t, ExtractSourceDocuments(map[string]any{"sourceDocuments": "x"}))
}
