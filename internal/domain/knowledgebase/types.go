package knowledgebase

import (
	"context"
	"encoding/json"
)

// File is a document uploaded into a store loader.
type File struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MimePrefix string `json:"mimePrefix"`
	Size       int64  `json:"size"`
	Status     string `json:"status"`
	Uploaded   string `json:"uploaded"`
}

// Loader is one ingestion source of a store.
type Loader struct {
	ID             string         `json:"id"`
	LoaderID       string         `json:"loaderId"`
	LoaderName     string         `json:"loaderName"`
	LoaderConfig   map[string]any `json:"loaderConfig"`
	SplitterID     string         `json:"splitterId"`
	SplitterName   string         `json:"splitterName"`
	SplitterConfig map[string]any `json:"splitterConfig"`
	TotalChunks    int64          `json:"totalChunks"`
	TotalChars     int64          `json:"totalChars"`
	Status         string         `json:"status"`
	Files          []File         `json:"files"`
	Source         string         `json:"source"`
}

// ComponentConfig names a configured vector store or embedding component.
type ComponentConfig struct {
	Config map[string]any `json:"config"`
	Name   string         `json:"name"`
}

// KnowledgeBase is a document store of the conversation engine.
type KnowledgeBase struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Loaders             []Loader         `json:"loaders"`
	WhereUsed           []string         `json:"whereUsed"`
	CreatedDate         string           `json:"createdDate"`
	UpdatedDate         string           `json:"updatedDate"`
	Status              string           `json:"status"`
	VectorStoreConfig   *ComponentConfig `json:"vectorStoreConfig"`
	EmbeddingConfig     *ComponentConfig `json:"embeddingConfig"`
	RecordManagerConfig map[string]any   `json:"recordManagerConfig"`
	WorkspaceID         string           `json:"workspaceId"`
	TotalChars          int64            `json:"totalChars"`
	TotalChunks         int64            `json:"totalChunks"`
}

// Files flattens the files of every loader in loader order.
func (kb *KnowledgeBase) Files() []File {
	files := make([]File, 0)
	for _, loader := range kb.Loaders {
		files = append(files, loader.Files...)
	}
	return files
}

// Catalog fetches raw store records from the conversation engine. Records are
// returned undecoded so that one malformed record cannot hide the others.
type Catalog interface {
	ListStores(ctx context.Context) ([]json.RawMessage, error)
	// GetStore returns nil when the engine answered with an empty record.
	GetStore(ctx context.Context, id string) (json.RawMessage, error)
}
