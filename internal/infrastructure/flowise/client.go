package flowise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/chatflow"
	"jan-server/services/qa-api/internal/domain/knowledgebase"
	"jan-server/services/qa-api/internal/utils/httpclients"
)

const (
	predictionTarget = "flowise prediction"
	storeTarget      = "flowise document store"
)

// Config configures the Flowise client.
type Config struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	StoreTimeout    time.Duration
	DefaultChatflow string
}

// Client talks to the Flowise prediction and document-store APIs.
type Client struct {
	prediction      *resty.Client
	store           *resty.Client
	defaultChatflow string
}

// NewClient creates a Resty-backed Flowise client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	prediction := httpclients.NewClient("flowise", cfg.Timeout, log).SetBaseURL(cfg.BaseURL)
	store := httpclients.NewClient("flowise-store", cfg.StoreTimeout, log).SetBaseURL(cfg.BaseURL)
	if cfg.APIKey != "" {
		prediction.SetAuthToken(cfg.APIKey)
		store.SetAuthToken(cfg.APIKey)
	}
	return &Client{
		prediction:      prediction,
		store:           store,
		defaultChatflow: cfg.DefaultChatflow,
	}
}

type predictionBody struct {
	Question       string         `json:"question"`
	OverrideConfig map[string]any `json:"overrideConfig"`
}

// Predict posts a question to a chatflow.
func (c *Client) Predict(ctx context.Context, req chatflow.PredictionRequest) (*chatflow.Prediction, error) {
	chatflowID := req.ChatflowID
	if chatflowID == "" {
		chatflowID = c.defaultChatflow
	}
	override := req.OverrideConfig
	if override == nil {
		override = map[string]any{}
	}

	resp, err := c.prediction.R().
		SetContext(ctx).
		SetBody(predictionBody{Question: req.Question, OverrideConfig: override}).
		Post("/api/v1/prediction/" + url.PathEscape(chatflowID))
	if err != nil {
		return nil, httpclients.TransportError(ctx, predictionTarget, err)
	}
	if resp.IsError() {
		return nil, httpclients.StatusError(ctx, predictionTarget, resp)
	}

	payload, err := decodeAny(resp.Body())
	if err != nil {
		return nil, httpclients.DecodeError(ctx, predictionTarget, err)
	}
	return &chatflow.Prediction{
		Text:            ExtractText(payload),
		SourceDocuments: ExtractSourceDocuments(payload),
	}, nil
}

// ListStores returns every document store. A payload that is not a list
// yields no stores.
func (c *Client) ListStores(ctx context.Context) ([]json.RawMessage, error) {
	body, err := c.getStore(ctx, "/api/v1/document-store/store")
	if err != nil {
		return nil, err
	}
	var stores []json.RawMessage
	if err := json.Unmarshal(body, &stores); err != nil {
		if !json.Valid(body) {
			return nil, httpclients.DecodeError(ctx, storeTarget, err)
		}
		return []json.RawMessage{}, nil
	}
	if stores == nil {
		stores = []json.RawMessage{}
	}
	return stores, nil
}

// GetStore returns one document store, or nil when the payload is not an object.
func (c *Client) GetStore(ctx context.Context, id string) (json.RawMessage, error) {
	body, err := c.getStore(ctx, "/api/v1/document-store/store/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var record map[string]json.RawMessage
	if err := json.Unmarshal(body, &record); err != nil {
		if !json.Valid(body) {
			return nil, httpclients.DecodeError(ctx, storeTarget, err)
		}
		return nil, nil
	}
	if record == nil {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

func (c *Client) getStore(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.store.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, httpclients.TransportError(ctx, storeTarget, err)
	}
	if resp.IsError() {
		return nil, httpclients.StatusError(ctx, storeTarget, resp)
	}
	return resp.Body(), nil
}

func decodeAny(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode prediction: %w", err)
	}
	return payload, nil
}

var (
	_ chatflow.Engine       = (*Client)(nil)
	_ knowledgebase.Catalog = (*Client)(nil)
)
