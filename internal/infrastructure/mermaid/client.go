package mermaid

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/diagram"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/httpclients"
)

const target = "mermaid"

// Config configures the diagram rewrite client.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client replaces mermaid blocks with rendered images through the diagram service.
type Client struct {
	http *resty.Client
	url  string
	log  zerolog.Logger
}

// NewClient creates a Resty-backed diagram client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		http: httpclients.NewClient(target, cfg.Timeout, log),
		url:  cfg.URL,
		log:  log.With().Str("component", "mermaid-client").Logger(),
	}
}

type replaceResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Message any             `json:"message"`
}

// Rewrite posts content to the diagram service. The rewrite applies only on a
// 200 answer carrying success=true and a string result.
func (c *Client) Rewrite(ctx context.Context, content string) (string, bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"content": content}).
		Post(c.url)
	if err != nil {
		return "", false, httpclients.TransportError(ctx, target, err)
	}

	log := logger.WithRequest(ctx, c.log)
	if resp.StatusCode() != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode()).Msg("diagram service returned non-200, keeping answer")
		return "", false, nil
	}

	var out replaceResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		log.Debug().Err(err).Msg("diagram service payload unreadable, keeping answer")
		return "", false, nil
	}
	rewritten, isString := stringResult(out.Result)
	if !out.Success || !isString {
		log.Debug().Interface("message", out.Message).Msg("diagram rewrite not applied")
		return "", false, nil
	}
	log.Debug().Interface("message", out.Message).Msg("diagram rewrite applied")
	return rewritten, true, nil
}

func stringResult(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

var _ diagram.Rewriter = (*Client)(nil)
