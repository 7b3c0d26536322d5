package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/intent"
	"jan-server/services/qa-api/internal/utils/httpclients"
)

const target = "ollama"

// Config configures the Ollama generate client.
type Config struct {
	// URL is the full generate endpoint, e.g. http://localhost:11434/api/generate.
	URL     string
	Model   string
	Timeout time.Duration
}

// Client classifies questions with a local Ollama model.
type Client struct {
	http  *resty.Client
	url   string
	model string
}

// NewClient creates a Resty-backed Ollama client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		http:  httpclients.NewClient(target, cfg.Timeout, log),
		url:   cfg.URL,
		model: cfg.Model,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Classify runs the prompt and reads intent_id from the model's JSON answer.
// A JSON object without intent_id yields the default intent.
func (c *Client) Classify(ctx context.Context, prompt string) (int, error) {
	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:   c.model,
			Prompt:  prompt,
			Stream:  false,
			Format:  "json",
			Options: map[string]any{"temperature": 0.1},
		}).
		SetResult(&out).
		Post(c.url)
	if err != nil {
		return 0, httpclients.TransportError(ctx, target, err)
	}
	if resp.IsError() {
		return 0, httpclients.StatusError(ctx, target, resp)
	}
	id, err := ParseIntent(out.Response)
	if err != nil {
		return 0, httpclients.DecodeError(ctx, target, err)
	}
	return id, nil
}

// ParseIntent reads intent_id from a JSON object such as {"intent_id": 3}.
func ParseIntent(content string) (int, error) {
	var body map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &body); err != nil {
		return 0, fmt.Errorf("parse classifier output: %w", err)
	}
	raw, ok := body["intent_id"]
	if !ok {
		return int(intent.Default), nil
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("intent_id %q is not an integer", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("intent_id has unexpected type %T", raw)
	}
}

var _ intent.Classifier = (*Client)(nil)
