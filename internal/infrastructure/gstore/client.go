package gstore

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/domain/graph"
	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/utils/httpclients"
)

const target = "gstore"

// Config configures the gStore HTTP endpoint.
type Config struct {
	BaseURL     string
	Username    string
	Password    string
	DBName      string
	Timeout     time.Duration
	PingTimeout time.Duration
}

// Client runs SPARQL queries against gStore.
type Client struct {
	http *resty.Client
	cfg  Config
	log  zerolog.Logger
}

// NewClient creates a Resty-backed gStore client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		http: httpclients.NewClient(target, cfg.Timeout, log).
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetHeader("Accept", "application/json"),
		cfg: cfg,
		log: log.With().Str("component", "gstore-client").Logger(),
	}
}

type queryRequest struct {
	Operation string `json:"operation"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	DBName    string `json:"db_name"`
	SPARQL    string `json:"sparql"`
}

func (c *Client) request(ctx context.Context, sparql string) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetBody(queryRequest{
			Operation: "query",
			Username:  c.cfg.Username,
			Password:  c.cfg.Password,
			DBName:    c.cfg.DBName,
			SPARQL:    sparql,
		})
}

// QueryEntity returns triples related to entityText. Transport failures and
// non-200 answers are errors; an answer without result bindings is empty.
func (c *Client) QueryEntity(ctx context.Context, entityText string) (*graph.Result, error) {
	resp, err := c.request(ctx, BuildEntityQuery(entityText)).Post("/query")
	if err != nil {
		return nil, httpclients.TransportError(ctx, target, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, httpclients.StatusError(ctx, target, resp)
	}

	log := logger.WithRequest(ctx, c.log)
	var out queryResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil || out.Results == nil {
		log.Warn().Err(err).Str("entity_text", entityText).Msg("gstore answer has no result bindings")
		return graph.Empty(), nil
	}

	result := ParseBindings(out.Results.Bindings)
	log.Debug().
		Str("entity_text", entityText).
		Int("bindings", len(out.Results.Bindings)).
		Int("nodes", len(result.Nodes)).
		Int("relations", len(result.Relations)).
		Msg("gstore query parsed")
	return result, nil
}

// Ping runs a one-row query and expects a 200 answer.
func (c *Client) Ping(ctx context.Context) error {
	if c.cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.PingTimeout)
		defer cancel()
	}
	resp, err := c.request(ctx, pingQuery).Post("/query")
	if err != nil {
		return httpclients.TransportError(ctx, target, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return httpclients.StatusError(ctx, target, resp)
	}
	return nil
}

var _ graph.Querier = (*Client)(nil)
