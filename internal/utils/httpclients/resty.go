package httpclients

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"jan-server/services/qa-api/internal/infrastructure/logger"
	"jan-server/services/qa-api/internal/infrastructure/metrics"
)

type HTTPClientStartsAt struct{}

// NewClient returns a resty client that logs and measures every call under
// clientName. Retries stay disabled; each upstream call is attempted once.
func NewClient(clientName string, timeout time.Duration, log zerolog.Logger) *resty.Client {
	base := log.With().Str("client", clientName).Logger()

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json")

	client.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), HTTPClientStartsAt{}, time.Now()))
		return nil
	})
	client.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
		latency := elapsed(r.Request.Context())
		status := strconv.Itoa(r.StatusCode())
		metrics.RecordUpstream(clientName, status, latency)

		logger.WithRequest(r.Request.Context(), base).Debug().
			Int("status", r.StatusCode()).
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Int("resp_bytes", len(r.Body())).
			Dur("latency", latency).
			Msg("HTTP client request")
		return nil
	})
	client.OnError(func(r *resty.Request, err error) {
		latency := elapsed(r.Context())
		metrics.RecordUpstream(clientName, "error", latency)

		logger.WithRequest(r.Context(), base).Warn().
			Err(err).
			Str("method", r.Method).
			Str("url", r.URL).
			Dur("latency", latency).
			Msg("HTTP client request failed")
	})
	return client
}

func elapsed(ctx context.Context) time.Duration {
	start, ok := ctx.Value(HTTPClientStartsAt{}).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}
