package httpclients

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-resty/resty/v2"

	"jan-server/services/qa-api/internal/utils/platformerrors"
)

// TransportError classifies a failed upstream call as TIMEOUT or EXTERNAL.
func TransportError(ctx context.Context, target string, err error) *platformerrors.PlatformError {
	errorType := platformerrors.ErrorTypeExternal
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		errorType = platformerrors.ErrorTypeTimeout
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, errorType,
		fmt.Sprintf("%s request failed", target), err, "0c2e5a8d-1f4b-4760-9e3a-6b8d1c0f4a25",
		map[string]any{"upstream": target})
}

// StatusError reports an unexpected upstream status as EXTERNAL.
func StatusError(ctx context.Context, target string, resp *resty.Response) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s answered with status %d", target, resp.StatusCode()), nil, "1d3f6b9e-2a5c-4871-8f4b-7c9e2d1a5b36",
		map[string]any{"upstream": target, "status": resp.StatusCode()})
}

// DecodeError reports an upstream payload that could not be parsed.
func DecodeError(ctx context.Context, target string, err error) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s returned an unreadable payload", target), err, "2e4a7c0f-3b6d-4982-9a5c-8d0f3e2b6c47",
		map[string]any{"upstream": target})
}
