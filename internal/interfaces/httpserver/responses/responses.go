package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jan-server/services/qa-api/internal/interfaces/httpserver/requests"
	"jan-server/services/qa-api/internal/utils/platformerrors"
)

const validationErrorUUID = "b3e8d1f4-6a2c-4f90-8c15-e7a0d4b9c236"

// ErrorResponse represents an error response with platform error details
type ErrorResponse struct {
	Code          string         `json:"code"` // UUID from PlatformError
	Error         string         `json:"error"`
	Message       string         `json:"message,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	ErrorInstance error          `json:"-"`
	RequestID     string         `json:"request_id,omitempty"`
}

// StatusResponse is the body of operations that only acknowledge success.
type StatusResponse struct {
	Status string `json:"status"`
}

// OK is the acknowledgement body.
var OK = StatusResponse{Status: "ok"}

// HandleError handles domain errors and returns appropriate HTTP responses.
// The error is attached to the gin context so the access log carries it.
func HandleError(reqCtx *gin.Context, err error, message string) {
	_ = reqCtx.Error(err)

	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())

		errResp := ErrorResponse{
			Code:          domainErr.GetUUID(),
			Error:         message,
			Message:       domainErr.Message,
			ErrorInstance: domainErr,
			RequestID:     domainErr.GetRequestID(),
		}

		reqCtx.AbortWithStatusJSON(statusCode, errResp)
		return
	}
	// Non-platform errors
	errResp := ErrorResponse{
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     platformerrors.RequestIDFromContext(reqCtx.Request.Context()),
	}
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, errResp)
}

// HandleNewError creates a new typed error at the route layer and handles it
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	ctx := reqCtx.Request.Context()
	err := platformerrors.NewError(ctx, platformerrors.LayerRoute, errorType, message, nil, uuid)

	statusCode := platformerrors.ErrorTypeToHTTPStatus(err.GetErrorType())

	errResp := ErrorResponse{
		Code:          err.GetUUID(),
		Error:         message,
		Message:       message,
		ErrorInstance: err,
		RequestID:     err.GetRequestID(),
	}

	reqCtx.AbortWithStatusJSON(statusCode, errResp)
}

// HandleBindError reports a request that failed binding or validation.
func HandleBindError(reqCtx *gin.Context, err error) {
	ctx := reqCtx.Request.Context()
	details := requests.ValidationDetails(err)
	platformErr := platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeValidation,
		"invalid request", err, validationErrorUUID, details)
	_ = reqCtx.Error(platformErr)

	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:          platformErr.GetUUID(),
		Error:         "invalid request",
		Message:       "request failed validation",
		Details:       details,
		ErrorInstance: platformErr,
		RequestID:     platformErr.GetRequestID(),
	})
}
