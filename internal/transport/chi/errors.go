package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tastegraph/internal/domain"
	"github.com/kailas-cloud/tastegraph/internal/logger"
)

// ErrorCode is the machine-readable error code of an API error response.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest           ErrorCode = "bad_request"
	ErrorCodeValidationFailed     ErrorCode = "validation_failed"
	ErrorCodeUnauthorized         ErrorCode = "unauthorized"
	ErrorCodeUpstreamError        ErrorCode = "upstream_error"
	ErrorCodeUpstreamUnauthorized ErrorCode = "upstream_unauthorized"
	ErrorCodeNarratorError        ErrorCode = "narrator_error"
	ErrorCodeTimeout              ErrorCode = "timeout"
	ErrorCodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	deadlineHandler,
	upstreamUnauthorizedHandler,
	sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeBadRequest),
	sentinelHandler(domain.ErrUpstream, http.StatusBadGateway, ErrorCodeUpstreamError),
	sentinelHandler(domain.ErrNarratorProvider, http.StatusBadGateway, ErrorCodeNarratorError),
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Invalid requests echo the error text; upstream failures only expose the sentinel message.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if status < http.StatusInternalServerError {
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

// upstreamUnauthorizedHandler reports rejected taste graph credentials separately from other upstream failures.
func upstreamUnauthorizedHandler(w http.ResponseWriter, err error) bool {
	var httpErr *domain.HTTPError
	if !errors.As(err, &httpErr) || !httpErr.Unauthorized() {
		return false
	}
	writeError(w, http.StatusBadGateway, ErrorCodeUpstreamUnauthorized, "taste graph rejected the configured credentials")
	return true
}

func deadlineHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	writeError(w, http.StatusGatewayTimeout, ErrorCodeTimeout, "request timed out")
	return true
}

func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	for _, h := range errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
