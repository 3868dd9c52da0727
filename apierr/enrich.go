package apierr

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	json "github.com/goccy/go-json"

	"github.com/streamgate/streamgate/wirelog"
)

// Enricher turns classified errors into the canonical envelope and writes
// exactly one interaction record per failure.
type Enricher struct {
	log wirelog.Logger
}

// NewEnricher builds an enricher; a nil logger logs nowhere.
func NewEnricher(log wirelog.Logger) *Enricher {
	if log == nil {
		log = wirelog.Nop{}
	}
	return &Enricher{log: log}
}

// Enrich classifies err and produces the single normalized error response
// for the request at path. It never retries and never returns nil.
func (e *Enricher) Enrich(ctx context.Context, requestID uuid.UUID, err error, path string) *Response {
	c := Classify(err)

	resp := &Response{
		Timestamp: strfmt.DateTime(time.Now()),
		Path:      path,
	}

	switch c.Kind {
	case KindHTTP:
		resp.StatusCode = c.HTTP.Status
		resp.Message = c.HTTP.Message
		resp.Err = c.HTTP.Message
		resp.FullError = fullErrorOf(c.Err)

	case KindRateLimit:
		e.enrichRateLimit(c, resp)

	case KindAuthentication:
		resp.StatusCode = http.StatusUnauthorized
		resp.Message = "Authentication with the provider failed."
		resp.Hint = "Check that the configured API key is valid and not expired."
		resp.OpenAIError = upstreamErrorOf(c)

	case KindPermissionDenied:
		resp.StatusCode = http.StatusForbidden
		resp.Message = "The provider rejected the request for this resource."
		resp.Hint = "The API key lacks access to the requested model or feature."
		resp.OpenAIError = upstreamErrorOf(c)

	case KindNotFound:
		resp.StatusCode = http.StatusNotFound
		resp.Message = "The requested provider resource does not exist."
		resp.OpenAIError = upstreamErrorOf(c)

	case KindTimeout:
		resp.StatusCode = http.StatusGatewayTimeout
		resp.Message = "The provider did not answer in time."
		resp.Hint = "Retry the request; consider reducing its size."
		if c.API != nil {
			resp.OpenAIError = upstreamErrorOf(c)
		} else {
			resp.Err = c.Err.Error()
			resp.FullError = fullErrorOf(c.Err)
		}

	case KindInternalServer:
		resp.StatusCode = c.API.StatusCode
		resp.Message = "The provider reported an internal error."
		resp.Hint = "This is a provider-side failure; retry with backoff."
		resp.OpenAIError = upstreamErrorOf(c)

	case KindBadRequest:
		e.enrichBadRequest(c, resp)

	case KindGenericAPI:
		resp.StatusCode = c.API.StatusCode
		resp.Message = c.API.Message
		resp.OpenAIError = upstreamErrorOf(c)

	case KindNetwork:
		entry := networkErrors[NetworkErrorCode(c.Code)]
		resp.StatusCode = entry.Status
		resp.Message = entry.Message
		resp.Hint = entry.Hint
		resp.ErrorCode = c.Code
		resp.Err = c.Err.Error()
		resp.FullError = fullErrorOf(c.Err)

	default:
		resp.StatusCode = http.StatusInternalServerError
		resp.Message = "An unexpected error occurred."
		if c.Err != nil {
			resp.Err = c.Err.Error()
		}
		resp.FullError = fullErrorOf(c.Err)
		if resp.FullError != nil {
			resp.FullError.Stack = string(debug.Stack())
		}
	}

	if c.API != nil && c.API.Response != nil {
		resp.RequestID = c.API.Response.Header.Get("x-request-id")
	}

	e.log.LogOpenAIInteraction(ctx, wirelog.InteractionRecord{
		RequestID: requestID,
		Path:      path,
		Status:    resp.StatusCode,
		Kind:      c.Kind.String(),
		Message:   resp.Message,
		ErrorCode: resp.ErrorCode,
		Err:       c.Err,
		Timestamp: resp.Timestamp,
	})

	return resp
}

func (e *Enricher) enrichRateLimit(c Classified, resp *Response) {
	var header http.Header
	if c.API.Response != nil {
		header = c.API.Response.Header
	}

	resp.StatusCode = http.StatusTooManyRequests
	resp.Message = c.API.Message
	if resp.Message == "" {
		resp.Message = "Rate limit exceeded."
	}
	resp.RetryAfterSeconds = RetryAfterSeconds(header)
	resp.RateLimitInfo = RateLimitInfoFromHeader(header)
	resp.Hint = fmt.Sprintf("Retry after %d seconds.", resp.RetryAfterSeconds)
	resp.OpenAIError = upstreamErrorOf(c)
}

func (e *Enricher) enrichBadRequest(c Classified, resp *Response) {
	resp.Parameter = c.API.Param
	resp.OpenAIError = upstreamErrorOf(c)

	if entry, ok := lookupCode(c.Code); ok {
		resp.StatusCode = entry.Status
		resp.Message = entry.Message
		resp.Hint = entry.Hint
		resp.ErrorCode = c.Code
		return
	}

	resp.StatusCode = http.StatusBadRequest
	resp.Message = c.API.Message
	resp.ErrorCode = "invalid_request_error"
}

func upstreamErrorOf(c Classified) *UpstreamError {
	if c.API == nil {
		return nil
	}
	ue := &UpstreamError{
		Type:    c.API.Type,
		Code:    c.API.Code,
		Param:   c.API.Param,
		Message: c.API.Message,
	}
	if raw := c.API.RawJSON(); json.Valid([]byte(raw)) {
		ue.FullError = json.RawMessage(raw)
	}
	return ue
}

// fullErrorOf captures whatever the error exposes, so not even a malformed
// failure is dropped.
func fullErrorOf(err error) *FullError {
	if err == nil {
		return nil
	}
	return &FullError{
		Message: err.Error(),
		Name:    fmt.Sprintf("%T", err),
	}
}
