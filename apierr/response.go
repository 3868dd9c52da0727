package apierr

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
)

// UpstreamError mirrors the provider's own error body, preserved verbatim
// under FullError.
type UpstreamError struct {
	Type      string          `json:"type"`
	Code      string          `json:"code,omitempty"`
	Param     string          `json:"param,omitempty"`
	Message   string          `json:"message"`
	FullError json.RawMessage `json:"full_error,omitempty"`
}

// FullError is the best-effort capture of an error that did not come from
// the provider SDK.
type FullError struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// Response is the single normalized error contract returned to API clients
// regardless of failure origin. Exactly one of OpenAIError or the bare
// Err/FullError pair is populated, depending on which classification branch
// produced it.
type Response struct {
	StatusCode        int             `json:"statusCode"`
	Timestamp         strfmt.DateTime `json:"timestamp"`
	Path              string          `json:"path"`
	Message           string          `json:"message"`
	RequestID         string          `json:"request_id,omitempty"`
	ErrorCode         string          `json:"error_code,omitempty"`
	Parameter         string          `json:"parameter,omitempty"`
	Hint              string          `json:"hint,omitempty"`
	RateLimitInfo     *RateLimitInfo  `json:"rate_limit_info,omitempty"`
	RetryAfterSeconds int             `json:"retry_after_seconds,omitempty"`
	OpenAIError       *UpstreamError  `json:"openai_error,omitempty"`
	Err               string          `json:"error,omitempty"`
	FullError         *FullError      `json:"full_error,omitempty"`
}

// Write renders the envelope as the HTTP error response. The Retry-After
// header is mirrored only when the rate-limit branch set a retry delay.
func (r *Response) Write(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	if r.RetryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(r.RetryAfterSeconds))
	}
	w.WriteHeader(r.StatusCode)
	return json.NewEncoder(w).Encode(r)
}

// HTTPError is a framework-level error carrying its own status and message.
// The classifier passes it through without reinterpretation.
type HTTPError struct {
	Status  int
	Message string
}

func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}
