package apierr

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-openapi/swag"
)

// DefaultRetryAfterSeconds is used when the provider throttles without
// telling us for how long.
const DefaultRetryAfterSeconds = 60

// RateLimitInfo carries the six quota counters the provider reports through
// response headers. A header absent upstream yields a genuinely absent
// field, never an empty string.
type RateLimitInfo struct {
	LimitRequests     *string `json:"limit_requests,omitempty"`
	RemainingRequests *string `json:"remaining_requests,omitempty"`
	ResetRequests     *string `json:"reset_requests,omitempty"`
	LimitTokens       *string `json:"limit_tokens,omitempty"`
	RemainingTokens   *string `json:"remaining_tokens,omitempty"`
	ResetTokens       *string `json:"reset_tokens,omitempty"`
}

// header names as the provider sends them.
const (
	headerRetryAfter        = "retry-after"
	headerLimitRequests     = "x-ratelimit-limit-requests"
	headerRemainingRequests = "x-ratelimit-remaining-requests"
	headerResetRequests     = "x-ratelimit-reset-requests"
	headerLimitTokens       = "x-ratelimit-limit-tokens"
	headerRemainingTokens   = "x-ratelimit-remaining-tokens"
	headerResetTokens       = "x-ratelimit-reset-tokens"
)

// lookup abstracts header bags and plain string-keyed records.
type lookup func(name string) (string, bool)

func headerLookup(h http.Header) lookup {
	return func(name string) (string, bool) {
		// array-valued entries take the first element
		values := h.Values(name)
		if len(values) == 0 {
			return "", false
		}
		return values[0], true
	}
}

func mapLookup(m map[string]string) lookup {
	return func(name string) (string, bool) {
		for key, value := range m {
			if strings.EqualFold(key, name) {
				return value, true
			}
		}
		return "", false
	}
}

func rateLimitInfo(get lookup) *RateLimitInfo {
	var info RateLimitInfo
	found := false
	read := func(dst **string, name string) {
		if value, ok := get(name); ok {
			*dst = swag.String(value)
			found = true
		}
	}
	read(&info.LimitRequests, headerLimitRequests)
	read(&info.RemainingRequests, headerRemainingRequests)
	read(&info.ResetRequests, headerResetRequests)
	read(&info.LimitTokens, headerLimitTokens)
	read(&info.RemainingTokens, headerRemainingTokens)
	read(&info.ResetTokens, headerResetTokens)
	if !found {
		return nil
	}
	return &info
}

// RateLimitInfoFromHeader extracts the quota counters from an HTTP header
// bag. Returns nil when none of the headers are present.
func RateLimitInfoFromHeader(h http.Header) *RateLimitInfo {
	if h == nil {
		return nil
	}
	return rateLimitInfo(headerLookup(h))
}

// RateLimitInfoFromMap extracts the quota counters from a plain string-keyed
// record, matching keys case-insensitively.
func RateLimitInfoFromMap(m map[string]string) *RateLimitInfo {
	if len(m) == 0 {
		return nil
	}
	return rateLimitInfo(mapLookup(m))
}

func retryAfter(get lookup) int {
	value, ok := get(headerRetryAfter)
	if !ok {
		return DefaultRetryAfterSeconds
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return DefaultRetryAfterSeconds
	}
	return seconds
}

// RetryAfterSeconds reads the retry delay off a header bag, defaulting to
// DefaultRetryAfterSeconds when absent or unparsable.
func RetryAfterSeconds(h http.Header) int {
	if h == nil {
		return DefaultRetryAfterSeconds
	}
	return retryAfter(headerLookup(h))
}

// RetryAfterSecondsFromMap is RetryAfterSeconds over a plain record.
func RetryAfterSecondsFromMap(m map[string]string) int {
	if len(m) == 0 {
		return DefaultRetryAfterSeconds
	}
	return retryAfter(mapLookup(m))
}
