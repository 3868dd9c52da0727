package apierr

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"syscall"

	"github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"
)

// Kind is the closed set of failure classes. Classification produces exactly
// one Kind; enrichment does one exhaustive switch over it.
type Kind int

const (
	KindUnknown Kind = iota
	KindHTTP
	KindRateLimit
	KindAuthentication
	KindPermissionDenied
	KindNotFound
	KindTimeout
	KindInternalServer
	KindBadRequest
	KindGenericAPI
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindHTTP:
		return "http_exception"
	case KindRateLimit:
		return "rate_limit"
	case KindAuthentication:
		return "authentication"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindTimeout:
		return "timeout"
	case KindInternalServer:
		return "internal_server"
	case KindBadRequest:
		return "bad_request"
	case KindGenericAPI:
		return "generic_api_error"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Classified is the tagged result of one classification. HTTP is set for
// KindHTTP, API for the provider kinds, Code for the network kind and the
// refined bad-request kind.
type Classified struct {
	Kind Kind
	HTTP *HTTPError
	API  *openai.Error
	Code string
	Err  error
}

// Classify walks the closed decision tree over the error's shape. It never
// fails: anything it cannot place lands in KindUnknown.
func Classify(err error) Classified {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return Classified{Kind: KindHTTP, HTTP: httpErr, Err: err}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		c := Classified{API: apiErr, Err: err}
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			c.Kind = KindRateLimit
		case apiErr.StatusCode == http.StatusUnauthorized:
			c.Kind = KindAuthentication
		case apiErr.StatusCode == http.StatusForbidden:
			c.Kind = KindPermissionDenied
		case apiErr.StatusCode == http.StatusNotFound:
			c.Kind = KindNotFound
		case apiErr.StatusCode == http.StatusGatewayTimeout:
			c.Kind = KindTimeout
		case apiErr.StatusCode == http.StatusBadRequest:
			c.Kind = KindBadRequest
			c.Code = refineErrorCode(apiErr)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			c.Kind = KindInternalServer
		default:
			c.Kind = KindGenericAPI
		}
		return c
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Classified{Kind: KindTimeout, Err: err}
	}

	if code, ok := networkCode(err); ok {
		return Classified{Kind: KindNetwork, Code: string(code), Err: err}
	}

	return Classified{Kind: KindUnknown, Err: err}
}

// embeddedObject finds a JSON object embedded in an error message, for
// providers that stringify their error body into the message text.
var embeddedObject = regexp.MustCompile(`\{.*\}`)

// refineErrorCode extracts a bad-request sub-code via three-tier fallback:
// the typed Code field, then the nested error.code of the raw body, then a
// best-effort parse of a JSON object embedded in the message.
func refineErrorCode(apiErr *openai.Error) string {
	if apiErr.Code != "" {
		return apiErr.Code
	}
	if code := gjson.Get(apiErr.RawJSON(), "error.code"); code.Type == gjson.String && code.Str != "" {
		return code.Str
	}
	if match := embeddedObject.FindString(apiErr.Message); match != "" {
		if code := gjson.Get(match, "error.code"); code.Type == gjson.String && code.Str != "" {
			return code.Str
		}
		if code := gjson.Get(match, "code"); code.Type == gjson.String && code.Str != "" {
			return code.Str
		}
	}
	return ""
}

// coder is satisfied by transport errors that expose an errno-style code.
type coder interface {
	Code() string
}

// networkCode identifies a bare network failure, first through an exposed
// code, then through the well-known syscall and resolver error shapes.
func networkCode(err error) (NetworkErrorCode, bool) {
	var c coder
	if errors.As(err, &c) {
		code := NetworkErrorCode(c.Code())
		if _, ok := networkErrors[code]; ok {
			return code, true
		}
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ECONNREFUSED, true
	case errors.Is(err, syscall.ECONNRESET):
		return ECONNRESET, true
	case errors.Is(err, syscall.ECONNABORTED):
		return ECONNABORTED, true
	case errors.Is(err, syscall.ETIMEDOUT):
		return ETIMEDOUT, true
	case errors.Is(err, syscall.EPIPE):
		return EPIPE, true
	case errors.Is(err, syscall.EHOSTUNREACH):
		return EHOSTUNREACH, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTemporary {
			return EAIAGAIN, true
		}
		return ENOTFOUND, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ETIMEDOUT, true
	}

	return "", false
}
