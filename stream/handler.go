package stream

import (
	"context"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/streamgate/streamgate/usage"
	"github.com/streamgate/streamgate/wirelog"
)

// Category groups handlers by event domain. It is attached to every
// dispatched event for observability.
type Category string

const (
	CategoryLifecycle  Category = "lifecycle"
	CategoryText       Category = "text"
	CategoryReasoning  Category = "reasoning"
	CategoryRefusal    Category = "refusal"
	CategoryAudio      Category = "audio"
	CategoryToolCall   Category = "tool_call"
	CategoryMCP        Category = "mcp"
	CategoryImage      Category = "image"
	CategoryComputer   Category = "computer_use"
	CategoryStructural Category = "structural"
	CategoryUnknown    Category = "unknown"
)

// Handler normalizes one upstream event. It may mutate the state, must not
// panic on malformed payloads, and stamps every returned event with the
// caller-supplied sequence.
type Handler func(s *State, evt gjson.Result, seq int64) []Event

// Estimator is the usage/cost collaborator contract. It is consulted only by
// the lifecycle-completed handler.
type Estimator interface {
	ExtractUsage(response gjson.Result) usage.Usage
	ExtractResponseMetadata(response gjson.Result) usage.Metadata
	EstimateCost(u usage.Usage, model string) float64
}

// stdEstimator delegates to the pure functions in the usage package.
type stdEstimator struct{}

func (stdEstimator) ExtractUsage(response gjson.Result) usage.Usage {
	return usage.ExtractUsage(response)
}

func (stdEstimator) ExtractResponseMetadata(response gjson.Result) usage.Metadata {
	return usage.ExtractResponseMetadata(response)
}

func (stdEstimator) EstimateCost(u usage.Usage, model string) float64 {
	return usage.EstimateCost(u, model)
}

// upstreamPrefix is the fixed literal stripped off upstream type strings for
// passthrough event names.
const upstreamPrefix = "response."

// strippedType returns the upstream type with the fixed prefix removed.
func strippedType(evt gjson.Result) string {
	return strings.TrimPrefix(evt.Get("type").String(), upstreamPrefix)
}

// coerceDelta turns an upstream delta field into the string to accumulate.
// Strings pass through, primitive numbers and booleans are stringified, and
// everything else (null, objects, arrays, missing) contributes nothing.
func coerceDelta(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	default:
		return ""
	}
}

type registration struct {
	category Category
	handle   Handler
}

// Mux routes upstream events to their category handlers. One Mux serves one
// request; it carries the request id so every streaming record can be
// correlated.
type Mux struct {
	requestID uuid.UUID
	log       wirelog.Logger
	estimate  Estimator
	routes    map[string]registration
}

// NewMux builds the routing table. A nil logger logs nowhere and a nil
// estimator uses the usage package defaults.
func NewMux(requestID uuid.UUID, log wirelog.Logger, estimate Estimator) *Mux {
	if log == nil {
		log = wirelog.Nop{}
	}
	if estimate == nil {
		estimate = stdEstimator{}
	}
	m := &Mux{
		requestID: requestID,
		log:       log,
		estimate:  estimate,
	}
	m.routes = m.buildRoutes()
	return m
}

// Dispatch routes one raw upstream event. Unregistered types never fail:
// they fall through to the unknown handler, which reports the original type
// string back to the client.
func (m *Mux) Dispatch(ctx context.Context, s *State, raw []byte, seq int64) (Category, []Event) {
	evt := gjson.ParseBytes(raw)
	typ := evt.Get("type").String()

	category := CategoryUnknown
	handle := Handler(unknownEvent)
	if reg, ok := m.routes[typ]; ok {
		category = reg.category
		handle = reg.handle
	}

	events := handle(s, evt, seq)

	m.log.LogStreamingEvent(ctx, wirelog.StreamRecord{
		RequestID:  m.requestID,
		ResponseID: s.ResponseID,
		EventType:  typ,
		Category:   string(category),
		Sequence:   seq,
		Emitted:    len(events),
		Timestamp:  strfmt.DateTime(time.Now()),
	})

	return category, events
}

// Known reports whether the routing table registers the given upstream type.
func (m *Mux) Known(eventType string) bool {
	_, ok := m.routes[eventType]
	return ok
}
