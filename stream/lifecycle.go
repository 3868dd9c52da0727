package stream

import (
	"time"

	"github.com/tidwall/gjson"
)

// responseCreated pins the response identity onto the state. Both fields
// must be present on the payload; a partial payload leaves the state
// untouched but the event is still forwarded.
func (m *Mux) responseCreated(s *State, evt gjson.Result, seq int64) []Event {
	response := evt.Get("response")
	id := response.Get("id")
	model := response.Get("model")
	if id.Type == gjson.String && id.Str != "" && model.Type == gjson.String && model.Str != "" {
		s.ResponseID = id.Str
		s.Model = model.Str
	}
	return []Event{newBody().
		forward("response", response).
		event("response_created", seq)}
}

// lifecyclePassthrough forwards queued/in_progress/incomplete/failed
// notifications along with the response id pinned on the state.
func (m *Mux) lifecyclePassthrough(name string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		return []Event{newBody().
			set("response_id", s.ResponseID).
			forward("response", evt.Get("response")).
			event(name, seq)}
	}
}

// responseError forwards the orthogonal error event, which the provider may
// emit at any point in the lifecycle.
func (m *Mux) responseError(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("response_id", s.ResponseID).
		forward("code", evt.Get("code")).
		forward("message", evt.Get("message")).
		forward("param", evt.Get("param")).
		event("response_error", seq)}
}

// responseCompleted emits the terminal snapshot: the full response plus
// usage, metadata, estimated cost, and wall-clock latency. A completion
// event without a response payload emits nothing and skips the estimator.
func (m *Mux) responseCompleted(s *State, evt gjson.Result, seq int64) []Event {
	response := evt.Get("response")
	if !response.Exists() {
		return nil
	}

	u := m.estimate.ExtractUsage(response)
	meta := m.estimate.ExtractResponseMetadata(response)
	model := meta.Model
	if model == "" {
		model = s.Model
	}
	cost := m.estimate.EstimateCost(u, model)
	latency := time.Since(s.StartTime).Milliseconds()

	s.FinalResponse = []byte(response.Raw)

	return []Event{newBody().
		setRaw("response", s.FinalResponse).
		setJSON("usage", u).
		setJSON("metadata", meta).
		set("estimated_cost", cost).
		set("latency_ms", latency).
		event("response_completed", seq)}
}
