package stream

import "github.com/tidwall/gjson"

// toolCallDelta accumulates argument fragments into the call record's Input,
// lazily creating the record on first sight of the call id.
func toolCallDelta(name string, typ ToolType) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		id := callID(evt)
		delta := coerceDelta(evt.Get("delta"))
		rec := s.toolCall(id, typ)
		rec.Input += delta
		return []Event{newBody().
			set("call_id", id).
			set("delta", delta).
			forward("output_index", evt.Get("output_index")).
			event(name, seq)}
	}
}

// toolCallDone flips the record to completed and emits the full value,
// preferring the upstream's final field over the local accumulation. A done
// event for an id that was never seen is a no-op on state but still emits.
func toolCallDone(name, key string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		id := callID(evt)
		full := evt.Get(key)
		b := newBody().set("call_id", id)
		if rec, ok := s.lookupToolCall(id); ok {
			rec.Status = ToolCallCompleted
			if full.Type == gjson.String {
				b = b.set(key, full.Str)
			} else {
				b = b.set(key, rec.Input)
			}
		} else {
			b = b.forward(key, full)
		}
		return []Event{b.event(name, seq)}
	}
}

// toolCallCompleted is the terminal for tools that report a result payload
// (code interpreter, MCP, computer use): it flips the record to completed
// and stores the result. Unknown ids still emit, touching no state.
func toolCallCompleted(name string, resultKeys ...string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		id := callID(evt)
		var result gjson.Result
		for _, key := range resultKeys {
			if r := evt.Get(key); r.Exists() {
				result = r
				break
			}
		}
		if rec, ok := s.lookupToolCall(id); ok {
			rec.Status = ToolCallCompleted
			if result.Exists() {
				rec.Result = []byte(result.Raw)
			}
		}
		return []Event{newBody().
			set("call_id", id).
			forward("result", result).
			event(name, seq)}
	}
}

// codeDelta accumulates code-interpreter source into the record's Code
// field, keeping it separate from the argument accumulation.
func codeDelta(name string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		id := callID(evt)
		delta := coerceDelta(evt.Get("delta"))
		rec := s.toolCall(id, ToolCodeInterpreter)
		rec.Code += delta
		return []Event{newBody().
			set("call_id", id).
			set("delta", delta).
			event(name, seq)}
	}
}

// codeDone mirrors toolCallDone for the accumulated code.
func codeDone(name string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		id := callID(evt)
		full := evt.Get("code")
		b := newBody().set("call_id", id)
		if rec, ok := s.lookupToolCall(id); ok {
			rec.Status = ToolCallCompleted
			if full.Type == gjson.String {
				b = b.set("code", full.Str)
			} else {
				b = b.set("code", rec.Code)
			}
		} else {
			b = b.forward("code", full)
		}
		return []Event{b.event(name, seq)}
	}
}

// toolProgress forwards provider sub-phase notifications (in_progress,
// searching, interpreting, generating, ...) with the fixed prefix stripped.
// New sub-phases flow through without handler changes.
func toolProgress(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("call_id", callID(evt)).
		forward("output_index", evt.Get("output_index")).
		event(strippedType(evt), seq)}
}
