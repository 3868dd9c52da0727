package stream

import "github.com/tidwall/gjson"

// The four accumulator families (text, reasoning, refusal, audio) are
// structurally identical: a delta handler appends the coerced delta to one
// state field and forwards only the increment; a done handler reads the full
// accumulated value back off the state.

func accumulateDelta(name string, field func(*State) *string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		delta := coerceDelta(evt.Get("delta"))
		*field(s) += delta
		return []Event{newBody().
			set("delta", delta).
			forward("item_id", evt.Get("item_id")).
			forward("output_index", evt.Get("output_index")).
			forward("content_index", evt.Get("content_index")).
			event(name, seq)}
	}
}

func accumulateDone(name, key string, field func(*State) *string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		return []Event{newBody().
			set(key, *field(s)).
			forward("item_id", evt.Get("item_id")).
			event(name, seq)}
	}
}

func fullText(s *State) *string         { return &s.FullText }
func reasoning(s *State) *string        { return &s.Reasoning }
func reasoningSummary(s *State) *string { return &s.ReasoningSummary }
func refusal(s *State) *string          { return &s.Refusal }
func audio(s *State) *string            { return &s.Audio }
func audioTranscript(s *State) *string  { return &s.AudioTranscript }
