package stream

import "github.com/tidwall/gjson"

// Image generation is stateless by design: frames are forwarded verbatim for
// progressive rendering, never accumulated into the state.

// imagePartial forwards one base64 frame.
func imagePartial(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("call_id", callID(evt)).
		forward("partial_image_b64", evt.Get("partial_image_b64")).
		forward("partial_image_index", evt.Get("partial_image_index")).
		forward("output_index", evt.Get("output_index")).
		event("image_generation_partial", seq)}
}

// imageCompleted forwards the final frame.
func imageCompleted(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("call_id", callID(evt)).
		forward("partial_image_b64", evt.Get("partial_image_b64")).
		forward("output_index", evt.Get("output_index")).
		event("image_generation_completed", seq)}
}
