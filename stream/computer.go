package stream

import "github.com/tidwall/gjson"

// Computer-use actions carry a discriminated payload (mouse_move, click,
// type, key, screenshot) and are forwarded self-contained rather than
// text-accumulated. The call record exists purely so the completion
// terminal has somewhere to attach the output.

// computerAction handles both the action delta and the action done events,
// lazily creating the computer_use record for the call id.
func computerAction(name string) Handler {
	return func(s *State, evt gjson.Result, seq int64) []Event {
		id := callID(evt)
		s.toolCall(id, ToolComputerUse)
		return []Event{newBody().
			set("call_id", id).
			forward("action", evt.Get("action")).
			forward("pending_safety_checks", evt.Get("pending_safety_checks")).
			event(name, seq)}
	}
}

// computerOutputItem forwards the screenshot capture lifecycle; the done
// event carries the base64 image payload inside the item.
func computerOutputItem(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("call_id", callID(evt)).
		forward("item", evt.Get("item")).
		forward("output_index", evt.Get("output_index")).
		event(strippedType(evt), seq)}
}
