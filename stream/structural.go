package stream

import "github.com/tidwall/gjson"

// structuralPassthrough forwards output-item and content-part bookkeeping
// events with the fixed prefix stripped. Whichever of the known payload
// fields is present is forwarded; the rest stay absent.
func structuralPassthrough(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		forward("item", evt.Get("item")).
		forward("part", evt.Get("part")).
		forward("annotation", evt.Get("annotation")).
		forward("item_id", evt.Get("item_id")).
		forward("output_index", evt.Get("output_index")).
		forward("content_index", evt.Get("content_index")).
		forward("summary_index", evt.Get("summary_index")).
		forward("annotation_index", evt.Get("annotation_index")).
		event(strippedType(evt), seq)}
}

// unknownEvent is mandatory infrastructure: any upstream type absent from
// the routing table lands here, so the pipeline never drops or crashes on an
// event it does not know yet.
func unknownEvent(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("type", evt.Get("type").String()).
		event("unknown_event", seq)}
}
