package stream

import "github.com/tidwall/gjson"

// mcpCallFailed is the dedicated MCP terminal: it forwards the arbitrary
// error payload without altering the call record's status, so a failed call
// remains observably in_progress on the state.
func mcpCallFailed(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		set("call_id", callID(evt)).
		forward("error", evt.Get("error")).
		event("mcp_call_failed", seq)}
}

// mcpListToolsInProgress announces tool discovery on an MCP server.
func mcpListToolsInProgress(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		forward("server_label", evt.Get("server_label")).
		forward("item_id", evt.Get("item_id")).
		event("mcp_list_tools_in_progress", seq)}
}

// mcpListToolsCompleted forwards the discovered tool catalog.
func mcpListToolsCompleted(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		forward("server_label", evt.Get("server_label")).
		forward("tools", evt.Get("tools")).
		forward("item_id", evt.Get("item_id")).
		event("mcp_list_tools_completed", seq)}
}

// mcpListToolsFailed forwards the discovery error.
func mcpListToolsFailed(s *State, evt gjson.Result, seq int64) []Event {
	return []Event{newBody().
		forward("server_label", evt.Get("server_label")).
		forward("error", evt.Get("error")).
		event("mcp_list_tools_failed", seq)}
}
