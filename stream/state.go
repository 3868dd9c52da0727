package stream

import (
	"time"

	"github.com/tidwall/gjson"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ToolType identifies which tool family a call record belongs to.
type ToolType string

const (
	ToolFunction        ToolType = "function"
	ToolCodeInterpreter ToolType = "code_interpreter"
	ToolFileSearch      ToolType = "file_search"
	ToolWebSearch       ToolType = "web_search"
	ToolCustom          ToolType = "custom_tool"
	ToolMCP             ToolType = "mcp"
	ToolComputerUse     ToolType = "computer_use"
)

// ToolCallStatus is the lifecycle of one tool invocation.
type ToolCallStatus string

const (
	ToolCallInProgress ToolCallStatus = "in_progress"
	ToolCallCompleted  ToolCallStatus = "completed"
)

// ToolCallRecord tracks one tool invocation. Input accumulates argument
// deltas; Code accumulates code-interpreter source separately. Status flips
// to completed exactly once, by the matching done/completed event. Records
// are never deleted; their lifetime matches the owning State.
type ToolCallRecord struct {
	Type   ToolType       `json:"type"`
	Input  string         `json:"input"`
	Code   string         `json:"code,omitempty"`
	Status ToolCallStatus `json:"status"`
	Result []byte         `json:"result,omitempty"`
}

// unknownCallID buckets events that arrive without a correlation id.
// Concurrent id-less calls collapse into this one record.
const unknownCallID = "unknown"

// State is the per-request accumulator. It is exclusively owned by the
// request that created it and is only ever touched by handlers running on
// that request's event loop, so no locking is involved.
type State struct {
	FullText         string
	Reasoning        string
	ReasoningSummary string
	Refusal          string
	Audio            string
	AudioTranscript  string

	// ToolCalls preserves arrival order so the completion snapshot lists
	// calls the way the provider issued them.
	ToolCalls *orderedmap.OrderedMap[string, *ToolCallRecord]

	ResponseID string
	Model      string

	StartTime     time.Time
	FinalResponse []byte
}

// NewState returns a fresh accumulator with the latency clock started.
func NewState() *State {
	return &State{
		ToolCalls: orderedmap.New[string, *ToolCallRecord](),
		StartTime: time.Now(),
	}
}

// toolCall returns the record for id, lazily creating it in in_progress
// state on first sight.
func (s *State) toolCall(id string, typ ToolType) *ToolCallRecord {
	if rec, ok := s.ToolCalls.Get(id); ok {
		return rec
	}
	rec := &ToolCallRecord{Type: typ, Status: ToolCallInProgress}
	s.ToolCalls.Set(id, rec)
	return rec
}

// lookupToolCall returns the record for id without creating one.
func (s *State) lookupToolCall(id string) (*ToolCallRecord, bool) {
	return s.ToolCalls.Get(id)
}

// callID extracts the correlation id of a tool event, trying item_id then
// call_id, and falling back to the shared unknown bucket.
func callID(evt gjson.Result) string {
	if id := evt.Get("item_id"); id.Type == gjson.String && id.Str != "" {
		return id.Str
	}
	if id := evt.Get("call_id"); id.Type == gjson.String && id.Str != "" {
		return id.Str
	}
	return unknownCallID
}
