// Package stream normalizes the OpenAI Responses streaming vocabulary into a
// small, stable SSE protocol.
//
// Upstream events arrive as raw JSON, one at a time and in order. A static
// routing table maps the upstream type string to a category handler; the
// handler mutates the per-request State and returns zero or more normalized
// events, each stamped with the caller-supplied sequence number. Handlers are
// pure with respect to sequencing and never panic on malformed payloads:
// probing is done with gjson, so a missing or wrongly-typed field simply
// reads as its zero value.
//
// Event types the table does not know route to the unknown handler, which
// emits a single unknown_event carrying the original type string. New
// provider-side sub-phases of tool calls require no handler changes at all:
// progress events are forwarded with the fixed "response." prefix stripped.
package stream
