package stream

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var emptyObject = []byte(`{}`)

// Event is one normalized SSE event. Data always carries a "sequence" field
// equal to Sequence; the sequence is supplied by the single caller iterating
// the upstream stream, never generated here.
type Event struct {
	Name     string `json:"event"`
	Data     []byte `json:"data"`
	Sequence int64  `json:"sequence"`
}

// WriteTo serializes the event in SSE wire form:
//
//	event: <name>\n
//	data: <json>\n\n
func (e Event) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Name, e.Data)
	return int64(n), err
}

// MarshalJSON renders the event as a JSON envelope with the data inlined as
// a raw object rather than an escaped string.
func (e Event) MarshalJSON() ([]byte, error) {
	result := emptyObject
	result, err := sjson.SetBytes(result, "event", e.Name)
	if err != nil {
		return nil, err
	}
	data := e.Data
	if len(data) == 0 {
		data = emptyObject
	}
	result, err = sjson.SetRawBytes(result, "data", data)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "sequence", e.Sequence)
}

// UnmarshalJSON decodes the envelope produced by MarshalJSON.
func (e *Event) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	name := gjson.GetBytes(data, "event")
	if !name.Exists() {
		return fmt.Errorf("missing required field 'event'")
	}
	e.Name = name.String()

	if payload := gjson.GetBytes(data, "data"); payload.Exists() {
		e.Data = []byte(payload.Raw)
	} else {
		e.Data = emptyObject
	}

	seq := gjson.GetBytes(data, "sequence")
	if !seq.Exists() {
		return fmt.Errorf("missing required field 'sequence'")
	}
	e.Sequence = seq.Int()

	return nil
}

// body builds an event payload on a pre-allocated JSON object skeleton,
// sjson-style. All keys used by handlers are static identifiers, so the set
// calls cannot fail with an invalid path; errors keep the previous bytes.
type body struct {
	data []byte
}

func newBody() body {
	return body{data: emptyObject}
}

func (b body) set(key string, value any) body {
	if data, err := sjson.SetBytes(b.data, key, value); err == nil {
		b.data = data
	}
	return b
}

// setRaw inlines a raw JSON fragment under key.
func (b body) setRaw(key string, raw []byte) body {
	if len(raw) == 0 {
		return b
	}
	if data, err := sjson.SetRawBytes(b.data, key, raw); err == nil {
		b.data = data
	}
	return b
}

// forward copies a field off the upstream payload verbatim when present;
// absent fields stay genuinely absent.
func (b body) forward(key string, r gjson.Result) body {
	if !r.Exists() {
		return b
	}
	return b.setRaw(key, []byte(r.Raw))
}

// setJSON marshals value with goccy and inlines it under key.
func (b body) setJSON(key string, value any) body {
	raw, err := json.Marshal(value)
	if err != nil {
		return b
	}
	return b.setRaw(key, raw)
}

// event stamps the sequence into the payload and finalizes the Event. This
// is the single place the data/sequence invariant is established.
func (b body) event(name string, seq int64) Event {
	data, err := sjson.SetBytes(b.data, "sequence", seq)
	if err != nil {
		data = b.data
	}
	return Event{Name: name, Data: data, Sequence: seq}
}
