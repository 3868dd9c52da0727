package streamgate

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/streamgate/streamgate/pubsub"
	"github.com/streamgate/streamgate/wirelog"
)

func sequence(raws ...string) func(yield func([]byte) bool) {
	return func(yield func([]byte) bool) {
		for _, raw := range raws {
			if !yield([]byte(raw)) {
				return
			}
		}
	}
}

// sseFrames splits an SSE byte stream into event/data pairs.
func sseFrames(t *testing.T, payload string) []map[string]string {
	t.Helper()
	var frames []map[string]string
	frame := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(payload))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if len(frame) > 0 {
				frames = append(frames, frame)
				frame = map[string]string{}
			}
		case strings.HasPrefix(line, "event: "):
			frame["event"] = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			frame["data"] = strings.TrimPrefix(line, "data: ")
		}
	}
	require.NoError(t, scanner.Err())
	return frames
}

// flushRecorder counts Flush calls on the response writer.
type flushRecorder struct {
	bytes.Buffer
	flushes int
}

func (f *flushRecorder) Flush() { f.flushes++ }

func TestRelayRunWritesOrderedFrames(t *testing.T) {
	relay, err := New(WithLogger(wirelog.Nop{}))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = relay.Run(context.Background(), sequence(
		`{"type":"response.created","response":{"id":"resp_1","model":"gpt-4o-mini"}}`,
		`{"type":"response.output_text.delta","delta":"hi"}`,
		`{"type":"response.output_text.done"}`,
	), &buf)
	require.NoError(t, err)

	frames := sseFrames(t, buf.String())
	require.Len(t, frames, 3)
	assert.Equal(t, "response_created", frames[0]["event"])
	assert.Equal(t, "text_delta", frames[1]["event"])
	assert.Equal(t, "text_done", frames[2]["event"])

	// the relay owns the counter: one increment per upstream event, and the
	// serialized sequence always matches
	for i, frame := range frames {
		data := gjson.Parse(frame["data"])
		require.True(t, data.Exists(), "frame %d data is not json", i)
		assert.Equal(t, int64(i), data.Get("sequence").Int())
	}

	assert.Equal(t, "hi", relay.State().FullText)
}

func TestRelaySequenceAdvancesOnSilentEvents(t *testing.T) {
	relay, err := New(WithLogger(wirelog.Nop{}))
	require.NoError(t, err)

	var buf bytes.Buffer
	// the bare completion emits nothing but still consumes a sequence slot
	err = relay.Run(context.Background(), sequence(
		`{"type":"response.completed"}`,
		`{"type":"response.output_text.delta","delta":"x"}`,
	), &buf)
	require.NoError(t, err)

	frames := sseFrames(t, buf.String())
	require.Len(t, frames, 1)
	assert.Equal(t, int64(1), gjson.Parse(frames[0]["data"]).Get("sequence").Int())
}

func TestRelayFlushesPerUpstreamEvent(t *testing.T) {
	relay, err := New(WithLogger(wirelog.Nop{}))
	require.NoError(t, err)

	w := &flushRecorder{}
	err = relay.Run(context.Background(), sequence(
		`{"type":"response.output_text.delta","delta":"a"}`,
		`{"type":"response.output_text.delta","delta":"b"}`,
	), w)
	require.NoError(t, err)
	assert.Equal(t, 2, w.flushes)
}

func TestRelayStopsOnCanceledContext(t *testing.T) {
	relay, err := New(WithLogger(wirelog.Nop{}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err = relay.Run(ctx, sequence(`{"type":"response.output_text.delta","delta":"a"}`), &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestRelayMirrorsEventsToTopic(t *testing.T) {
	broker := pubsub.LocalBroker()

	requestID := uuid.Must(uuid.NewV7())
	topic := broker.Topic(context.Background(), requestID.String())
	sub, err := topic.Subscribe(context.Background())
	require.NoError(t, err)
	defer sub.Unsubscribe()

	relay, err := New(
		WithRequestID(requestID),
		WithLogger(wirelog.Nop{}),
		WithTopic(topic),
	)
	require.NoError(t, err)
	assert.Equal(t, requestID, relay.ID())

	var buf bytes.Buffer
	err = relay.Run(context.Background(), sequence(
		`{"type":"response.output_text.delta","delta":"observed"}`,
	), &buf)
	require.NoError(t, err)

	event := <-sub.Events()
	assert.Equal(t, "text_delta", event.Name)
	assert.Equal(t, "observed", gjson.GetBytes(event.Data, "delta").String())
}

func TestRelayFailProducesEnvelope(t *testing.T) {
	relay, err := New(WithLogger(wirelog.Nop{}))
	require.NoError(t, err)

	resp := relay.Fail(context.Background(), context.DeadlineExceeded, "/v1/responses")
	require.NotNil(t, resp)
	assert.Equal(t, 504, resp.StatusCode)
	assert.Equal(t, "/v1/responses", resp.Path)
}

func TestRelayUnknownUpstreamSurvives(t *testing.T) {
	relay, err := New(WithLogger(wirelog.Nop{}))
	require.NoError(t, err)

	var buf bytes.Buffer
	err = relay.Run(context.Background(), sequence(
		`{"type":"response.experimental.beta"}`,
		`{"type":"response.output_text.delta","delta":"still here"}`,
	), &buf)
	require.NoError(t, err)

	frames := sseFrames(t, buf.String())
	require.Len(t, frames, 2)
	assert.Equal(t, "unknown_event", frames[0]["event"])
	assert.Equal(t, "text_delta", frames[1]["event"])
}
