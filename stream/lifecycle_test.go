package stream

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/streamgate/streamgate/usage"
)

// countingEstimator wraps the default estimator and records invocations.
type countingEstimator struct {
	calls int
}

func (c *countingEstimator) ExtractUsage(response gjson.Result) usage.Usage {
	c.calls++
	return usage.ExtractUsage(response)
}

func (c *countingEstimator) ExtractResponseMetadata(response gjson.Result) usage.Metadata {
	return usage.ExtractResponseMetadata(response)
}

func (c *countingEstimator) EstimateCost(u usage.Usage, model string) float64 {
	return usage.EstimateCost(u, model)
}

func TestResponseCreatedPinsIdentity(t *testing.T) {
	m := NewMux(uuid.New(), nil, nil)

	t.Run("both fields present", func(t *testing.T) {
		s := NewState()
		events := dispatch(t, m, s, `{"type":"response.created","response":{"id":"resp_1","model":"gpt-4o"}}`, 0)
		require.Len(t, events, 1)
		assert.Equal(t, "response_created", events[0].Name)
		assert.Equal(t, "resp_1", s.ResponseID)
		assert.Equal(t, "gpt-4o", s.Model)
	})

	t.Run("missing model leaves state untouched", func(t *testing.T) {
		s := NewState()
		events := dispatch(t, m, s, `{"type":"response.created","response":{"id":"resp_1"}}`, 0)
		require.Len(t, events, 1)
		assert.Empty(t, s.ResponseID)
		assert.Empty(t, s.Model)
	})

	t.Run("missing response payload never panics", func(t *testing.T) {
		s := NewState()
		events := dispatch(t, m, s, `{"type":"response.created"}`, 0)
		require.Len(t, events, 1)
		assert.Empty(t, s.ResponseID)
	})
}

func TestResponseCompletedSnapshot(t *testing.T) {
	estimator := &countingEstimator{}
	m := NewMux(uuid.New(), nil, estimator)
	s := NewState()

	raw := `{"type":"response.completed","response":{"id":"resp_1","model":"gpt-4o-mini","status":"completed","usage":{"input_tokens":10,"output_tokens":20,"total_tokens":30}}}`
	events := dispatch(t, m, s, raw, 9)
	require.Len(t, events, 1)
	assert.Equal(t, "response_completed", events[0].Name)
	assert.Equal(t, 1, estimator.calls)
	assert.NotEmpty(t, s.FinalResponse)

	parsed := gjson.ParseBytes(events[0].Data)
	assert.Equal(t, int64(30), parsed.Get("usage.total_tokens").Int())
	assert.Equal(t, "gpt-4o-mini", parsed.Get("metadata.model").String())
	assert.True(t, parsed.Get("estimated_cost").Float() > 0)
	assert.True(t, parsed.Get("latency_ms").Exists())
	assert.Equal(t, int64(9), parsed.Get("sequence").Int())
}

func TestResponseCompletedWithoutPayloadEmitsNothing(t *testing.T) {
	estimator := &countingEstimator{}
	m := NewMux(uuid.New(), nil, estimator)
	s := NewState()

	events := dispatch(t, m, s, `{"type":"response.completed"}`, 0)
	assert.Empty(t, events)
	assert.Zero(t, estimator.calls)
	assert.Empty(t, s.FinalResponse)
}

func TestLifecyclePassthroughs(t *testing.T) {
	m := NewMux(uuid.New(), nil, nil)

	tests := []struct {
		upstream string
		want     string
	}{
		{upstream: "response.queued", want: "response_queued"},
		{upstream: "response.in_progress", want: "response_in_progress"},
		{upstream: "response.incomplete", want: "response_incomplete"},
		{upstream: "response.failed", want: "response_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.upstream, func(t *testing.T) {
			s := NewState()
			s.ResponseID = "resp_1"
			events := dispatch(t, m, s, `{"type":"`+tt.upstream+`","response":{"status":"x"}}`, 1)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want, events[0].Name)
			assert.Equal(t, "resp_1", gjson.GetBytes(events[0].Data, "response_id").String())
		})
	}
}

func TestErrorEventForwardsAtAnyPoint(t *testing.T) {
	m := NewMux(uuid.New(), nil, nil)
	s := NewState()
	s.ResponseID = "resp_1"

	events := dispatch(t, m, s, `{"type":"error","code":"server_error","message":"boom"}`, 3)
	require.Len(t, events, 1)
	assert.Equal(t, "response_error", events[0].Name)

	parsed := gjson.ParseBytes(events[0].Data)
	assert.Equal(t, "server_error", parsed.Get("code").String())
	assert.Equal(t, "boom", parsed.Get("message").String())
	assert.Equal(t, "resp_1", parsed.Get("response_id").String())
}

// TestCountToThree walks the canonical happy path end to end.
func TestCountToThree(t *testing.T) {
	m := NewMux(uuid.New(), nil, nil)
	s := NewState()

	inputs := []string{
		`{"type":"response.created","response":{"id":"resp_1","model":"gpt-4o-mini"}}`,
		`{"type":"response.output_text.delta","delta":"1"}`,
		`{"type":"response.output_text.delta","delta":", 2"}`,
		`{"type":"response.output_text.delta","delta":", 3"}`,
		`{"type":"response.output_text.done"}`,
		`{"type":"response.completed","response":{"id":"resp_1","model":"gpt-4o-mini","usage":{"input_tokens":5,"output_tokens":7,"total_tokens":12}}}`,
	}

	var all []Event
	for i, raw := range inputs {
		all = append(all, dispatch(t, m, s, raw, int64(i))...)
	}

	var created, deltas, dones, completed []Event
	for _, e := range all {
		switch e.Name {
		case "response_created":
			created = append(created, e)
		case "text_delta":
			deltas = append(deltas, e)
		case "text_done":
			dones = append(dones, e)
		case "response_completed":
			completed = append(completed, e)
		}
	}

	require.Len(t, created, 1)
	require.Len(t, dones, 1)
	require.Len(t, completed, 1)
	require.NotEmpty(t, deltas)

	var concat string
	last := int64(-1)
	for _, d := range deltas {
		assert.Greater(t, d.Sequence, last)
		last = d.Sequence
		concat += gjson.GetBytes(d.Data, "delta").String()
	}
	assert.Equal(t, "1, 2, 3", concat)
	assert.Equal(t, concat, gjson.GetBytes(dones[0].Data, "text").String())
	assert.Equal(t, int64(12), gjson.GetBytes(completed[0].Data, "usage.total_tokens").Int())
}
