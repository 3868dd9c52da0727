// Package usage extracts token accounting from terminal response payloads
// and estimates request cost from a per-million-token pricing table. All
// functions are pure; they are invoked only when a stream completes.
package usage

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Usage is the token accounting reported on a completed response.
type Usage struct {
	InputTokens     int64 `json:"input_tokens"`
	OutputTokens    int64 `json:"output_tokens"`
	TotalTokens     int64 `json:"total_tokens"`
	ReasoningTokens int64 `json:"reasoning_tokens,omitempty"`
	CachedTokens    int64 `json:"cached_tokens,omitempty"`
}

// Metadata is the identifying envelope of a completed response.
type Metadata struct {
	ID        string `json:"id,omitempty"`
	Model     string `json:"model,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// ExtractUsage reads the usage block off a response payload. Absent or
// malformed fields read as zero; TotalTokens falls back to the sum when the
// provider omits it.
func ExtractUsage(response gjson.Result) Usage {
	u := response.Get("usage")
	out := Usage{
		InputTokens:     u.Get("input_tokens").Int(),
		OutputTokens:    u.Get("output_tokens").Int(),
		TotalTokens:     u.Get("total_tokens").Int(),
		ReasoningTokens: u.Get("output_tokens_details.reasoning_tokens").Int(),
		CachedTokens:    u.Get("input_tokens_details.cached_tokens").Int(),
	}
	if out.TotalTokens == 0 {
		out.TotalTokens = out.InputTokens + out.OutputTokens
	}
	return out
}

// ExtractResponseMetadata reads the identifying fields off a response payload.
func ExtractResponseMetadata(response gjson.Result) Metadata {
	return Metadata{
		ID:        response.Get("id").String(),
		Model:     response.Get("model").String(),
		Status:    response.Get("status").String(),
		CreatedAt: response.Get("created_at").Int(),
	}
}

// rates are USD per one million tokens.
type rate struct {
	input  float64
	cached float64
	output float64
}

// pricing is keyed by model-name prefix; the longest matching prefix wins so
// dated snapshots like gpt-4o-2024-08-06 resolve to their family.
var pricing = map[string]rate{
	"gpt-4o-mini":  {input: 0.15, cached: 0.075, output: 0.60},
	"gpt-4o":       {input: 2.50, cached: 1.25, output: 10.00},
	"gpt-4.1-nano": {input: 0.10, cached: 0.025, output: 0.40},
	"gpt-4.1-mini": {input: 0.40, cached: 0.10, output: 1.60},
	"gpt-4.1":      {input: 2.00, cached: 0.50, output: 8.00},
	"o4-mini":      {input: 1.10, cached: 0.275, output: 4.40},
	"o3":           {input: 2.00, cached: 0.50, output: 8.00},
	"o1":           {input: 15.00, cached: 7.50, output: 60.00},
}

// EstimateCost returns the estimated USD cost for the given usage under the
// given model. Unknown models estimate to zero rather than guessing.
func EstimateCost(u Usage, model string) float64 {
	var best string
	for prefix := range pricing {
		if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return 0
	}
	r := pricing[best]
	billable := u.InputTokens - u.CachedTokens
	if billable < 0 {
		billable = 0
	}
	const million = 1_000_000
	return float64(billable)*r.input/million +
		float64(u.CachedTokens)*r.cached/million +
		float64(u.OutputTokens)*r.output/million
}
