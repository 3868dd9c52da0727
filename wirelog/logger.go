package wirelog

import (
	"context"
	"log/slog"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// StreamRecord describes one normalized streaming event as it leaves the
// engine. Written once per dispatched upstream event.
type StreamRecord struct {
	RequestID  uuid.UUID       `json:"request_id"`
	ResponseID string          `json:"response_id,omitempty"`
	EventType  string          `json:"event_type"`
	Category   string          `json:"category"`
	Sequence   int64           `json:"sequence"`
	Emitted    int             `json:"emitted"`
	Timestamp  strfmt.DateTime `json:"timestamp"`
}

// InteractionRecord describes the terminal outcome of one provider
// interaction, successful or not. Written exactly once per failure by the
// error enricher, and once per completed stream by the lifecycle handler.
type InteractionRecord struct {
	RequestID uuid.UUID       `json:"request_id"`
	Path      string          `json:"path,omitempty"`
	Status    int             `json:"status"`
	Kind      string          `json:"kind"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code,omitempty"`
	Err       error           `json:"-"`
	Timestamp strfmt.DateTime `json:"timestamp"`
}

// Logger is the contract the engine depends on. Both calls are
// fire-and-forget.
type Logger interface {
	LogStreamingEvent(ctx context.Context, rec StreamRecord)
	LogOpenAIInteraction(ctx context.Context, rec InteractionRecord)
}

// Slog logs records through a slog.Logger. The zero value logs through
// slog.Default().
type Slog struct {
	Logger *slog.Logger
}

func (s Slog) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s Slog) LogStreamingEvent(ctx context.Context, rec StreamRecord) {
	s.logger().LogAttrs(ctx, slog.LevelDebug, "streaming event",
		slog.String("request_id", rec.RequestID.String()),
		slog.String("response_id", rec.ResponseID),
		slog.String("event_type", rec.EventType),
		slog.String("category", rec.Category),
		slog.Int64("sequence", rec.Sequence),
		slog.Int("emitted", rec.Emitted),
	)
}

func (s Slog) LogOpenAIInteraction(ctx context.Context, rec InteractionRecord) {
	attrs := []slog.Attr{
		slog.String("request_id", rec.RequestID.String()),
		slog.String("path", rec.Path),
		slog.Int("status", rec.Status),
		slog.String("kind", rec.Kind),
		slog.String("message", rec.Message),
	}
	if rec.ErrorCode != "" {
		attrs = append(attrs, slog.String("error_code", rec.ErrorCode))
	}
	level := slog.LevelInfo
	if rec.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", rec.Err.Error()))
	}
	s.logger().LogAttrs(ctx, level, "openai interaction", attrs...)
}

// Nop discards all records. Useful in tests and as a safe default.
type Nop struct{}

func (Nop) LogStreamingEvent(context.Context, StreamRecord)      {}
func (Nop) LogOpenAIInteraction(context.Context, InteractionRecord) {}
