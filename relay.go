// Package streamgate fronts the OpenAI Responses streaming API with a
// normalized SSE protocol and a single enriched error envelope.
//
// A Relay drives one request: it owns the sequence counter and the
// per-request accumulator, consumes an already-ordered sequence of raw
// upstream events, routes each one through the normalization engine, and
// writes the resulting SSE events to the client. Failures anywhere on the
// path go through the error enricher exactly once.
package streamgate

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/fogfish/opts"
	"github.com/google/uuid"

	"github.com/streamgate/streamgate/apierr"
	"github.com/streamgate/streamgate/pubsub"
	"github.com/streamgate/streamgate/stream"
	"github.com/streamgate/streamgate/wirelog"
)

// Relay drives one streaming request. It is single-threaded by contract:
// the upstream loop hands it events one at a time, in order, and nothing
// else ever touches its state.
type Relay struct {
	id       uuid.UUID
	log      wirelog.Logger
	estimate stream.Estimator
	topic    pubsub.Topic

	state  *stream.State
	mux    *stream.Mux
	enrich *apierr.Enricher
	seq    int64
}

// RelayOption configures a Relay.
type RelayOption = opts.Option[Relay]

// WithLogger routes observability records to the given logger.
func WithLogger(log wirelog.Logger) opts.Option[Relay] {
	return opts.Type[Relay](func(r *Relay) error {
		r.log = log
		return nil
	})
}

// WithEstimator overrides the usage/cost collaborator consulted when the
// stream completes.
func WithEstimator(estimate stream.Estimator) opts.Option[Relay] {
	return opts.Type[Relay](func(r *Relay) error {
		r.estimate = estimate
		return nil
	})
}

// WithTopic mirrors every emitted event to the given pubsub topic,
// fire-and-forget.
func WithTopic(topic pubsub.Topic) opts.Option[Relay] {
	return opts.Type[Relay](func(r *Relay) error {
		r.topic = topic
		return nil
	})
}

// WithRequestID pins the request id instead of generating one.
func WithRequestID(id uuid.UUID) opts.Option[Relay] {
	return opts.Type[Relay](func(r *Relay) error {
		r.id = id
		return nil
	})
}

// New builds a relay for a single request.
func New(options ...opts.Option[Relay]) (*Relay, error) {
	r := &Relay{
		id:  uuid.Must(uuid.NewV7()),
		log: wirelog.Slog{},
	}
	if err := opts.Apply(r, options); err != nil {
		return nil, fmt.Errorf("apply relay options: %w", err)
	}

	r.state = stream.NewState()
	r.mux = stream.NewMux(r.id, r.log, r.estimate)
	r.enrich = apierr.NewEnricher(r.log)
	return r, nil
}

// ID returns the relay's request id.
func (r *Relay) ID() uuid.UUID {
	return r.id
}

// State exposes the accumulator, e.g. to read the final text after Run.
func (r *Relay) State() *stream.State {
	return r.state
}

// Run consumes the ordered upstream event sequence and writes normalized
// SSE events to w, flushing after each upstream event when w supports it.
// The relay is the single owner of the sequence counter; handlers only ever
// stamp the value they are given.
func (r *Relay) Run(ctx context.Context, events iter.Seq[[]byte], w io.Writer) error {
	flusher, _ := w.(http.Flusher)

	for raw := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, out := r.mux.Dispatch(ctx, r.state, raw, r.seq)
		r.seq++

		for _, event := range out {
			if _, err := event.WriteTo(w); err != nil {
				return fmt.Errorf("write sse event %q: %w", event.Name, err)
			}
			if r.topic != nil {
				// fire-and-forget: a broken observer must not fail the stream
				_ = r.topic.Publish(ctx, event)
			}
		}
		if flusher != nil && len(out) > 0 {
			flusher.Flush()
		}
	}

	return ctx.Err()
}

// Fail classifies err into the canonical error envelope for this request.
func (r *Relay) Fail(ctx context.Context, err error, path string) *apierr.Response {
	return r.enrich.Enrich(ctx, r.id, err, path)
}
