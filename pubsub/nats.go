package pubsub

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"

	"github.com/streamgate/streamgate/stream"
)

const subjectPrefix = "streamgate.events."

// NATSBroker mirrors events to NATS subjects, one subject per request id, so
// out-of-process observers can follow a generation stream.
type NATSBroker struct {
	conn *nats.Conn
}

// ConnectNATS dials the given NATS URL with sane reconnect defaults.
func ConnectNATS(url string) (*NATSBroker, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.RetryOnFailedConnect(true),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATSBroker{conn: conn}, nil
}

// NewNATSBroker wraps an existing connection; the caller keeps ownership.
func NewNATSBroker(conn *nats.Conn) *NATSBroker {
	return &NATSBroker{conn: conn}
}

func (b *NATSBroker) Topic(_ context.Context, id string) Topic {
	return &natsTopic{conn: b.conn, subject: subjectPrefix + id}
}

// Close drains the connection.
func (b *NATSBroker) Close() error {
	return b.conn.Drain()
}

type natsTopic struct {
	conn    *nats.Conn
	subject string
}

func (t *natsTopic) Publish(_ context.Context, event stream.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %q: %w", event.Name, err)
	}
	if err := t.conn.Publish(t.subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", t.subject, err)
	}
	return nil
}

func (t *natsTopic) Subscribe(ctx context.Context) (Subscription, error) {
	channel := make(chan stream.Event, 50)
	sub, err := t.conn.Subscribe(t.subject, func(msg *nats.Msg) {
		var event stream.Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return
		}
		select {
		case channel <- event:
		case <-ctx.Done():
		default:
			// observer is not draining, drop rather than block the nats callback
		}
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", t.subject, err)
	}
	return &natsSubscription{sub: sub, channel: channel}, nil
}

type natsSubscription struct {
	sub     *nats.Subscription
	channel chan stream.Event
}

func (s *natsSubscription) Events() <-chan stream.Event {
	return s.channel
}

func (s *natsSubscription) Unsubscribe() {
	_ = s.sub.Unsubscribe()
	close(s.channel)
}
