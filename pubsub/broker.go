package pubsub

import (
	"context"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/google/uuid"

	"github.com/streamgate/streamgate/stream"
)

const defaultSlowSubscriberTimeout = 100 * time.Millisecond

// Broker hands out topics keyed by request id.
type Broker interface {
	Topic(ctx context.Context, id string) Topic
}

// Topic carries the normalized events of one streaming request.
type Topic interface {
	Publish(ctx context.Context, event stream.Event) error
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is one observer's view of a topic.
type Subscription interface {
	Events() <-chan stream.Event
	Unsubscribe()
}

type localBroker struct {
	topics                *haxmap.Map[string, *localTopic]
	slowSubscriberTimeout time.Duration
}

// LocalBroker returns an in-process broker. Subscribers that stop draining
// their channel are evicted after a short grace period so one slow observer
// cannot stall the stream for the rest.
func LocalBroker() Broker {
	return &localBroker{
		topics:                haxmap.New[string, *localTopic](),
		slowSubscriberTimeout: defaultSlowSubscriberTimeout,
	}
}

func (b *localBroker) Topic(_ context.Context, id string) Topic {
	topic, _ := b.topics.GetOrCompute(id, func() *localTopic {
		return &localTopic{
			id:                    id,
			subscriptions:         haxmap.New[string, *localSubscription](),
			slowSubscriberTimeout: b.slowSubscriberTimeout,
		}
	})
	return topic
}

type localTopic struct {
	id                    string
	subscriptions         *haxmap.Map[string, *localSubscription]
	slowSubscriberTimeout time.Duration
}

func (t *localTopic) Publish(ctx context.Context, event stream.Event) error {
	t.subscriptions.ForEach(func(id string, sub *localSubscription) bool {
		if sub == nil {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-sub.ctx.Done():
			sub.Unsubscribe()
			return true
		default:
		}

		select {
		case <-ctx.Done():
			return false
		case <-sub.ctx.Done():
			sub.Unsubscribe()
		case sub.channel <- event:
		case <-time.After(t.slowSubscriberTimeout):
			// channel still full after the grace period, drop the subscriber
			sub.Unsubscribe()
		}
		return true
	})
	return nil
}

func (t *localTopic) Subscribe(ctx context.Context) (Subscription, error) {
	id := uuid.Must(uuid.NewV7()).String()
	sub := &localSubscription{
		ctx:     ctx,
		channel: make(chan stream.Event, 50),
		onClose: func(s *localSubscription) { t.subscriptions.Del(id) },
	}
	t.subscriptions.Set(id, sub)
	return sub, nil
}

type localSubscription struct {
	ctx       context.Context
	channel   chan stream.Event
	closeOnce sync.Once
	onClose   func(*localSubscription)
}

func (s *localSubscription) Events() <-chan stream.Event {
	return s.channel
}

func (s *localSubscription) Unsubscribe() {
	s.closeOnce.Do(func() {
		s.onClose(s)
		close(s.channel)
	})
}
