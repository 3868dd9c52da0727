// Package pubsub mirrors normalized stream events to interested observers.
// The relay treats a Topic as an optional fire-and-forget sink: SSE delivery
// to the requesting client never waits on subscribers.
//
// Two brokers are provided: a local in-process broker backed by a lock-free
// topic map, and a NATS broker that publishes encoded events to a subject
// per request.
package pubsub
