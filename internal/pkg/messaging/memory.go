package messaging

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Memory is an in-process broker. Every Consume call on a topic receives
// every message published after it subscribed. There is no redelivery: a
// nacked message is dropped.
type Memory struct {
	mu     sync.RWMutex
	subs   map[string][]chan *delivery
	seq    uint64
	closed bool
}

// NewMemory returns an empty in-process broker.
func NewMemory() *Memory {
	return &Memory{subs: map[string][]chan *delivery{}}
}

// Close stops accepting publishes.
func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Publish hands the message to every current subscriber of destination.
func (m *Memory) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return PublishResult{}, ErrClosed
	}
	m.seq++
	id := strconv.FormatUint(m.seq, 10)
	subs := append([]chan *delivery(nil), m.subs[destination]...)
	m.mu.Unlock()

	now := time.Now()
	for _, ch := range subs {
		d := &delivery{id: id, topic: destination, body: msg.Body, key: msg.Key, headers: mergedHeaders(msg), timestamp: now}
		select {
		case ch <- d:
		case <-ctx.Done():
			return PublishResult{}, ctx.Err()
		}
	}

	return PublishResult{MessageID: id, Topic: destination, Timestamp: now}, nil
}

// Consume subscribes to source and handles messages until ctx is done.
func (m *Memory) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if source == "" {
		return ErrDestinationRequired
	}
	if handler == nil {
		return ErrHandlerRequired
	}
	co := newConsumeOptions(opts...)
	ch := make(chan *delivery, max(co.maxInFlight, 16))

	m.mu.Lock()
	m.subs[source] = append(m.subs[source], ch)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		subs := m.subs[source]
		for i := range subs {
			if subs[i] == ch {
				m.subs[source] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}()

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Go(func() {
			for {
				select {
				case <-ctx.Done():
					return
				case d := <-ch:
					dispatch(ctx, "memory", handler, d, co.autoAck)
				}
			}
		})
	}

	<-ctx.Done()
	wg.Wait()
	return ctx.Err()
}

// Subscribed reports the number of active consumers of topic. Tests use it
// to wait until Consume has registered.
func (m *Memory) Subscribed(topic string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs[topic])
}
