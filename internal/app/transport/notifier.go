/*
Package transport implements the authenticated HTTP transport of the API client.

Every outbound request gets the bearer token of the stored session, and every 401
response clears that session and publishes an Invalidation. The transport never
navigates by itself: a higher-level component subscribes to the Notifier and reacts.
*/
package transport

import (
	"sync"
	"time"
)

// Invalidation describes a session that was cleared because the server answered 401.
type Invalidation struct {
	// At is the time the session was cleared.
	At time.Time

	// Method and Path identify the request that was rejected.
	Method string
	Path   string
}

// Notifier fans Invalidation events out to subscribers.
// Publishing never blocks: each subscriber has a one-slot buffer, and an event
// published while one is still pending for that subscriber is coalesced into it.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Invalidation
	next int
}

// NewNotifier returns a Notifier without subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Invalidation)}
}

// Subscribe registers a subscriber. The returned function unsubscribes and closes the channel.
func (n *Notifier) Subscribe() (<-chan Invalidation, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Invalidation, 1)
	n.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			close(ch)
		})
	}
}

// Publish delivers inv to every subscriber without blocking.
func (n *Notifier) Publish(inv Invalidation) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- inv:
		default:
		}
	}
}
