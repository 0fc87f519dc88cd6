/*
Package nav holds the navigation state of the client: the current route and its back stack.

The Navigator is the component that reacts to session invalidations published by the
authenticated transport, moving the client back to the login route.
*/
package nav

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"eventify/internal/app/transport"
	"eventify/internal/pkg/logx"
)

// Route names one screen of the client.
type Route string

const (
	Login    Route = "login_screen"
	SignUp   Route = "sign_up_screen"
	Home     Route = "home_screen"
	AddEvent Route = "add_event"

	eventDetailsPrefix = "event_details_screen/"
	editEventPrefix    = "edit_event_screen/"
)

// EventDetails is the route of the details screen of one event.
func EventDetails(id int) Route {
	return Route(eventDetailsPrefix + strconv.Itoa(id))
}

// EditEvent is the route of the edit form of one event.
func EditEvent(id int) Route {
	return Route(editEventPrefix + strconv.Itoa(id))
}

// EventID returns the event id carried by a details or edit route.
func (r Route) EventID() (int, bool) {
	s := string(r)
	for _, prefix := range []string{eventDetailsPrefix, editEventPrefix} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			id, err := strconv.Atoi(rest)
			return id, err == nil
		}
	}
	return 0, false
}

// Authenticated reports whether the route requires a session.
func (r Route) Authenticated() bool {
	return r != Login && r != SignUp
}

// Navigator tracks the current route. It is safe for concurrent use.
type Navigator struct {
	mu sync.Mutex

	// stack holds the back stack; its last element is the current route.
	stack []Route

	subs map[int]chan Route
	next int

	logger zerolog.Logger
}

// New returns a Navigator positioned at start.
func New(start Route) *Navigator {
	return &Navigator{
		stack:  []Route{start},
		subs:   make(map[int]chan Route),
		logger: logx.Component("navigator"),
	}
}

// Current returns the current route.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Navigate pushes r on the back stack. Navigating to the current route is a no-op.
func (n *Navigator) Navigate(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.stack[len(n.stack)-1] == r {
		return
	}
	n.stack = append(n.stack, r)
	n.publishLocked(r)
}

// Reset replaces the whole back stack with r.
func (n *Navigator) Reset(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()

	changed := n.stack[len(n.stack)-1] != r
	n.stack = []Route{r}
	if changed {
		n.publishLocked(r)
	}
}

// Back pops the current route. It reports false when there is nothing to go back to.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.stack) < 2 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	n.publishLocked(n.stack[len(n.stack)-1])
	return true
}

// Subscribe returns a channel receiving route changes. Only the latest pending
// change is kept for a slow subscriber. The returned function unsubscribes.
func (n *Navigator) Subscribe() (<-chan Route, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Route, 1)
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

// Watch moves to the login route, dropping the back stack, for every invalidation
// received. It returns when ctx is done or invalidations is closed.
func (n *Navigator) Watch(ctx context.Context, invalidations <-chan transport.Invalidation) {
	for {
		select {
		case <-ctx.Done():
			return
		case inv, ok := <-invalidations:
			if !ok {
				return
			}
			n.logger.Info().
				Str("request_path", inv.Path).
				Time("invalidated_at", inv.At).
				Msg("Session invalidated, returning to login")
			n.Reset(Login)
		}
	}
}

func (n *Navigator) publishLocked(r Route) {
	for _, ch := range n.subs {
		select {
		case ch <- r:
		default:
			// Replace the stale pending route with the latest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- r:
			default:
			}
		}
	}
}
