/*
Package feed loads the upcoming and past event lists and turns events into card controllers.
*/
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"eventify/internal/app/card"
	"eventify/internal/app/event"
	"eventify/internal/app/session"
	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/metrics"
)

// Kind selects one of the two event lists.
type Kind int

const (
	Upcoming Kind = iota
	Past
)

func (k Kind) String() string {
	if k == Past {
		return "past"
	}
	return "upcoming"
}

// Backend is the subset of the API client the feed needs.
type Backend interface {
	card.Backend
	ListUpcomingEvents(ctx context.Context) ([]event.Event, error)
	ListPastEvents(ctx context.Context) ([]event.Event, error)
	GetEvent(ctx context.Context, id int) (*event.Event, error)
}

// Options configures a Feed.
type Options struct {
	Metrics *metrics.Metrics
	Now     func() time.Time
}

// Feed keeps the last loaded event lists.
type Feed struct {
	backend Backend
	store   session.Store
	opts    Options

	mu    sync.RWMutex
	lists map[Kind][]event.Event

	logger zerolog.Logger
}

// New returns an empty Feed. The store is read to find the viewer of built cards.
func New(backend Backend, store session.Store, opts Options) *Feed {
	return &Feed{
		backend: backend,
		store:   store,
		opts:    opts,
		lists:   make(map[Kind][]event.Event),
		logger:  logx.Component("feed"),
	}
}

// Load fetches one list and keeps it. The previous list is kept on failure.
func (f *Feed) Load(ctx context.Context, kind Kind) ([]event.Event, error) {
	var (
		events []event.Event
		err    error
	)
	if kind == Past {
		events, err = f.backend.ListPastEvents(ctx)
	} else {
		events, err = f.backend.ListUpcomingEvents(ctx)
	}
	if err != nil {
		f.logger.Warn().Err(err).Stringer("list", kind).Msg("Failed to load events")
		return nil, err
	}

	f.mu.Lock()
	f.lists[kind] = events
	f.mu.Unlock()
	return events, nil
}

// Refresh loads both lists concurrently. The loads are independent: a failing list
// neither cancels nor discards the other, and keeps its previous contents.
func (f *Feed) Refresh(ctx context.Context) error {
	var g errgroup.Group
	for _, kind := range []Kind{Upcoming, Past} {
		g.Go(func() error {
			_, err := f.Load(ctx, kind)
			return err
		})
	}
	return g.Wait()
}

// Events returns the last loaded list, filtered by a case-insensitive title query.
func (f *Feed) Events(kind Kind, query string) []event.Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return event.FilterByTitle(f.lists[kind], query)
}

// Cards builds one card controller per event of the last loaded list matching query.
// The caller owns the cards and closes them.
func (f *Feed) Cards(ctx context.Context, kind Kind, query string) ([]*card.Controller, error) {
	viewerID, err := f.viewerID(ctx)
	if err != nil {
		return nil, err
	}

	events := f.Events(kind, query)
	cards := make([]*card.Controller, 0, len(events))
	for _, e := range events {
		cards = append(cards, f.newCard(e, viewerID))
	}
	return cards, nil
}

// Details loads one event with its comments and ratings and returns its card.
func (f *Feed) Details(ctx context.Context, id int) (*card.Controller, error) {
	viewerID, err := f.viewerID(ctx)
	if err != nil {
		return nil, err
	}

	e, err := f.backend.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.newCard(*e, viewerID), nil
}

func (f *Feed) newCard(e event.Event, viewerID int) *card.Controller {
	return card.New(e, f.backend, card.Options{
		ViewerID: viewerID,
		Metrics:  f.opts.Metrics,
		Now:      f.opts.Now,
	})
}

// viewerID is the id of the signed-in user, or 0 when there is no usable session.
func (f *Feed) viewerID(ctx context.Context) (int, error) {
	sess, err := session.Current(ctx, f.store)
	switch {
	case err == nil:
		return sess.User.ID, nil
	case errs.Is(err, errs.ErrNoSession), errs.Is(err, errs.ErrSessionCorrupt):
		return 0, nil
	default:
		return 0, err
	}
}
