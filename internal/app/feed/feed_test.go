package feed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"eventify/internal/app/api"
	"eventify/internal/app/card"
	"eventify/internal/app/event"
	"eventify/internal/app/session"
	"eventify/internal/app/transport"
	"eventify/internal/handler/stubtest"
	"eventify/internal/pkg/errs"
)

// newFeed signs "viewer" into a fresh stub and returns a Feed for that session.
func newFeed(t *testing.T) (*Feed, *stubtest.Server, *session.Session) {
	t.Helper()
	ctx := context.Background()

	stub := stubtest.Start(t)
	store := session.NewMemoryStore()
	httpClient := &http.Client{Timeout: 5 * time.Second}
	transport.Install(httpClient, store, transport.Options{})

	client, err := api.New(stub.BaseURL(), httpClient)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := stub.Store.AddUser("viewer", "viewer@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	sess, err := client.Login(ctx, api.LoginRequest{Email: "viewer@example.com", Password: "pw"})
	if err != nil {
		t.Fatal(err)
	}
	if err := session.Persist(ctx, store, sess); err != nil {
		t.Fatal(err)
	}

	return New(client, store, Options{}), stub, sess
}

// Scenario: three upcoming events, one sold out; that card never offers confirmation.
func TestFeed_SoldOutCardNeverConfirms(t *testing.T) {
	f, stub, sess := newFeed(t)
	ctx := context.Background()

	stub.AddEvent(t, sess.User.ID, "Open Air", 10, 24*time.Hour)
	soldOut := stub.AddEvent(t, sess.User.ID+100, "Sold Out Gala", 0, 48*time.Hour)
	stub.AddEvent(t, sess.User.ID+100, "Jazz Night", 3, 72*time.Hour)

	events, err := f.Load(ctx, Upcoming)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Load() returned %d events, want 3", len(events))
	}

	cards, err := f.Cards(ctx, Upcoming, "")
	if err != nil {
		t.Fatalf("Cards() error = %v", err)
	}
	defer func() {
		for _, c := range cards {
			c.Close()
		}
	}()

	for _, c := range cards {
		v := c.Snapshot()
		if c.EventID() == soldOut.ID {
			if v.CanConfirm {
				t.Error("sold out card offers confirmation")
			}
			if err := c.OpenConfirmation(); err == nil {
				t.Error("sold out card opened the confirmation modal")
			}
			continue
		}
		if !v.CanConfirm {
			t.Errorf("card %q should offer confirmation", v.Event.Title)
		}
	}
}

// Requirement: cards know whether the viewer organizes the event.
func TestFeed_CardsEditability(t *testing.T) {
	f, stub, sess := newFeed(t)
	ctx := context.Background()

	own := stub.AddEvent(t, sess.User.ID, "My Event", 5, 24*time.Hour)
	stub.AddEvent(t, sess.User.ID+100, "Their Event", 5, 24*time.Hour)

	if _, err := f.Load(ctx, Upcoming); err != nil {
		t.Fatal(err)
	}
	cards, err := f.Cards(ctx, Upcoming, "")
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range cards {
		v := c.Snapshot()
		if want := c.EventID() == own.ID; v.Editable != want || v.CanEdit != want {
			t.Errorf("%q: Editable %v CanEdit %v, want %v", v.Event.Title, v.Editable, v.CanEdit, want)
		}
		c.Close()
	}
}

// Requirement: Refresh loads both lists and search filters titles case-insensitively.
func TestFeed_RefreshAndSearch(t *testing.T) {
	f, stub, sess := newFeed(t)

	stub.AddEvent(t, sess.User.ID, "Go Meetup", 5, 24*time.Hour)
	stub.AddEvent(t, sess.User.ID, "Jazz Night", 5, 48*time.Hour)
	stub.AddEvent(t, sess.User.ID, "Old GopherCon", 5, -24*time.Hour)

	if err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if got := f.Events(Upcoming, ""); len(got) != 2 {
		t.Errorf("upcoming = %d events, want 2", len(got))
	}
	if got := f.Events(Past, ""); len(got) != 1 {
		t.Errorf("past = %d events, want 1", len(got))
	}
	if got := f.Events(Upcoming, "GO"); len(got) != 1 || got[0].Title != "Go Meetup" {
		t.Errorf("search = %+v", got)
	}
}

// Requirement: Details seeds the card with comments and ratings; a missing event is not found.
func TestFeed_Details(t *testing.T) {
	f, stub, sess := newFeed(t)
	ctx := context.Background()

	e := stub.AddEvent(t, sess.User.ID, "Go Meetup", 5, 24*time.Hour)
	if _, err := stub.Store.AddRating(e.ID, sess.User.ID, 5); err != nil {
		t.Fatal(err)
	}
	if _, err := stub.Store.AddRating(e.ID, sess.User.ID, 4); err != nil {
		t.Fatal(err)
	}
	if _, err := stub.Store.AddRating(e.ID, sess.User.ID, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := stub.Store.AddComment(e.ID, sess.User.ID, "hello"); err != nil {
		t.Fatal(err)
	}

	c, err := f.Details(ctx, e.ID)
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	defer c.Close()

	v := c.Snapshot()
	if v.AverageLabel != "4.0" || len(v.Event.Comments) != 1 {
		t.Errorf("details view: average %s, %d comments", v.AverageLabel, len(v.Event.Comments))
	}

	c.SetCommentInput("second")
	if err := c.SubmitComment(ctx); err != nil {
		t.Fatalf("SubmitComment() error = %v", err)
	}
	if v := c.Snapshot(); len(v.Event.Comments) != 2 || v.Event.Comments[0].Content != "second" || v.CommentInput != "" {
		t.Errorf("after comment: %+v input %q", v.Event.Comments, v.CommentInput)
	}

	if _, err := f.Details(ctx, 9999); !errs.Is(err, errs.ErrNotFound) {
		t.Errorf("Details(missing) error = %v", err)
	}
}

// Requirement: a failed load keeps the previous list.
func TestFeed_LoadFailureKeepsList(t *testing.T) {
	f, stub, sess := newFeed(t)
	ctx := context.Background()

	stub.AddEvent(t, sess.User.ID, "Go Meetup", 5, 24*time.Hour)
	if _, err := f.Load(ctx, Upcoming); err != nil {
		t.Fatal(err)
	}

	stub.Close()
	if _, err := f.Load(ctx, Upcoming); !errs.Is(err, errs.ErrNetwork) {
		t.Errorf("Load() error = %v, want ErrNetwork", err)
	}
	if got := f.Events(Upcoming, ""); len(got) != 1 {
		t.Errorf("list after failure = %d events, want 1", len(got))
	}
}

// FakeBackend serves canned lists; the upcoming list answers after a delay.
type FakeBackend struct {
	card.Backend

	UpcomingDelay time.Duration
	Upcoming      []event.Event
	PastErr       error
}

func (f *FakeBackend) ListUpcomingEvents(ctx context.Context) ([]event.Event, error) {
	select {
	case <-time.After(f.UpcomingDelay):
		return f.Upcoming, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *FakeBackend) ListPastEvents(context.Context) ([]event.Event, error) {
	return nil, f.PastErr
}

func (f *FakeBackend) GetEvent(context.Context, int) (*event.Event, error) {
	return nil, errs.NewError(errs.ErrNotFound)
}

// Requirement: a failing list does not cancel or discard the other list's refresh.
func TestFeed_RefreshListsAreIndependent(t *testing.T) {
	backend := &FakeBackend{
		UpcomingDelay: 50 * time.Millisecond,
		Upcoming:      []event.Event{{ID: 1, Title: "Go Meetup"}},
		PastErr:       errs.FromResponse(500, "past list unavailable"),
	}
	f := New(backend, session.NewMemoryStore(), Options{})

	err := f.Refresh(context.Background())
	if !errs.Is(err, errs.ErrHTTPStatus) {
		t.Fatalf("Refresh() error = %v, want the past list failure", err)
	}
	if got := f.Events(Upcoming, ""); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("upcoming after refresh = %+v, want the loaded list", got)
	}
	if got := f.Events(Past, ""); len(got) != 0 {
		t.Errorf("past after failed refresh = %+v", got)
	}
}
