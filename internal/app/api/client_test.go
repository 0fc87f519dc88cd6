package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventify/internal/app/api"
	"eventify/internal/app/session"
	"eventify/internal/app/transport"
	"eventify/internal/handler/stubtest"
	"eventify/internal/pkg/errs"
)

// newClient returns an authenticated client for the stub and its session store.
func newClient(t *testing.T, stub *stubtest.Server) (*api.Client, session.Store) {
	t.Helper()

	store := session.NewMemoryStore()
	httpClient := &http.Client{Timeout: 5 * time.Second}
	transport.Install(httpClient, store, transport.Options{})

	client, err := api.New(stub.BaseURL(), httpClient)
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}
	return client, store
}

// signIn registers a user in the stub, logs in through the client and stores the session.
func signIn(t *testing.T, stub *stubtest.Server, client *api.Client, store session.Store) *session.Session {
	t.Helper()
	ctx := context.Background()

	if _, err := stub.Store.AddUser("alice", "alice@example.com", "secret"); err != nil {
		t.Fatalf("AddUser() error = %v", err)
	}
	sess, err := client.Login(ctx, api.LoginRequest{Email: "alice@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := session.Persist(ctx, store, sess); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	return sess
}

func TestNew(t *testing.T) {
	if _, err := api.New("not a url", nil); err == nil {
		t.Error("relative base URL should be rejected")
	}

	client, err := api.New("http://10.0.2.2:3000/api", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := client.BaseURL(); got != "http://10.0.2.2:3000/api/" {
		t.Errorf("BaseURL() = %q", got)
	}
}

// Requirement: login returns the session; bad credentials surface the server text exactly.
func TestClient_Login(t *testing.T) {
	stub := stubtest.Start(t)
	client, store := newClient(t, stub)
	ctx := context.Background()

	sess := signIn(t, stub, client, store)
	if sess.Token == "" || sess.User.Email != "alice@example.com" || sess.User.ID == 0 {
		t.Errorf("Login() = %+v", sess)
	}

	_, err := client.Login(ctx, api.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	customErr, ok := errs.As(err)
	if !ok {
		t.Fatalf("Login() error = %v, want *errs.CustomError", err)
	}
	if customErr.Status != http.StatusBadRequest || customErr.Message != "Invalid credentials" {
		t.Errorf("Login() error = status %d message %q", customErr.Status, customErr.Message)
	}
}

func TestClient_SignUp(t *testing.T) {
	stub := stubtest.Start(t)
	client, _ := newClient(t, stub)
	ctx := context.Background()

	sess, err := client.SignUp(ctx, api.SignUpRequest{Username: "bob", Email: "bob@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if sess.Token == "" || sess.User.Username != "bob" {
		t.Errorf("SignUp() = %+v", sess)
	}

	_, err = client.SignUp(ctx, api.SignUpRequest{Username: "bob", Email: "bob@example.com", Password: "pw"})
	if got := errs.UserMessage(err, "Sign-up failed"); got != "User already exists" {
		t.Errorf("duplicate SignUp() message = %q", got)
	}
}

// Requirement: the event endpoints map to typed results and structured failures.
func TestClient_Events(t *testing.T) {
	stub := stubtest.Start(t)
	client, store := newClient(t, stub)
	ctx := context.Background()

	sess := signIn(t, stub, client, store)
	upcoming := stub.AddEvent(t, sess.User.ID, "Go Meetup", 5, 48*time.Hour)
	stub.AddEvent(t, sess.User.ID, "Old Meetup", 5, -48*time.Hour)

	future, err := client.ListUpcomingEvents(ctx)
	if err != nil {
		t.Fatalf("ListUpcomingEvents() error = %v", err)
	}
	if len(future) != 1 || future[0].Title != "Go Meetup" {
		t.Errorf("ListUpcomingEvents() = %+v", future)
	}

	past, err := client.ListPastEvents(ctx)
	if err != nil {
		t.Fatalf("ListPastEvents() error = %v", err)
	}
	if len(past) != 1 || past[0].Title != "Old Meetup" {
		t.Errorf("ListPastEvents() = %+v", past)
	}

	rec, err := client.ConfirmAttendance(ctx, upcoming.ID)
	if err != nil {
		t.Fatalf("ConfirmAttendance() error = %v", err)
	}
	if rec.EventID != upcoming.ID || rec.UserID != sess.User.ID || !rec.Attendance {
		t.Errorf("ConfirmAttendance() = %+v", rec)
	}

	comment, err := client.AddComment(ctx, upcoming.ID, "See you there")
	if err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}
	if comment.ID == 0 || comment.Content != "See you there" || comment.User.ID != sess.User.ID {
		t.Errorf("AddComment() = %+v", comment)
	}

	rating, err := client.SubmitRating(ctx, upcoming.ID, 4)
	if err != nil {
		t.Fatalf("SubmitRating() error = %v", err)
	}
	if rating.Rating != 4 || rating.Comment != nil {
		t.Errorf("SubmitRating() = %+v", rating)
	}

	got, err := client.GetEvent(ctx, upcoming.ID)
	if err != nil {
		t.Fatalf("GetEvent() error = %v", err)
	}
	if got.Stock != 4 || !got.IsAttendee || len(got.Comments) != 1 || len(got.Ratings) != 1 {
		t.Errorf("GetEvent() = %+v", got)
	}

	if _, err := client.GetEvent(ctx, 9999); !errs.Is(err, errs.ErrNotFound) {
		t.Errorf("GetEvent(missing) error = %v, want ErrNotFound", err)
	}
}

// Requirement: event create and update send the form body; update carries the id in the body.
func TestClient_CreateAndUpdateEvent(t *testing.T) {
	stub := stubtest.Start(t)
	client, store := newClient(t, stub)
	ctx := context.Background()
	signIn(t, stub, client, store)

	day := time.Now().Add(72 * time.Hour).UTC().Format("2006-01-02")
	req := api.EventRequest{
		Title: "Launch", Description: "Party", Date: day, Time: "18:00:00",
		Location: "Roof", Price: 12.5, Stock: 30,
	}
	if err := client.CreateEvent(ctx, req); err != nil {
		t.Fatalf("CreateEvent() error = %v", err)
	}

	events, err := client.ListUpcomingEvents(ctx)
	if err != nil || len(events) != 1 {
		t.Fatalf("ListUpcomingEvents() = %+v, %v", events, err)
	}
	created := events[0]
	if created.Price != 12.5 || created.Stock != 30 {
		t.Errorf("created event = %+v", created)
	}

	req.ID = created.ID
	req.Title = "Launch v2"
	if err := client.UpdateEvent(ctx, req); err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}
	updated, err := client.GetEvent(ctx, created.ID)
	if err != nil || updated.Title != "Launch v2" {
		t.Errorf("GetEvent() after update = %+v, %v", updated, err)
	}
}

// Requirement: protected endpoints without a session fail with 401.
func TestClient_Unauthorized(t *testing.T) {
	stub := stubtest.Start(t)
	client, _ := newClient(t, stub)

	_, err := client.ListUpcomingEvents(context.Background())
	if !errs.Is(err, errs.ErrUnauthorized) || errs.StatusCode(err) != http.StatusUnauthorized {
		t.Errorf("ListUpcomingEvents() error = %v, want 401", err)
	}
}

// Requirement: wire-level failures map to distinct error kinds.
func TestClient_FailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantCode int
	}{
		{
			name: "schema mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"id":"not a number"}`)
			},
			wantCode: errs.ErrDecodeResponse,
		},
		{
			name: "server error with body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "database down", http.StatusInternalServerError)
			},
			wantCode: errs.ErrHTTPStatus,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(test.handler)
			defer srv.Close()

			client, err := api.New(srv.URL+"/api/", srv.Client())
			if err != nil {
				t.Fatal(err)
			}
			if _, err := client.GetEvent(context.Background(), 1); !errs.Is(err, test.wantCode) {
				t.Errorf("GetEvent() error = %v, want code %d", err, test.wantCode)
			}
		})
	}

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client, _ := api.New(url+"/api/", nil)
		if _, err := client.GetEvent(context.Background(), 1); !errs.Is(err, errs.ErrNetwork) {
			t.Errorf("GetEvent() error = %v, want ErrNetwork", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		client, _ := api.New(srv.URL+"/api/", srv.Client())
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		if _, err := client.GetEvent(ctx, 1); !errs.Is(err, errs.ErrCanceled) {
			t.Errorf("GetEvent() error = %v, want ErrCanceled", err)
		}
	})
}

// Requirement: request bodies use the wire field names of the contract.
func TestRequestWireNames(t *testing.T) {
	data, _ := json.Marshal(api.EventRequest{ID: 3, Price: 9.5, Stock: 2})
	var fields map[string]any
	_ = json.Unmarshal(data, &fields)

	for _, key := range []string{"id", "title", "description", "date", "location", "time", "price", "stock"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("EventRequest JSON lacks %q: %s", key, data)
		}
	}
	if fields["price"] != 9.5 {
		t.Errorf("price = %v, want a floating value", fields["price"])
	}
}
