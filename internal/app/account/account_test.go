package account

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"eventify/internal/app/api"
	"eventify/internal/app/nav"
	"eventify/internal/app/session"
	"eventify/internal/app/transport"
	"eventify/internal/handler/stubtest"
	"eventify/internal/pkg/errs"
)

// FakeBackend counts calls and answers with canned results.
type FakeBackend struct {
	Calls   int
	Session *session.Session
	Err     error
}

func (f *FakeBackend) Login(context.Context, api.LoginRequest) (*session.Session, error) {
	f.Calls++
	return f.Session, f.Err
}

func (f *FakeBackend) SignUp(context.Context, api.SignUpRequest) (*session.Session, error) {
	f.Calls++
	return f.Session, f.Err
}

func newStubService(t *testing.T) (*Service, *stubtest.Server, session.Store, *nav.Navigator) {
	t.Helper()

	stub := stubtest.Start(t)
	store := session.NewMemoryStore()
	httpClient := &http.Client{Timeout: 5 * time.Second}
	transport.Install(httpClient, store, transport.Options{})

	client, err := api.New(stub.BaseURL(), httpClient)
	if err != nil {
		t.Fatal(err)
	}
	navigator := nav.New(nav.Login)
	return NewService(client, store, navigator), stub, store, navigator
}

// Scenario: valid credentials save a session with a token and reach the home route.
func TestService_LoginSuccess(t *testing.T) {
	svc, stub, store, navigator := newStubService(t)
	ctx := context.Background()
	if _, err := stub.Store.AddUser("alice", "alice@example.com", "secret"); err != nil {
		t.Fatal(err)
	}

	sess, err := svc.Login(ctx, "alice@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	stored, err := session.Current(ctx, store)
	if err != nil || stored.Token == "" || stored.Token != sess.Token {
		t.Fatalf("stored session = %+v, %v", stored, err)
	}
	if navigator.Current() != nav.Home {
		t.Errorf("route = %q, want %q", navigator.Current(), nav.Home)
	}

	profile, err := svc.Current(ctx)
	if err != nil || profile.Username != "alice" {
		t.Errorf("Current() = %+v, %v", profile, err)
	}
}

// Scenario: invalid credentials show exactly the server text and save nothing.
func TestService_LoginInvalidCredentials(t *testing.T) {
	svc, stub, store, navigator := newStubService(t)
	ctx := context.Background()
	if _, err := stub.Store.AddUser("alice", "alice@example.com", "secret"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(ctx, "alice@example.com", "wrong")
	if err == nil {
		t.Fatal("Login() should fail")
	}
	if got := LoginMessage(err); got != "Invalid credentials" {
		t.Errorf("LoginMessage() = %q, want %q", got, "Invalid credentials")
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Error("no session should be saved")
	}
	if navigator.Current() != nav.Login {
		t.Errorf("route = %q, want login", navigator.Current())
	}
}

// Requirement: empty fields are rejected locally and no request is sent.
func TestService_Validation(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Service) error
	}{
		{name: "login without email", run: func(s *Service) error {
			_, err := s.Login(context.Background(), "", "pw")
			return err
		}},
		{name: "login without password", run: func(s *Service) error {
			_, err := s.Login(context.Background(), "a@b.c", "")
			return err
		}},
		{name: "sign-up without username", run: func(s *Service) error {
			_, err := s.SignUp(context.Background(), "  ", "a@b.c", "pw")
			return err
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			backend := &FakeBackend{}
			svc := NewService(backend, session.NewMemoryStore(), nav.New(nav.Login))

			err := test.run(svc)
			if !errs.Is(err, errs.ErrFieldsRequired) {
				t.Fatalf("error = %v, want ErrFieldsRequired", err)
			}
			if LoginMessage(err) != "Please fill in all fields" {
				t.Errorf("message = %q", LoginMessage(err))
			}
			if backend.Calls != 0 {
				t.Errorf("%d requests sent", backend.Calls)
			}
		})
	}
}

// Requirement: failures without server text fall back to the flow's generic message.
func TestMessages_Fallback(t *testing.T) {
	if got := LoginMessage(errs.FromResponse(500, "")); got != LoginFallback {
		t.Errorf("LoginMessage() = %q", got)
	}
	if got := SignUpMessage(errors.New("socket closed")); got != SignUpFallback {
		t.Errorf("SignUpMessage() = %q", got)
	}
}

func TestService_SignUpAndLogout(t *testing.T) {
	svc, _, store, navigator := newStubService(t)
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "bob", "bob@example.com", "pw"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if navigator.Current() != nav.Home {
		t.Errorf("route after sign-up = %q", navigator.Current())
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Error("session should be cleared")
	}
	if navigator.Current() != nav.Login {
		t.Errorf("route after logout = %q", navigator.Current())
	}
}

// Requirement: an empty token from the server is never stored.
func TestService_RejectsEmptyToken(t *testing.T) {
	store := session.NewMemoryStore()
	svc := NewService(&FakeBackend{Session: &session.Session{}}, store, nav.New(nav.Login))

	if _, err := svc.Login(context.Background(), "a@b.c", "pw"); !errs.Is(err, errs.ErrDecodeResponse) {
		t.Errorf("Login() error = %v", err)
	}
	if _, ok, _ := store.Load(context.Background()); ok {
		t.Error("session with empty token was stored")
	}
}

// Requirement: Resume skips login with a stored session and discards an unreadable one.
func TestService_Resume(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		blob      []byte
		want      bool
		wantRoute nav.Route
		wantKept  bool
	}{
		{name: "no session", blob: nil, want: false, wantRoute: nav.Login},
		{name: "valid session", blob: []byte(`{"token":"t","user":{"id":1}}`), want: true, wantRoute: nav.Home, wantKept: true},
		{name: "corrupt session", blob: []byte(`{"token":""}`), want: false, wantRoute: nav.Login},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			if test.blob != nil {
				_ = store.Save(ctx, test.blob)
			}
			navigator := nav.New(nav.SignUp)
			svc := NewService(&FakeBackend{}, store, navigator)

			got, err := svc.Resume(ctx)
			if err != nil {
				t.Fatalf("Resume() error = %v", err)
			}
			if got != test.want || navigator.Current() != test.wantRoute {
				t.Errorf("Resume() = %v at %q, want %v at %q", got, navigator.Current(), test.want, test.wantRoute)
			}
			if _, ok, _ := store.Load(ctx); ok != test.wantKept {
				t.Errorf("session kept = %v, want %v", ok, test.wantKept)
			}
		})
	}
}
