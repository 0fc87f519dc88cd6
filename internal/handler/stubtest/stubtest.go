/*
Package stubtest starts the stub events backend on an httptest server for integration tests.
*/
package stubtest

import (
	"net/http/httptest"
	"testing"
	"time"

	"eventify/internal/app/event"
	"eventify/internal/configs"
	"eventify/internal/handler"
)

// Secret signs the tokens of test servers.
const Secret = "stubtest-secret"

// Server is a running stub backend.
type Server struct {
	*httptest.Server
	Store *handler.Store
}

// Start runs a stub backend until the test ends.
func Start(t testing.TB) *Server {
	t.Helper()

	store := handler.NewStore()
	router, stop := handler.Router(handler.NewAppDeps(store, "test", configs.StubConfig{JWTSecret: Secret}))

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		stop()
	})

	return &Server{Server: srv, Store: store}
}

// BaseURL is the API base URL of the server, ending with a slash.
func (s *Server) BaseURL() string {
	return s.URL + "/api/"
}

// At formats now+d like the events API does.
func At(d time.Duration) string {
	return time.Now().Add(d).UTC().Format("2006-01-02T15:04:05.000Z")
}

// AddEvent stores an event with the given title, stock and start offset from now.
func (s *Server) AddEvent(t testing.TB, organizerID int, title string, stock int, startsIn time.Duration) event.Event {
	t.Helper()
	date := At(startsIn)
	return s.Store.AddEvent(event.Event{
		Title:       title,
		Description: title + " description",
		Date:        date,
		Time:        date,
		Location:    "Hall",
		Price:       10,
		Stock:       stock,
		OrganizerID: organizerID,
	})
}
