/*
Package main runs the in-memory stub of the events backend.

It serves the events API on STUB_PORT with a demo organizer account and a few
events, and shuts down gracefully on SIGINT or SIGTERM.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventify/internal/app/event"
	"eventify/internal/configs"
	"eventify/internal/handler"
	"eventify/internal/pkg/logx"
)

const (
	demoEmail    = "organizer@example.com"
	demoPassword = "password"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Stub.Port).
		Strs("allowed_origins", cfg.Stub.AllowedOrigins).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := handler.NewStore()
	if err := seed(store); err != nil {
		logx.Fatal(err, "Failed to seed stub data")
	}

	router, stopRouter := handler.Router(handler.NewAppDeps(store, cfg.Environment, cfg.Stub))
	defer stopRouter()

	serverAddr := fmt.Sprintf(":%d", cfg.Stub.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Events stub starting on http://localhost%s/api/", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}

// seed registers the demo organizer and three events: one upcoming, one sold out, one past.
func seed(store *handler.Store) error {
	organizer, err := store.AddUser("organizer", demoEmail, demoPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	at := func(d time.Duration) string {
		return now.Add(d).Truncate(time.Hour).Format("2006-01-02T15:04:05.000Z")
	}

	demo := []event.Event{
		{Title: "Go Meetup", Description: "Talks and pizza.", Date: at(72 * time.Hour), Location: "Main Hall", Price: 0, Stock: 40},
		{Title: "Sold Out Concert", Description: "No seats left.", Date: at(240 * time.Hour), Location: "Arena", Price: 59.9, Stock: 0},
		{Title: "Last Year's Conference", Description: "Already happened.", Date: at(-240 * time.Hour), Location: "Expo Center", Price: 120, Stock: 10},
	}
	for _, e := range demo {
		e.Time = e.Date
		e.OrganizerID = organizer.ID
		store.AddEvent(e)
	}

	logx.Info("Seeded stub data", "login_email", demoEmail, "events", len(demo))
	return nil
}
