/*
Package main is the headless entry point of the events client.

It loads configuration, initializes the global logger, opens the session store,
installs the authenticated transport, resumes the stored session (or signs in with
the configured credentials), refreshes the event feed and logs every card. With
SYNC_INTERVAL set it keeps refreshing, and with METRICS_ADDR set it serves
Prometheus metrics, until SIGINT or SIGTERM.
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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eventify/internal/app/account"
	"eventify/internal/app/api"
	"eventify/internal/app/feed"
	"eventify/internal/app/nav"
	"eventify/internal/app/session"
	"eventify/internal/app/transport"
	"eventify/internal/configs"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/metrics"
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
		Str("api_base_url", cfg.APIBaseURL).
		Str("session_backend", cfg.Session.Backend).
		Dur("http_timeout", cfg.HTTPTimeout).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := session.Open(ctx, cfg.Session)
	if err != nil {
		logx.Fatal(err, "Failed to open session store")
	}
	defer closeStore()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logx.Info("Metrics server starting", "addr", cfg.MetricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logx.Error(err, "Metrics server failed")
			}
		}()
	}

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: logx.NewTransport(http.DefaultTransport),
	}
	auth := transport.Install(httpClient, store, transport.Options{Metrics: m})

	client, err := api.New(cfg.APIBaseURL, httpClient)
	if err != nil {
		logx.Fatal(err, "Invalid API base URL")
	}

	navigator := nav.New(nav.Login)
	invalidations, unsubscribe := auth.Notifier().Subscribe()
	defer unsubscribe()
	go navigator.Watch(ctx, invalidations)

	accounts := account.NewService(client, store, navigator)
	events := feed.New(client, store, feed.Options{Metrics: m})

	for {
		if err := signIn(ctx, accounts, navigator, cfg); err != nil {
			logx.Error(err, "Unable to sign in")
			break
		}
		syncFeed(ctx, events)

		if cfg.SyncInterval == 0 {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(cfg.SyncInterval):
		}
		if ctx.Err() != nil {
			break
		}
	}

	if metricsServer != nil {
		if cfg.SyncInterval == 0 {
			<-ctx.Done()
		}
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logx.Error(err, "Metrics server forced to shutdown")
		}
	}

	logx.Info("Client stopped.")
}

// signIn makes sure a session exists: the stored one, or a new one from the configured credentials.
func signIn(ctx context.Context, accounts *account.Service, navigator *nav.Navigator, cfg *configs.AppConfig) error {
	if navigator.Current().Authenticated() {
		return nil
	}

	signedIn, err := accounts.Resume(ctx)
	if err != nil {
		return err
	}
	if signedIn {
		logx.Info("Resumed stored session")
		return nil
	}

	if cfg.LoginEmail == "" {
		return fmt.Errorf("no stored session and LOGIN_EMAIL is not set")
	}
	if _, err := accounts.Login(ctx, cfg.LoginEmail, cfg.LoginPassword); err != nil {
		return fmt.Errorf("%s: %w", account.LoginMessage(err), err)
	}
	return nil
}

// syncFeed refreshes both event lists and logs one line per upcoming card.
func syncFeed(ctx context.Context, events *feed.Feed) {
	if err := events.Refresh(ctx); err != nil {
		logx.Error(err, "Feed refresh failed")
		return
	}

	cards, err := events.Cards(ctx, feed.Upcoming, "")
	if err != nil {
		logx.Error(err, "Failed to build event cards")
		return
	}

	for _, c := range cards {
		v := c.Snapshot()
		logx.Info("Upcoming event",
			"event_id", v.Event.ID,
			"title", v.Event.Title,
			"date", v.DisplayDate,
			"time", v.DisplayTime,
			"stock", v.StockLabel,
			"average_rating", v.AverageLabel,
			"can_confirm", v.CanConfirm,
			"can_edit", v.CanEdit,
			"attendance", v.AttendanceLabel,
		)
		c.Close()
	}

	logx.Info("Feed refreshed", "upcoming", len(cards), "past", len(events.Events(feed.Past, "")))
}
