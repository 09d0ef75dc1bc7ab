package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtwatch/courtwatch/internal/logger"
	"github.com/courtwatch/courtwatch/internal/refresh"
	"github.com/courtwatch/courtwatch/internal/web"
)

var flagScrapeOnStart bool

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the availability HTTP server",
		Long: `Serves the latest availability snapshot over HTTP. Refreshes run
on demand via POST /api/refresh; at most one refresh runs at a time.`,
		RunE: runServe,
	}
	cmd.Flags().BoolVar(&flagScrapeOnStart, "scrape-on-start", false, "Kick off a refresh when the server starts")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	coordinator := refresh.NewCoordinator()
	refreshFn := func() error { return a.refresh(context.Background()) }

	venues := make([]web.VenueInfo, 0, len(a.cfg.Venues))
	for _, v := range a.cfg.Venues {
		name := v.Name
		if name == "" {
			name = v.ID
		}
		venues = append(venues, web.VenueInfo{ID: v.ID, Name: name})
	}

	server := web.NewServer(a.store, coordinator, refreshFn, venues, a.m)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.cfg.Server.WriteTimeout) * time.Second,
	}

	if flagScrapeOnStart {
		coordinator.Trigger(refreshFn)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", logger.Fields{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", logger.Fields{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
