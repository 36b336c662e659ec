package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
	"github.com/yanqian/faq-assistant/internal/infra/config"
)

// Watcher triggers onChange whenever the underlying table changes. Watch
// blocks until ctx is cancelled.
type Watcher interface {
	Watch(ctx context.Context, onChange func(context.Context)) error
}

// App encapsulates the HTTP server lifecycle and the knowledge base loader.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	faqSvc  faq.Service
	watcher Watcher
}

// NewApp is used by Wire to build the runnable app. watcher may be nil.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, faqSvc faq.Service, watcher Watcher) *App {
	return &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		server:  server,
		faqSvc:  faqSvc,
		watcher: watcher,
	}
}

// Run loads the knowledge base, starts the HTTP server and blocks until shutdown.
// A failed initial load does not stop the server; the status endpoint carries
// the failure notice until a reload succeeds.
func (a *App) Run(ctx context.Context) error {
	a.reload(ctx)

	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		stopWatch()
		wg.Wait()
	}()
	if a.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.watcher.Watch(watchCtx, a.reload); err != nil {
				a.logger.Error("faq watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) reload(ctx context.Context) {
	status, err := a.faqSvc.Reload(ctx)
	if err != nil {
		a.logger.Warn("faq reload failed", "source", status.Source, "error", err)
		return
	}
	a.logger.Info("faq reload complete", "source", status.Source, "records", status.Records)
}
