package faqsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

const defaultDebounce = 250 * time.Millisecond

// FileSource reads the table from a local file.
type FileSource struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewFileSource constructs a source for path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{
		path:     path,
		debounce: defaultDebounce,
		logger:   logger.With("component", "faqsource.file"),
	}
}

// Name implements faq.Source.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Load implements faq.Source.
func (s *FileSource) Load(_ context.Context) (faq.RecordSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read faq file: %w", err)
	}
	return faq.ParseRecords(string(data)), nil
}

// Watch calls onChange after the file is written, created or renamed into
// place. Bursts of events within the debounce window collapse into one call.
// It blocks until ctx is cancelled.
func (s *FileSource) Watch(ctx context.Context, onChange func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			pending = timer.C
		case <-pending:
			pending = nil
			s.logger.Info("faq file changed", "path", s.path)
			onChange(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("faq file watcher error", "error", err)
		}
	}
}

var _ faq.Source = (*FileSource)(nil)
