package faqsource

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

func TestFileSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa.csv")
	require.NoError(t, os.WriteFile(path, []byte("question,answer\r\n\"Hi, there\",Hello\r\n"), 0o600))

	src := NewFileSource(path, newTestLogger())
	records, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Equal(t, faq.RecordSet{{Question: "hi, there", Answer: "Hello"}}, records)
	require.Equal(t, "file:"+path, src.Name())
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.csv"), newTestLogger())

	_, err := src.Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSourceWatchDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qa.csv")
	require.NoError(t, os.WriteFile(path, []byte("question,answer\n"), 0o600))

	src := NewFileSource(path, newTestLogger())
	src.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- src.Watch(ctx, func(context.Context) { calls.Add(1) })
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("question,answer\nwhat,that\n"), 0o600)
		_ = os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o600)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
