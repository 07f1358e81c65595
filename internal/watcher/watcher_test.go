package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex-server/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileWatcher_TriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, `[]`)

	var fired atomic.Int32
	w, err := New(path, func() { fired.Add(1) }, testLogger())
	require.NoError(t, err)
	w.settleDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	defer w.Stop()

	// Give the watcher a moment to be running before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, path, `[{"Name":"Doom"}]`)

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond, "callback should fire after a settled write")
}

func TestFileWatcher_CoalescesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, `[]`)

	var fired atomic.Int32
	w, err := New(path, func() { fired.Add(1) }, testLogger())
	require.NoError(t, err)
	w.settleDelay = 150 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	// A burst of writes within the settle window should produce one callback.
	for i := 0; i < 5; i++ {
		writeFile(t, path, `[{"Name":"Doom"}]`)
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)

	// Let any stragglers land, then confirm the burst coalesced.
	time.Sleep(300 * time.Millisecond)
	require.LessOrEqual(t, fired.Load(), int32(2))
}

func TestFileWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, `[]`)

	var fired atomic.Int32
	w, err := New(path, func() { fired.Add(1) }, testLogger())
	require.NoError(t, err)
	w.settleDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")

	time.Sleep(300 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load(), "sibling file changes should not trigger the callback")
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, `[]`)

	w, err := New(path, func() {}, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
