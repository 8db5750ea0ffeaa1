package ws

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	client := &Client{send: make(chan []byte, 4), id: "test"}
	hub.register <- client

	reloader := &countingReloader{}
	w, err := NewWatcher(path, reloader, hub, testLogger())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))

	require.Eventually(t, func() bool {
		return reloader.calls.Load() == 1
	}, 3*time.Second, 50*time.Millisecond)

	var event Event
	require.NoError(t, json.Unmarshal(recv(t, client.send), &event))
	assert.Equal(t, TypeDatasetUpdated, event.Type)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	reloader := &countingReloader{}
	w, err := NewWatcher(path, reloader, hub, testLogger())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// A burst of writes inside the debounce window coalesces to one reload.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return reloader.calls.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
	time.Sleep(debounceWindow)
	assert.Equal(t, int32(1), reloader.calls.Load())
}

func TestWatcherResetsNearWindowBoundary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	reloader := &countingReloader{}
	w, err := NewWatcher(path, reloader, hub, testLogger())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// Writes spaced close to the window keep pushing the deadline out. A
	// stale timer tick surviving a reset would fire an early extra reload.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))
		time.Sleep(debounceWindow - 100*time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return reloader.calls.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond)
	time.Sleep(debounceWindow + 100*time.Millisecond)
	assert.Equal(t, int32(1), reloader.calls.Load())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0644))

	hub := NewHub(testLogger())
	hub.Start()
	defer hub.Stop()

	reloader := &countingReloader{}
	w, err := NewWatcher(path, reloader, hub, testLogger())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x\n"), 0644))

	time.Sleep(debounceWindow + 200*time.Millisecond)
	assert.Zero(t, reloader.calls.Load())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent", "articles.csv"), &countingReloader{}, NewHub(testLogger()), testLogger())
	assert.Error(t, err)
}
