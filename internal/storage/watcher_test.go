package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcherReportsWritesFromAnotherStore(t *testing.T) {
	dir := t.TempDir()
	writer, err := OpenFileStore(dir)
	require.NoError(t, err)

	w, err := NewWatcher(dir, 20*time.Millisecond)
	require.NoError(t, err)

	var mu sync.Mutex
	var changes []Change
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, func(c Change) {
		mu.Lock()
		changes = append(changes, c)
		mu.Unlock()
	}))
	defer w.Stop()

	require.NoError(t, writer.Put(KeyNotes, []byte(`[]`)))
	require.NoError(t, writer.Put(KeyNotes, []byte(`[{"id":"1"}]`)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range changes {
			if c.Key == KeyNotes && !c.Removed {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, writer.Delete(KeyNotes))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		last := changes[len(changes)-1]
		return last.Key == KeyNotes && last.Removed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherStopBeforeStart(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0)
	require.NoError(t, err)
	w.Stop()
}

func TestWatcherStartTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, w.Start(ctx, func(Change) {}))
	require.Error(t, w.Start(ctx, func(Change) {}))
	w.Stop()
}
