package engine

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/leapstack-labs/exprlex/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_RescansOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "watched.expr", "a")
	other := writeInput(t, dir, "other.expr", "b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *Result, 4)
	done := make(chan error, 1)
	e := New(Config{SkipTrivia: true, Logger: testutil.NewTestLogger(t)})
	go func() {
		done <- e.Watch(ctx, []string{path}, 10*time.Millisecond, func(r *Result) {
			select {
			case results <- r:
			default:
			}
		})
	}()

	// The watcher starts asynchronously; keep writing until a rescan lands.
	var got *Result
	require.Eventually(t, func() bool {
		_ = os.WriteFile(other, []byte("ignored"), 0600)
		_ = os.WriteFile(path, []byte("x = 1"), 0600)
		select {
		case got = <-results:
			// a rescan can race the truncating write and see an empty file
			return len(got.Tokens) == 3
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, path, got.Name)
	assert.False(t, got.HasErrors())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}

func TestWatch_WaitsForRescansBeforeReturning(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "watched.expr", "a")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var running, calls atomic.Int32
	started := make(chan struct{}, 1)
	done := make(chan error, 1)
	e := New(Config{Logger: testutil.NewTestLogger(t)})
	go func() {
		done <- e.Watch(ctx, []string{path}, 5*time.Millisecond, func(*Result) {
			running.Add(1)
			defer running.Add(-1)
			calls.Add(1)
			select {
			case started <- struct{}{}:
			default:
			}
			time.Sleep(100 * time.Millisecond)
		})
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("x = 1"), 0600)
		select {
		case <-started:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
	assert.Zero(t, running.Load(), "onResult still running after Watch returned")

	n := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "onResult called after Watch returned")
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := New(Config{}).Watch(context.Background(), []string{"/nonexistent-dir/x.expr"}, time.Millisecond, func(*Result) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
