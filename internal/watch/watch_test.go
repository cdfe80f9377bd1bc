package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstOfWritesReloadsOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PH.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"headers":[],"rows":[]}`), 0o644))

	var calls atomic.Int32
	w, err := New(path, 100*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(`{"headers":["a"],"rows":[]}`), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOtherFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PH.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var calls atomic.Int32
	w, err := New(path, 20*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestCloseStopsCallbacks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PH.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var calls atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	require.NoError(t, os.WriteFile(path, []byte("{ }"), 0o644))
	require.NoError(t, w.Close())
	time.Sleep(120 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestNilCallback(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.json"), 0, nil)
	assert.Error(t, err)
}
