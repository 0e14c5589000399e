package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	path    string
	backend string
}

func (t testConfig) BasePath() string   { return t.path }
func (t testConfig) Backend() string    { return t.backend }
func (t testConfig) Redis() RedisConfig { return RedisConfig{} }

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Read(ctx, KeyNotices)
	require.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
	assert.False(t, b.Has(ctx, KeyNotices))

	require.NoError(t, b.Write(ctx, KeyNotices, []byte(`[{"id":1}]`)))
	assert.True(t, b.Has(ctx, KeyNotices))

	got, err := b.Read(ctx, KeyNotices)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))

	require.NoError(t, b.Erase(ctx, KeyNotices))
	assert.False(t, b.Has(ctx, KeyNotices))
	require.NoError(t, b.Erase(ctx, KeyNotices), "erasing a missing key is a no-op")
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestDiskvBackend(t *testing.T) {
	b, err := Load(testConfig{path: t.TempDir(), backend: BackendDiskv})
	require.NoError(t, err)
	exerciseBackend(t, b)
}

func TestDiskvWritesJSONFiles(t *testing.T) {
	base := t.TempDir()
	b, err := NewDiskv(base)
	require.NoError(t, err)
	require.NoError(t, b.Write(context.Background(), KeyEvents, []byte(`[]`)))

	_, err = os.Stat(filepath.Join(base, "ag_events.json"))
	require.NoError(t, err)
	assert.Equal(t, KeyEvents, b.keyForPath(filepath.Join(base, "ag_events.json")))
	assert.Equal(t, "", b.keyForPath(filepath.Join(base, "nested", "x.json")))
}

func TestLoadUnknownBackend(t *testing.T) {
	_, err := Load(testConfig{path: t.TempDir(), backend: "sqlite"})
	require.Error(t, err)
}

func TestDiskvWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := NewDiskv(base)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var logs bytes.Buffer
	ch, err := p.Watch(ctx, zerolog.New(&logs).Level(zerolog.DebugLevel))
	require.NoError(t, err)

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(base, "ag_notices.json"), []byte(`[]`), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == KeyNotices {
				// Logged before the event was sent.
				assert.Contains(t, logs.String(), `"key":"ag_notices"`)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}
