package ingest

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchscope/internal/parse"
)

const fixture = "../../testdata/datasets.csv"

func TestLoadFallsBackInOrder(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("dataset_id,task\n"), 0o644))

	res, err := Load(context.Background(), Options{
		Candidates: []string{filepath.Join(dir, "missing.csv"), empty, fixture},
	})
	require.NoError(t, err)
	assert.Equal(t, fixture, res.Store.Source())
	assert.Equal(t, 4, res.Store.Len())
	assert.Equal(t, parse.FormatCSV, res.Format)
	require.Len(t, res.Attempts, 3)
	assert.ErrorIs(t, res.Attempts[0].Err, fs.ErrNotExist)
	assert.ErrorIs(t, res.Attempts[1].Err, ErrNoRecords)
	assert.NoError(t, res.Attempts[2].Err)
}

func TestLoadAggregateFailureKeepsLastCause(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("foo,bar\n1,2\n"), 0o644))

	_, err := Load(context.Background(), Options{
		Candidates: []string{filepath.Join(dir, "nope.csv"), bad},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, parse.ErrUnknownHeader)
	assert.NotErrorIs(t, err, fs.ErrNotExist)

	var ue *UnavailableError
	require.True(t, errors.As(err, &ue))
	assert.Len(t, ue.Attempts, 2)
}

func TestLoadCancelledReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, Options{Candidates: []string{fixture}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrSourceUnavailable)
}

func TestLoadHTTPWithPerAttemptTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()
	body, err := os.ReadFile(fixture)
	require.NoError(t, err)
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer good.Close()

	res, err := Load(context.Background(), Options{
		Candidates: []string{slow.URL + "/data.csv", good.URL + "/data.csv"},
		Timeout:    100 * time.Millisecond,
		CacheDir:   t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Store.Len())
	assert.ErrorIs(t, res.Attempts[0].Err, context.DeadlineExceeded)
}

func TestLoadHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := Load(context.Background(), Options{Candidates: []string{srv.URL + "/x.csv"}, NoCache: true})
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "404")
}

func TestOfflineServesFromCache(t *testing.T) {
	body, err := os.ReadFile(fixture)
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	url := srv.URL + "/datasets.csv"
	cache := t.TempDir()

	_, err = Load(context.Background(), Options{Candidates: []string{url}, Offline: true, CacheDir: cache})
	require.ErrorIs(t, err, ErrOffline)

	res, err := Load(context.Background(), Options{Candidates: []string{url}, CacheDir: cache})
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	srv.Close()

	res, err = Load(context.Background(), Options{Candidates: []string{url}, Offline: true, CacheDir: cache})
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Equal(t, 4, res.Store.Len())

	// unreachable server falls back to the cached copy
	res, err = Load(context.Background(), Options{Candidates: []string{url}, CacheDir: cache, Timeout: time.Second})
	require.NoError(t, err)
	assert.True(t, res.FromCache)
}

func TestLoadStdinSniffsJSON(t *testing.T) {
	res, err := Load(context.Background(), Options{
		Candidates: []string{"-"},
		Stdin:      strings.NewReader(`[{"dataset_id":"A","task":"X"}]`),
	})
	require.NoError(t, err)
	assert.Equal(t, parse.FormatJSON, res.Format)
	assert.Equal(t, "A", res.Store.At(0).ID)
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(p, []byte("dataset_id\nA\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := Watch(ctx, []string{p, "https://example.com/ignored.csv"}, 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(p, []byte("dataset_id\nA\nB\n"), 0o644))

	select {
	case got := <-ch:
		abs, _ := filepath.Abs(p)
		assert.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case _, ok := <-ch:
		for ok {
			_, ok = <-ch
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
