package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/saya/internal/core"
	"github.com/sandevgo/saya/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenRepo struct{ err error }

func (b brokenRepo) CountMemories(context.Context) (int, error)    { return 0, b.err }
func (b brokenRepo) CountUsers(context.Context) (int, error)       { return 0, b.err }
func (b brokenRepo) DumpAll(context.Context) (*core.Backup, error) { return nil, b.err }

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "saya.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.NewStore(db)
}

func get(t *testing.T, h http.Handler, path string, out any) *http.Response {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestRoot(t *testing.T) {
	s := NewServer(":0", newTestStore(t))

	var body map[string]string
	resp := get(t, s.Handler(context.Background()), "/", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, map[string]string{
		"service":     "Saya Memory Database",
		"status":      "running",
		"version":     "1.0",
		"description": "حافظه هوشمند سایا",
	}, body)
}

func TestUnknownPath(t *testing.T) {
	s := NewServer(":0", newTestStore(t))
	resp := get(t, s.Handler(context.Background()), "/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s := NewServer(":0", newTestStore(t))
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var body struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	resp := get(t, s.Handler(context.Background()), "/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body.Status)
	assert.True(t, fixed.Equal(body.Timestamp))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveMemory(ctx, 1, "a"))
	require.NoError(t, store.SaveMemory(ctx, 1, "b"))
	require.NoError(t, store.SaveMemory(ctx, 2, "c"))
	require.NoError(t, store.SaveUserName(ctx, 1, "Alice"))
	require.NoError(t, store.SaveUserName(ctx, 2, "Bob"))

	s := NewServer(":0", store)
	s.started = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return s.started.Add(90 * time.Minute) }

	var body map[string]any
	resp := get(t, s.Handler(ctx), "/stats", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["total_memories"])
	assert.EqualValues(t, 2, body["total_users"])
	assert.Equal(t, "1h30m0s", body["service_uptime"])
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.SaveMemory(ctx, 42, "کاربر: hello\nسایا: hi Alice"))
	require.NoError(t, store.SaveUserName(ctx, 42, "Alice"))

	var body struct {
		BackupTime time.Time `json:"backup_time"`
		Memories   []struct {
			UserID    int64  `json:"user_id"`
			Memory    string `json:"memory"`
			Timestamp string `json:"timestamp"`
		} `json:"memories"`
		Names []struct {
			UserID int64  `json:"user_id"`
			Name   string `json:"name"`
		} `json:"names"`
	}
	resp := get(t, NewServer(":0", store).Handler(ctx), "/backup", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, body.BackupTime.IsZero())

	require.Len(t, body.Memories, 1)
	assert.Equal(t, int64(42), body.Memories[0].UserID)
	assert.Equal(t, "کاربر: hello\nسایا: hi Alice", body.Memories[0].Memory)
	assert.NotEmpty(t, body.Memories[0].Timestamp)

	require.Len(t, body.Names, 1)
	assert.Equal(t, "Alice", body.Names[0].Name)
}

func TestBackup_Empty(t *testing.T) {
	var body map[string]any
	get(t, NewServer(":0", newTestStore(t)).Handler(context.Background()), "/backup", &body)
	assert.Equal(t, []any{}, body["memories"])
	assert.Equal(t, []any{}, body["names"])
}

func TestStorageErrors(t *testing.T) {
	s := NewServer(":0", brokenRepo{err: errors.New("database is locked")})
	for _, path := range []string{"/stats", "/backup"} {
		t.Run(path, func(t *testing.T) {
			var body map[string]string
			resp := get(t, s.Handler(context.Background()), path, &body)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, "database is locked", body["error"])
		})
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	s := NewServer(":0", newTestStore(t))
	assert.NoError(t, s.Shutdown(context.Background()))
}
