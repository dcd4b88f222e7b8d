package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/straye-as/sales-intelligence/internal/config"
	"github.com/straye-as/sales-intelligence/internal/database"
	"github.com/straye-as/sales-intelligence/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// backends returns a fresh instance of every backend, plus a way to reopen
// the same durable storage as a new process would
func backends(t *testing.T) map[string]func() session.Backend {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "nested", "session.json")
	dbPath := filepath.Join(dir, "session.db")

	mem := session.NewMemoryBackend()

	return map[string]func() session.Backend{
		"file": func() session.Backend { return session.NewFileBackend(filePath) },
		"sqlite": func() session.Backend {
			db, err := database.NewSQLite(dbPath)
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.Close(db) })
			b, err := session.NewSQLiteBackend(db)
			require.NoError(t, err)
			return b
		},
		"memory": func() session.Backend { return mem },
	}
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := session.NewStore(open(), "token", zap.NewNop())

			// load with nothing persisted is a no-op
			require.NoError(t, store.Load(ctx))
			_, ok := store.Get()
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, "abc"))
			token, ok := store.Get()
			assert.True(t, ok)
			assert.Equal(t, "abc", token)

			// a fresh store over the same durable storage restores it
			restored := session.NewStore(open(), "token", zap.NewNop())
			require.NoError(t, restored.Load(ctx))
			token, ok = restored.Get()
			assert.True(t, ok)
			assert.Equal(t, "abc", token)

			// setting again fully replaces the prior value
			require.NoError(t, store.Set(ctx, "def"))
			restored = session.NewStore(open(), "token", zap.NewNop())
			require.NoError(t, restored.Load(ctx))
			token, _ = restored.Get()
			assert.Equal(t, "def", token)

			// setting empty clears memory and durable state
			require.NoError(t, store.Set(ctx, ""))
			_, ok = store.Get()
			assert.False(t, ok)

			fresh := session.NewStore(open(), "token", zap.NewNop())
			require.NoError(t, fresh.Load(ctx))
			_, ok = fresh.Get()
			assert.False(t, ok)
		})
	}
}

func TestStore_ClearWithoutToken(t *testing.T) {
	store := session.NewStore(session.NewFileBackend(filepath.Join(t.TempDir(), "s.json")), "", zap.NewNop())
	assert.NoError(t, store.Clear(context.Background()))
}

func TestStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	backend := session.NewFileBackend(filepath.Join(t.TempDir(), "s.json"))

	a := session.NewStore(backend, "prod", zap.NewNop())
	b := session.NewStore(backend, "staging", zap.NewNop())
	require.NoError(t, a.Set(ctx, "prod-token"))
	require.NoError(t, b.Set(ctx, "staging-token"))
	require.NoError(t, b.Clear(ctx))

	reloaded := session.NewStore(backend, "prod", zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	token, ok := reloaded.Get()
	assert.True(t, ok)
	assert.Equal(t, "prod-token", token)
}

func TestFileBackend_PermissionsAndCorruption(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	backend := session.NewFileBackend(path)

	require.NoError(t, backend.Write(ctx, "token", "secret"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	store := session.NewStore(backend, "token", zap.NewNop())
	assert.Error(t, store.Load(ctx))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.SessionConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.SessionConfig{Backend: "memory", Key: "token"}},
		{name: "file", cfg: config.SessionConfig{Backend: "file", Path: filepath.Join(dir, "a.json"), Key: "token"}},
		{name: "sqlite", cfg: config.SessionConfig{Backend: "sqlite", Path: filepath.Join(dir, "a.db"), Key: "token"}},
		{name: "unknown", cfg: config.SessionConfig{Backend: "etcd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeFn, err := session.Open(&tt.cfg, zap.NewNop())
			require.NotNil(t, closeFn)
			defer func() { _ = closeFn() }()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, store.Set(context.Background(), "tok"))
			token, ok := store.Get()
			assert.True(t, ok)
			assert.Equal(t, "tok", token)
		})
	}
}
