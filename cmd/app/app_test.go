package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devchatClient/internal/config"
	"devchatClient/internal/metrics"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
	"devchatClient/internal/storage"
)

func TestNewStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	cases := []struct {
		name   string
		driver string
		check  func(t *testing.T, st storage.Storage)
	}{
		{name: "memory", driver: config.DriverMemory, check: func(t *testing.T, st storage.Storage) {
			assert.IsType(t, &storage.MemoryStorage{}, st)
		}},
		{name: "sqlite", driver: config.DriverSQLite, check: func(t *testing.T, st storage.Storage) {
			assert.IsType(t, &storage.SQLStorage{}, st)
		}},
		{name: "redis", driver: config.DriverRedis, check: func(t *testing.T, st storage.Storage) {
			assert.IsType(t, &storage.RedisStorage{}, st)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Storage: config.Storage{
				Driver:     tc.driver,
				SQLitePath: filepath.Join(t.TempDir(), "devchat.db"),
				RedisURL:   "redis://" + mr.Addr() + "/0",
			}}

			st, err := NewStorage(cfg)
			require.NoError(t, err)
			defer st.Close()
			tc.check(t, st)

			ctx := context.Background()
			require.NoError(t, st.SetItems(ctx, "profile", map[string]string{"token": "jwt"}))
			items, err := st.GetItems(ctx, "profile")
			require.NoError(t, err)
			assert.Equal(t, "jwt", items["token"])
		})
	}
}

func TestApp_WiresMemoryBackend(t *testing.T) {
	cfg := &config.Config{
		APIBaseURL: "http://127.0.0.1:1",
		APITimeout: time.Second,
		Storage:    config.Storage{Driver: config.DriverMemory},
	}

	st, store, services, err := App(cfg)
	require.NoError(t, err)
	defer st.Close()

	assert.NotNil(t, store)
	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Health)
}

func TestWatchSessions_CountsEvents(t *testing.T) {
	store := session.NewStore(storage.NewMemoryStorage())
	ctx, cancel := context.WithCancel(context.Background())

	before := testutil.ToFloat64(metrics.SessionEvents.WithLabelValues("expired"))
	done := WatchSessions(ctx, store)

	_, err := store.Login(ctx, "browser", models.Session{Token: "jwt", Role: models.RoleUser})
	require.NoError(t, err)
	require.NoError(t, store.Expire(ctx, "browser"))

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.SessionEvents.WithLabelValues("expired")) == before+1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
