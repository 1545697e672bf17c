package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devchatClient/internal/api"
	"devchatClient/internal/config"
	"devchatClient/internal/models"
	"devchatClient/internal/service"
	"devchatClient/internal/session"
	"devchatClient/internal/storage"
)

type testEnv struct {
	t       *testing.T
	cfg     *config.Config
	store   *session.Store
	storage *storage.MemoryStorage
	client  *api.Client

	mu    sync.Mutex
	paths []string
}

func newTestEnv(t *testing.T, backend http.HandlerFunc) *testEnv {
	t.Helper()
	env := &testEnv{t: t}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.paths = append(env.paths, r.Method+" "+r.URL.Path)
		env.mu.Unlock()
		backend(w, r)
	}))
	t.Cleanup(srv.Close)

	env.cfg = &config.Config{APIBaseURL: srv.URL, APITimeout: time.Second, CLIProfile: "default"}
	env.storage = storage.NewMemoryStorage()
	env.store = session.NewStore(env.storage)
	env.client = api.NewClient(srv.URL, time.Second, func(ctx context.Context, namespace string) {
		_ = env.store.Expire(ctx, namespace)
	})
	return env
}

// run executes one devchat invocation with stdin set to input.
func (e *testEnv) run(input string, args ...string) (string, error) {
	var out bytes.Buffer
	services := service.NewService(e.client, e.store, e.storage, e.cfg)
	c := New(services, e.store, e.cfg, strings.NewReader(input), &out)

	root := c.NewRootCommand()
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) signIn(profile string, role models.Role, username string) {
	e.t.Helper()
	_, err := e.store.Login(context.Background(), profile, models.Session{
		Token:    tokenFor(e.t, username),
		Role:     role,
		Verified: true,
	})
	require.NoError(e.t, err)
}

func tokenFor(t *testing.T, username string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": username}).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_PersistsProfileSession(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: tokenFor(t, "bob"), Role: models.RoleDev, Verified: true})
	})

	out, err := env.run("bob\nsecret1\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome back to DevChat!")

	items, err := env.storage.GetItems(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "DEV", items[session.KeyRole])

	out, err = env.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "bob, DEV, verified (profile default)")

	out, err = env.run("", "whoami", "--profile", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in (profile work)")
}

func TestLogin_ValidatesBeforeCallingAPI(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("api must not be called")
	})

	_, err := env.run("123\n", "login", "--username", "bob")

	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())
}

func TestLogin_ShowsServerMessage(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid username or password"})
	})

	_, err := env.run("wrong-pass\n", "login", "-u", "bob")

	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestRegister_PendingDeveloper(t *testing.T) {
	var body map[string]string
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: tokenFor(t, "new_dev"), Role: models.RoleDev})
	})

	out, err := env.run("secret1\n", "register", "-u", "new_dev", "-e", "dev@example.com", "--role", "dev")

	require.NoError(t, err)
	assert.Contains(t, out, "pending admin verification")
	assert.Equal(t, "DEV", body["role"])
}

func TestGuardedCommands(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Thread{})
	})

	_, err := env.run("", "threads", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")

	env.signIn("default", models.RoleUser, "alice")

	_, err = env.run("", "admin", "pending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot run this command")

	_, err = env.run("", "messages", "reply", "1", "-m", "hi")
	require.Error(t, err)
	assert.Equal(t, "Only developers and admins can reply to threads.", err.Error())

	assert.Empty(t, env.paths)
}

func TestThreadsList_Search(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Thread{
			{ID: 7, Title: "Goroutine leak", AuthorName: "alice", AuthorRole: models.RoleUser, MessageCount: 2},
		})
	})
	env.signIn("default", models.RoleDev, "bob")

	out, err := env.run("", "threads", "list", "--search", "leak")

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /threads/search"}, env.paths)
	assert.Contains(t, out, "Goroutine leak")
	assert.Contains(t, out, "alice (USER)")
}

func TestThreadsShow(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/threads/7":
			writeJSON(w, http.StatusOK, models.Thread{ID: 7, Title: "Goroutine leak", Content: "pprof shows 10k", AuthorName: "alice"})
		case "/messages/thread/7":
			writeJSON(w, http.StatusOK, []models.Message{{ID: 70, Content: "close the channel", AuthorName: "bob", Upvotes: 3, Downvotes: 1}})
		}
	})
	env.signIn("default", models.RoleUser, "alice")

	out, err := env.run("", "threads", "show", "7")

	require.NoError(t, err)
	assert.Contains(t, out, "#7 Goroutine leak")
	assert.Contains(t, out, "1 reply")
	assert.Contains(t, out, "score 2 (+3/-1)")
}

func TestThreadsCreate(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, models.Thread{ID: 5})
	})
	env.signIn("default", models.RoleUser, "alice")

	out, err := env.run("", "threads", "create", "-t", "Deadlock", "-m", "all goroutines are asleep")

	require.NoError(t, err)
	assert.Contains(t, out, "Thread created successfully! (#5)")
	assert.Equal(t, []string{"POST /threads"}, env.paths)
}

func TestUnauthorizedExpiresProfile(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	env.signIn("default", models.RoleDev, "bob")

	_, err := env.run("", "threads", "list")

	assert.ErrorIs(t, err, ErrSessionExpired)
	items, _ := env.storage.GetItems(context.Background(), "default")
	assert.Empty(t, items)
}

func TestVote(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, models.VoteCounts{Upvotes: 1, Downvotes: 1, UserVote: models.VoteDownvote})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	env.signIn("default", models.RoleUser, "alice")

	out, err := env.run("", "vote", "70", "up")

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /votes/70/counts", "POST /votes"}, env.paths)
	assert.Contains(t, out, "score 2 (+2/-0, you upvoted)")
}

func TestVote_FailurePolicy(t *testing.T) {
	backend := func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusOK, models.VoteCounts{})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Cannot vote on your own message"})
	}

	env := newTestEnv(t, backend)
	env.signIn("default", models.RoleDev, "bob")
	out, err := env.run("", "vote", "70", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "score -1 (+0/-1, you downvoted)")

	env = newTestEnv(t, backend)
	env.cfg.VoteRollback = true
	env.signIn("default", models.RoleDev, "bob")
	_, err = env.run("", "vote", "70", "down")
	require.Error(t, err)
	assert.Equal(t, "Cannot vote on your own message", err.Error())
}

func TestAdminVerify(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User verified successfully"))
	})
	env.signIn("default", models.RoleAdmin, "mod")

	out, err := env.run("", "admin", "verify", "3")

	require.NoError(t, err)
	assert.Equal(t, []string{"POST /admin/verify/3"}, env.paths)
	assert.Contains(t, out, "User verified successfully!")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {})
	env.signIn("default", models.RoleUser, "alice")

	_, err := env.run("", "logout")
	require.NoError(t, err)

	items, _ := env.storage.GetItems(context.Background(), "default")
	assert.Empty(t, items)
}
