package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devchatClient/internal/models"
	"devchatClient/internal/session"
)

type recordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          map[string]interface{}
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
}

func newFakeAPI(t *testing.T, handler http.HandlerFunc) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{handler: handler}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()
		f.handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func signedIn(token string) context.Context {
	return session.NewContext(context.Background(), session.State{
		Namespace: "browser-1",
		Hydrated:  true,
		Session:   models.Session{Token: token, Role: models.RoleUser, Verified: true},
	})
}

func TestClient_AttachesBearerToken(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Thread{{ID: 1, Title: "help"}})
	})
	client := NewClient(srv.URL+"/api", time.Second, nil)

	threads, err := client.ListThreads(signedIn("jwt-abc"))

	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "help", threads[0].Title)
	assert.Equal(t, "Bearer jwt-abc", fake.last().Authorization)
	assert.Equal(t, "/api/threads", fake.last().Path)
}

func TestClient_AnonymousRequestHasNoToken(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.AuthResponse{Token: "jwt-new", Role: models.RoleDev, Verified: false})
	})
	client := NewClient(srv.URL, time.Second, nil)

	resp, err := client.Login(context.Background(), models.LoginRequest{Username: "dev1", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-new", resp.Token)
	assert.Equal(t, models.RoleDev, resp.Role)
	assert.Empty(t, fake.last().Authorization)
	assert.Equal(t, "dev1", fake.last().Body["username"])
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
	})

	var cleared []string
	client := NewClient(srv.URL, time.Second, func(_ context.Context, namespace string) {
		cleared = append(cleared, namespace)
	})

	_, err := client.GetThread(signedIn("stale"), 4)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{"browser-1"}, cleared)
	assert.Equal(t, "token expired", Message(err, "fallback"))
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		status   int
		body     string
		sentinel error
		message  string
	}{
		{status: http.StatusBadRequest, body: `{"message":"Title is required"}`, sentinel: ErrValidation, message: "Title is required"},
		{status: http.StatusForbidden, body: `{"error":"Access denied"}`, sentinel: ErrForbidden, message: "Access denied"},
		{status: http.StatusNotFound, body: `{}`, sentinel: ErrNotFound, message: "Failed to load thread"},
		{status: http.StatusInternalServerError, body: `Thread not found`, sentinel: nil, message: "Thread not found"},
		{status: http.StatusBadGateway, body: `<html>bad gateway</html>`, sentinel: nil, message: "Failed to load thread"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			_, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			called := false
			client := NewClient(srv.URL, time.Second, func(context.Context, string) { called = true })

			_, err := client.GetThread(signedIn("t"), 1)

			require.Error(t, err)
			if tc.sentinel != nil {
				assert.ErrorIs(t, err, tc.sentinel)
			}
			assert.NotErrorIs(t, err, ErrUnauthorized)
			assert.False(t, called)
			assert.Equal(t, tc.message, Message(err, "Failed to load thread"))

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.Status)
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, nil)

	_, err := client.ListThreads(signedIn("t"))

	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, networkMessage, Message(err, "fallback"))
}

func TestClient_SearchEscapesKeyword(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.Thread{})
	})
	client := NewClient(srv.URL, time.Second, nil)

	_, err := client.SearchThreads(signedIn("t"), "go & rust")

	require.NoError(t, err)
	assert.Equal(t, "/threads/search", fake.last().Path)
	assert.Equal(t, "keyword=go+%26+rust", fake.last().RawQuery)
}

func TestClient_DeleteAcceptsPlainText(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Thread deleted successfully"))
	})
	client := NewClient(srv.URL, time.Second, nil)

	err := client.DeleteThread(signedIn("t"), 9)

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, fake.last().Method)
	assert.Equal(t, "/threads/9", fake.last().Path)
}

func TestClient_VoteEndpoints(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/votes":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"message":    "Vote added",
				"voteCounts": map[string]int{"upvotes": 3, "downvotes": 1},
			})
		case "/votes/12/counts":
			writeJSON(w, http.StatusOK, map[string]interface{}{"upvotes": 3, "userVote": "UPVOTE"})
		default:
			http.NotFound(w, r)
		}
	})
	client := NewClient(srv.URL, time.Second, nil)
	ctx := signedIn("t")

	result, err := client.Vote(ctx, models.VoteRequest{MessageID: 12, VoteType: models.VoteUpvote})
	require.NoError(t, err)
	assert.Equal(t, "Vote added", result.Message)
	assert.Equal(t, 3, result.VoteCounts.Upvotes)
	assert.Equal(t, float64(12), fake.last().Body["messageId"])
	assert.Equal(t, "UPVOTE", fake.last().Body["voteType"])

	counts, err := client.VoteCounts(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Upvotes: 3, Downvotes: 0, UserVote: models.VoteUpvote}, counts)
}

func TestClient_AdminEndpoints(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/pending-users", "/admin/users", "/users":
			writeJSON(w, http.StatusOK, []models.User{{ID: 5, Username: "dev5", Role: models.RoleDev}})
		case "/admin/verify/5":
			_, _ = w.Write([]byte("User verified"))
		case "/users/dev 5":
			writeJSON(w, http.StatusOK, models.User{ID: 5, Username: "dev 5"})
		default:
			http.NotFound(w, r)
		}
	})
	client := NewClient(srv.URL, time.Second, nil)
	ctx := signedIn("t")

	pending, err := client.PendingUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, client.VerifyUser(ctx, 5))
	assert.Equal(t, http.MethodPost, fake.last().Method)

	all, err := client.AllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev5", all[0].Username)

	legacy, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, legacy, 1)

	user, err := client.GetUser(ctx, "dev 5")
	require.NoError(t, err)
	assert.Equal(t, "dev 5", user.Username)
}

func TestClient_MessageEndpoints(t *testing.T) {
	fake, srv := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/messages/thread/3":
			writeJSON(w, http.StatusOK, []models.Message{{ID: 1, ThreadID: 3, Content: "hi"}})
		case r.Method == http.MethodPost && r.URL.Path == "/messages":
			writeJSON(w, http.StatusCreated, models.Message{ID: 2, ThreadID: 3, Content: "reply"})
		case r.Method == http.MethodPut && r.URL.Path == "/messages/2":
			writeJSON(w, http.StatusOK, models.Message{ID: 2, ThreadID: 3, Content: "edited"})
		case r.Method == http.MethodDelete && r.URL.Path == "/messages/2":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	client := NewClient(srv.URL, time.Second, nil)
	ctx := signedIn("t")

	list, err := client.ListMessages(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	created, err := client.CreateMessage(ctx, models.MessageRequest{ThreadID: 3, Content: "reply"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, float64(3), fake.last().Body["threadId"])

	updated, err := client.UpdateMessage(ctx, 2, models.MessageRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, client.DeleteMessage(ctx, 2))
}

func TestMessage_NonAPIErrorUsesFallback(t *testing.T) {
	assert.Equal(t, "Failed to vote", Message(errors.New("internal detail"), "Failed to vote"))
	assert.Equal(t, "", Message(nil, "Failed to vote"))
}
