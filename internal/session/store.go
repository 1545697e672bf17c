// Package session persists the signed-in state of each client and hands an
// immutable copy of it to request handlers through the context.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"devchatClient/internal/models"
	"devchatClient/internal/storage"
)

// Persisted item keys.
const (
	KeyToken    = "token"
	KeyRole     = "role"
	KeyVerified = "verified"
)

var ErrInvalidSession = errors.New("session needs a token and a known role")

type EventKind string

const (
	EventLogin   EventKind = "login"
	EventLogout  EventKind = "logout"
	EventExpired EventKind = "expired"
)

// Event describes one change of a client's session. It never carries the
// token.
type Event struct {
	Namespace string
	Kind      EventKind
	Role      models.Role
	Verified  bool
	At        time.Time
}

// State is what a request sees: the namespace it belongs to, the session
// read from storage, and whether that read has completed.
type State struct {
	Namespace string
	Session   models.Session
	Hydrated  bool
}

const watchBuffer = 16

type Store struct {
	storage storage.Storage

	mu       sync.Mutex
	watchers map[int]chan Event
	nextID   int
}

func NewStore(st storage.Storage) *Store {
	return &Store{
		storage:  st,
		watchers: make(map[int]chan Event),
	}
}

// Hydrate reads the persisted session of namespace. A session is restored
// only when both token and role are present. On a storage error the state
// comes back with Hydrated=false.
func (s *Store) Hydrate(ctx context.Context, namespace string) (State, error) {
	state := State{Namespace: namespace}

	items, err := s.storage.GetItems(ctx, namespace)
	if err != nil {
		return state, fmt.Errorf("hydrate session: %w", err)
	}
	state.Hydrated = true

	token := items[KeyToken]
	role := models.ParseRole(items[KeyRole])
	if token == "" || role == "" {
		return state, nil
	}

	state.Session = models.Session{
		Token:    token,
		Role:     role,
		Verified: items[KeyVerified] == "true",
	}
	return state, nil
}

// Login persists sess for namespace and activates it.
func (s *Store) Login(ctx context.Context, namespace string, sess models.Session) (State, error) {
	if !sess.IsAuthenticated() {
		return State{Namespace: namespace, Hydrated: true}, ErrInvalidSession
	}

	err := s.storage.SetItems(ctx, namespace, map[string]string{
		KeyToken:    sess.Token,
		KeyRole:     string(sess.Role),
		KeyVerified: strconv.FormatBool(sess.Verified),
	})
	if err != nil {
		return State{Namespace: namespace}, fmt.Errorf("persist session: %w", err)
	}

	s.publish(Event{Namespace: namespace, Kind: EventLogin, Role: sess.Role, Verified: sess.Verified})
	return State{Namespace: namespace, Session: sess, Hydrated: true}, nil
}

// Logout clears the persisted session of namespace.
func (s *Store) Logout(ctx context.Context, namespace string) error {
	return s.clear(ctx, namespace, EventLogout)
}

// Expire clears the session after the server rejected its token.
func (s *Store) Expire(ctx context.Context, namespace string) error {
	return s.clear(ctx, namespace, EventExpired)
}

func (s *Store) clear(ctx context.Context, namespace string, kind EventKind) error {
	if err := s.storage.RemoveItems(ctx, namespace, KeyToken, KeyRole, KeyVerified); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.publish(Event{Namespace: namespace, Kind: kind})
	return nil
}

// Watch returns a channel receiving every session change until ctx is done.
// A watcher that falls behind loses events rather than blocking the store.
func (s *Store) Watch(ctx context.Context) <-chan Event {
	ch := make(chan Event, watchBuffer)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

func (s *Store) publish(ev Event) {
	ev.At = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
