// Package session holds the per-browser-session mutable state: the
// authenticated identity, the in-flight interview, and one-shot flash
// messages. Cross-session isolation comes from the store; within one
// session the page handlers are the only writers.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"qualifaize-web/internal/interview"
)

// Flash is a one-shot message rendered on the next page view.
type Flash struct {
	Kind    string // success, error, warning, info
	Message string
}

type Session struct {
	ID string

	// Interview is mutated only by the interview page's action
	// handlers, serialized through Lock.
	Interview interview.State
	Summary   *interview.Summary

	actionMu  sync.Mutex
	mu        sync.Mutex
	identity  *Identity
	flashes   []Flash
	createdAt time.Time
	lastSeen  time.Time
}

// Lock serializes page actions for this session. Concurrent requests
// for the same session (double-clicked buttons) queue up instead of
// interleaving state mutations. Field accessors use their own mutex, so
// holding the action lock never blocks them.
func (s *Session) Lock() { s.actionMu.Lock() }

func (s *Session) Unlock() { s.actionMu.Unlock() }

// SetIdentity installs the identity record atomically; every derived
// auth header reads through it from this point on.
func (s *Session) SetIdentity(identity *Identity) {
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
}

// ClearIdentity removes the identity unconditionally. Safe to call on
// an already-cleared session.
func (s *Session) ClearIdentity() {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()
}

func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

func (s *Session) Authenticated() bool {
	return s.Identity() != nil
}

func (s *Session) AddFlash(kind string, message string) {
	s.mu.Lock()
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
	s.mu.Unlock()
}

// PopFlashes drains the pending flash messages.
func (s *Session) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) expired(ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastSeen) > ttl
}

type Store struct {
	cookieName string
	ttl        time.Duration
	mu         sync.RWMutex
	sessions   map[string]*Session
}

func NewStore(cookieName string, ttl time.Duration) *Store {
	return &Store{
		cookieName: cookieName,
		ttl:        ttl,
		sessions:   map[string]*Session{},
	}
}

// GetOrCreate resolves the session for the request cookie, minting a
// new session (and cookie) when none exists or the old one expired.
func (st *Store) GetOrCreate(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(st.cookieName); err == nil {
		if sess, ok := st.lookup(cookie.Value); ok {
			sess.touch()
			return sess
		}
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		createdAt: now,
		lastSeen:  now,
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     st.cookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sess
}

func (st *Store) lookup(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if sess.expired(st.ttl) {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		return nil, false
	}

	return sess, true
}

// StartSweeper evicts expired sessions until ctx is cancelled.
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.sweep()
		}
	}
}

func (st *Store) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		if sess.expired(st.ttl) {
			delete(st.sessions, id)
		}
	}
}

type contextKey string

const sessionContextKey contextKey = "session"

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*Session)
	return sess, ok
}

// Token implements apiclient.TokenSource: outgoing backend requests are
// stamped with the bearer token of the session bound to the request
// context, when one exists.
func (st *Store) Token(ctx context.Context) (string, bool) {
	sess, ok := FromContext(ctx)
	if !ok {
		return "", false
	}

	identity := sess.Identity()
	if identity == nil {
		return "", false
	}
	return identity.Token, true
}
