package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qualifaize-web/internal/apiclient"
	"qualifaize-web/internal/config"
)

const testCookie = "qualifaize_session"

func TestGetOrCreateRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(testCookie, time.Hour)

	rec := httptest.NewRecorder()
	first := store.GetOrCreate(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, first)
	require.NotEmpty(t, first.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Equal(t, first.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	second := store.GetOrCreate(httptest.NewRecorder(), next)
	assert.Same(t, first, second)
}

func TestUnknownCookieMintsNewSession(t *testing.T) {
	t.Parallel()

	store := NewStore(testCookie, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "stale-id"})

	sess := store.GetOrCreate(httptest.NewRecorder(), req)
	require.NotNil(t, sess)
	assert.NotEqual(t, "stale-id", sess.ID)
}

func TestExpiredSessionEvicted(t *testing.T) {
	t.Parallel()

	store := NewStore(testCookie, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	first := store.GetOrCreate(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	time.Sleep(30 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	second := store.GetOrCreate(httptest.NewRecorder(), req)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSweepRemovesExpired(t *testing.T) {
	t.Parallel()

	store := NewStore(testCookie, 10*time.Millisecond)
	sess := store.GetOrCreate(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	time.Sleep(30 * time.Millisecond)
	store.sweep()

	_, ok := store.lookup(sess.ID)
	assert.False(t, ok)
}

func TestFlashesDrainOnce(t *testing.T) {
	t.Parallel()

	sess := &Session{}
	sess.AddFlash("success", "first")
	sess.AddFlash("error", "second")

	flashes := sess.PopFlashes()
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Kind: "success", Message: "first"}, flashes[0])
	assert.Equal(t, Flash{Kind: "error", Message: "second"}, flashes[1])

	assert.Empty(t, sess.PopFlashes())
}

func TestTokenSource(t *testing.T) {
	t.Parallel()

	store := NewStore(testCookie, time.Hour)

	_, ok := store.Token(context.Background())
	assert.False(t, ok, "no session bound to context")

	sess := &Session{}
	ctx := WithSession(context.Background(), sess)
	_, ok = store.Token(ctx)
	assert.False(t, ok, "session without identity")

	sess.SetIdentity(&Identity{Token: "tok-abc"})
	token, ok := store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-abc", token)
}

func newManagerBackedBy(t *testing.T, handler http.HandlerFunc) *Manager {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		BackendBaseURL:  srv.URL,
		BackendBasePath: "api",
		BearerPrefix:    "Bearer",
		HTTPSuccessMin:  200,
		HTTPSuccessMax:  300,
		RequestTimeout:  2 * time.Second,
	}
	return NewManager(apiclient.NewUserService(apiclient.New(cfg, nil)))
}

func TestLoginStoresIdentity(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "alice",
		"userId": "u-1",
		"roles":  []string{"USER"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	manager := newManagerBackedBy(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"token":"` + token + `"}`))
	})

	sess := &Session{}
	require.NoError(t, manager.Login(context.Background(), sess, "alice", "pw"))

	identity := sess.Identity()
	require.NotNil(t, identity)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, []string{"USER"}, identity.Roles)
	assert.True(t, sess.Authenticated())
}

func TestLoginRejectedCarriesBackendMessage(t *testing.T) {
	t.Parallel()

	manager := newManagerBackedBy(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	})

	sess := &Session{}
	err := manager.Login(context.Background(), sess, "alice", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
	assert.False(t, sess.Authenticated())
}

func TestLogoutIdempotent(t *testing.T) {
	t.Parallel()

	manager := NewManager(nil)
	sess := &Session{}
	sess.SetIdentity(&Identity{Token: "tok", Username: "alice"})

	manager.Logout(sess)
	assert.False(t, sess.Authenticated())

	manager.Logout(sess)
	assert.False(t, sess.Authenticated())
}
