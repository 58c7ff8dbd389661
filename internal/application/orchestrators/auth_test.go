package orchestrators

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pathly/internal/adapters/backend"
	"pathly/internal/adapters/storage/sessioncache"
	"pathly/internal/domain/session"
)

// fakeAuthGateway returns a canned auth response.
type fakeAuthGateway struct {
	resp backend.AuthResponse
	err  error
}

func (f *fakeAuthGateway) Login(ctx context.Context, email, password string) (backend.AuthResponse, error) {
	return f.resp, f.err
}

// fakeSessions is an in-memory SessionWriter for tests.
type fakeSessions struct {
	sessions map[string]session.Session
	next     string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]session.Session), next: "cookie-1"}
}

func (f *fakeSessions) Create(sess session.Session) (string, error) {
	f.sessions[f.next] = sess
	return f.next, nil
}

func (f *fakeSessions) Put(token string, sess session.Session) {
	f.sessions[token] = sess
}

func (f *fakeSessions) Update(token string, sess session.Session) bool {
	if _, ok := f.sessions[token]; !ok {
		return false
	}
	f.sessions[token] = sess
	return true
}

func (f *fakeSessions) Delete(token string) {
	delete(f.sessions, token)
}

// fakeCache is an in-memory SessionCacheStore for tests.
type fakeCache struct {
	entries map[string]sessioncache.Entry
	saveErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]sessioncache.Entry)}
}

func (f *fakeCache) Get(ctx context.Context, cookie string) (sessioncache.Entry, error) {
	e, ok := f.entries[cookie]
	if !ok {
		return sessioncache.Entry{}, sessioncache.ErrNotFound
	}
	return e, nil
}

func (f *fakeCache) Save(ctx context.Context, e sessioncache.Entry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[e.Cookie] = e
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, cookie string) error {
	delete(f.entries, cookie)
	return nil
}

func authResponse() backend.AuthResponse {
	return backend.AuthResponse{
		User:  session.User{MongoID: "u1", Name: "Asha", Email: "a@b.edu", Role: "student"},
		Token: "T",
	}
}

// TestExecuteLogin tests the happy path: session in memory and cache
// under the same cookie.
func TestExecuteLogin(t *testing.T) {
	sessions := newFakeSessions()
	cache := newFakeCache()
	deps := LoginDeps{Gateway: &fakeAuthGateway{resp: authResponse()}, Sessions: sessions, Cache: cache}

	res, err := ExecuteLogin(context.Background(), LoginInput{Email: "a@b.edu", Password: "pw"}, deps)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Session.ID != "u1" || res.Session.Token != "T" {
		t.Fatalf("unexpected session: %+v", res.Session)
	}
	if _, ok := sessions.sessions[res.Cookie]; !ok {
		t.Fatal("session missing from memory store")
	}
	entry, ok := cache.entries[res.Cookie]
	if !ok {
		t.Fatal("session missing from durable cache")
	}
	if entry.Token != "T" {
		t.Fatalf("cache entry has wrong token: %q", entry.Token)
	}
}

// TestExecuteLogin_BadCredentials tests the 401 mapping.
func TestExecuteLogin_BadCredentials(t *testing.T) {
	deps := LoginDeps{
		Gateway:  &fakeAuthGateway{err: &backend.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}},
		Sessions: newFakeSessions(),
		Cache:    newFakeCache(),
	}
	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "a@b.edu", Password: "bad"}, deps)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_EmptyFields tests that the backend is never called
// with empty credentials.
func TestExecuteLogin_EmptyFields(t *testing.T) {
	deps := LoginDeps{Gateway: &fakeAuthGateway{resp: authResponse()}, Sessions: newFakeSessions(), Cache: newFakeCache()}
	if _, err := ExecuteLogin(context.Background(), LoginInput{Email: "", Password: "pw"}, deps); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// TestExecuteLogin_Unreachable tests the network failure mapping.
func TestExecuteLogin_Unreachable(t *testing.T) {
	deps := LoginDeps{
		Gateway:  &fakeAuthGateway{err: errors.New("dial tcp: connection refused")},
		Sessions: newFakeSessions(),
		Cache:    newFakeCache(),
	}
	_, err := ExecuteLogin(context.Background(), LoginInput{Email: "a@b.edu", Password: "pw"}, deps)
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

// TestExecuteLogin_CacheFailureStillLogsIn tests that a cache write
// failure does not block login.
func TestExecuteLogin_CacheFailureStillLogsIn(t *testing.T) {
	cache := newFakeCache()
	cache.saveErr = errors.New("disk full")
	deps := LoginDeps{Gateway: &fakeAuthGateway{resp: authResponse()}, Sessions: newFakeSessions(), Cache: cache}

	res, err := ExecuteLogin(context.Background(), LoginInput{Email: "a@b.edu", Password: "pw"}, deps)
	if err != nil {
		t.Fatalf("login should survive a cache failure: %v", err)
	}
	if res.Cookie == "" {
		t.Fatal("expected a cookie")
	}
}

// TestExecuteLogout tests that memory and cache are cleared together.
func TestExecuteLogout(t *testing.T) {
	sessions := newFakeSessions()
	cache := newFakeCache()
	deps := LoginDeps{Gateway: &fakeAuthGateway{resp: authResponse()}, Sessions: sessions, Cache: cache}
	res, err := ExecuteLogin(context.Background(), LoginInput{Email: "a@b.edu", Password: "pw"}, deps)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ExecuteLogout(context.Background(), res.Cookie, LogoutDeps{Sessions: sessions, Cache: cache})

	if _, ok := sessions.sessions[res.Cookie]; ok {
		t.Fatal("memory session should be gone")
	}
	if _, ok := cache.entries[res.Cookie]; ok {
		t.Fatal("cache entry should be gone")
	}
}

// TestExecuteRestore tests rebuilding a session from the cache.
func TestExecuteRestore(t *testing.T) {
	cache := newFakeCache()
	sess, err := session.FromServer(session.User{MongoID: "u1", Email: "a@b.edu"}, "T")
	if err != nil {
		t.Fatalf("building session: %v", err)
	}
	identity, _ := sess.MarshalIdentity()
	cache.entries["c1"] = sessioncache.Entry{Cookie: "c1", Identity: identity, Token: "T", CreatedAt: time.Now()}

	got, ok := ExecuteRestore(context.Background(), "c1", RestoreDeps{Cache: cache})
	if !ok {
		t.Fatal("restore should succeed")
	}
	if got.Email != "a@b.edu" || got.Token != "T" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

// TestExecuteRestore_CorruptIdentity tests that a bad cache entry is
// cleared instead of looping.
func TestExecuteRestore_CorruptIdentity(t *testing.T) {
	cache := newFakeCache()
	cache.entries["c1"] = sessioncache.Entry{Cookie: "c1", Identity: []byte("{not json"), Token: "T", CreatedAt: time.Now()}

	if _, ok := ExecuteRestore(context.Background(), "c1", RestoreDeps{Cache: cache}); ok {
		t.Fatal("restore must fail for a corrupt identity")
	}
	if _, ok := cache.entries["c1"]; ok {
		t.Fatal("corrupt entry should be deleted")
	}
}

// TestExecuteRestore_ExpiredToken tests that an expired JWT clears the
// cache entry.
func TestExecuteRestore_ExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	cache := newFakeCache()
	sess, _ := session.FromServer(session.User{MongoID: "u1", Email: "a@b.edu"}, token)
	identity, _ := sess.MarshalIdentity()
	cache.entries["c1"] = sessioncache.Entry{Cookie: "c1", Identity: identity, Token: token, CreatedAt: time.Now()}

	if _, ok := ExecuteRestore(context.Background(), "c1", RestoreDeps{Cache: cache}); ok {
		t.Fatal("restore must fail for an expired token")
	}
	if _, ok := cache.entries["c1"]; ok {
		t.Fatal("expired entry should be deleted")
	}
}

// TestExecuteRestore_OpaqueTokenSurvives tests that a non-JWT token is
// not treated as expired.
func TestExecuteRestore_OpaqueTokenSurvives(t *testing.T) {
	cache := newFakeCache()
	sess, _ := session.FromServer(session.User{MongoID: "u1", Email: "a@b.edu"}, "opaque-token")
	identity, _ := sess.MarshalIdentity()
	cache.entries["c1"] = sessioncache.Entry{Cookie: "c1", Identity: identity, Token: "opaque-token", CreatedAt: time.Now()}

	if _, ok := ExecuteRestore(context.Background(), "c1", RestoreDeps{Cache: cache}); !ok {
		t.Fatal("opaque tokens should restore")
	}
}
