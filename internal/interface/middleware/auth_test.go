package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

type memSessionStore struct {
	sessions map[string]application.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]application.Session{}}
}

func (m *memSessionStore) Put(ctx context.Context, sid string, s application.Session, ttl time.Duration) error {
	m.sessions[sid] = s
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, sid string) (*application.Session, error) {
	s, ok := m.sessions[sid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *memSessionStore) Del(ctx context.Context, sid string) error {
	delete(m.sessions, sid)
	return nil
}

func gatedRouter(sessions application.SessionStore, jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gated := r.Group("/")
	gated.Use(EnsureLogin(sessions, jwt))
	gated.GET("/posts", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserNameKey))
	})
	return r
}

func TestEnsureLoginWithoutCookieRedirects(t *testing.T) {
	r := gatedRouter(newMemSessionStore(), helpers.NewJWTManager("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect location = %q, want /login", loc)
	}
}

func TestEnsureLoginWithDeadSessionRedirects(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := gatedRouter(newMemSessionStore(), jwt)

	// Token is well-formed but its session no longer exists server-side.
	token, _, err := jwt.GenerateSessionToken("alice", "gone-sid")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
}

func TestEnsureLoginWithLiveSessionPasses(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	sessions := newMemSessionStore()
	r := gatedRouter(sessions, jwt)

	sessions.sessions["sid-1"] = application.Session{UserName: "alice", Email: "alice@example.com"}
	token, _, err := jwt.GenerateSessionToken("alice", "sid-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "alice" {
		t.Fatalf("context user = %q, want alice", w.Body.String())
	}
}

func TestEnsureLoginRejectsForgedToken(t *testing.T) {
	sessions := newMemSessionStore()
	sessions.sessions["sid-1"] = application.Session{UserName: "alice"}

	// Signed under a different secret.
	forged, _, err := helpers.NewJWTManager("other-secret", time.Hour).GenerateSessionToken("alice", "sid-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	r := gatedRouter(sessions, helpers.NewJWTManager("secret", time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: forged})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
}
