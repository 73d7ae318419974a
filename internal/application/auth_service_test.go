package application

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
	"github.com/bloggramm/bloggramm/pkg/apperr"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

type fakeUserRepo struct {
	users     map[string]*entity.User
	appendErr error
	createErr error
	getErr    error
	appendCnt int
	createCnt int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.createCnt++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[u.UserName]; ok {
		return repository.ErrDuplicateKey
	}
	cp := *u
	f.users[u.UserName] = &cp
	return nil
}

func (f *fakeUserRepo) GetByName(ctx context.Context, userName string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[userName]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	cp.LoginHistory = append([]entity.LoginEntry(nil), u.LoginHistory...)
	return &cp, nil
}

func (f *fakeUserRepo) AppendLoginHistory(ctx context.Context, userName string, e entity.LoginEntry) error {
	f.appendCnt++
	if f.appendErr != nil {
		return f.appendErr
	}
	u, ok := f.users[userName]
	if !ok {
		return repository.ErrNotFound
	}
	u.LoginHistory = append(u.LoginHistory, e)
	return nil
}

type fakeSessionStore struct {
	sessions map[string]Session
	putErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]Session{}}
}

func (f *fakeSessionStore) Put(ctx context.Context, sid string, s Session, ttl time.Duration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[sid] = s
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, sid string) (*Session, error) {
	s, ok := f.sessions[sid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSessionStore) Del(ctx context.Context, sid string) error {
	delete(f.sessions, sid)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAuthService(users repository.UserRepository, sessions SessionStore) *AuthService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, sessions, jwt, nil, quietLogger(), time.Hour)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())

	err := svc.Register(context.Background(), RegisterInput{
		UserName:        "alice",
		Password:        "password123",
		PasswordConfirm: "password124",
		Email:           "alice@example.com",
	})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCnt != 0 {
		t.Fatalf("expected no create call, got %d", repo.createCnt)
	}
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())

	if err := svc.Register(context.Background(), RegisterInput{
		UserName:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
		Email:           "alice@example.com",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u := repo.users["alice"]
	if u == nil {
		t.Fatal("user not stored")
	}
	if u.PasswordHash == "password123" {
		t.Fatal("plaintext password was stored")
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, "password123") {
		t.Fatal("stored hash does not verify against the original password")
	}
}

func TestRegisterDuplicateUserName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())

	in := RegisterInput{
		UserName:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
		Email:           "alice@example.com",
	}
	if err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	err := svc.Register(context.Background(), in)
	if !apperr.IsKind(err, apperr.KindDuplicateUser) {
		t.Fatalf("expected duplicate-user error, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(repo.users))
	}
}

func registerAlice(t *testing.T, svc *AuthService) {
	t.Helper()
	if err := svc.Register(context.Background(), RegisterInput{
		UserName:        "alice",
		Password:        "password123",
		PasswordConfirm: "password123",
		Email:           "alice@example.com",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), newFakeSessionStore())

	_, err := svc.Login(context.Background(), LoginInput{UserName: "nobody", Password: "whatever"})
	if !apperr.IsKind(err, apperr.KindUserNotFound) {
		t.Fatalf("expected user-not-found error, got %v", err)
	}
}

func TestLoginWrongPasswordLeavesHistoryUntouched(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())
	registerAlice(t, svc)

	_, err := svc.Login(context.Background(), LoginInput{UserName: "alice", Password: "wrong"})
	if !apperr.IsKind(err, apperr.KindInvalidCredentials) {
		t.Fatalf("expected invalid-credentials error, got %v", err)
	}
	if got := len(repo.users["alice"].LoginHistory); got != 0 {
		t.Fatalf("expected empty login history, got %d entries", got)
	}
}

func TestLoginAppendsOneHistoryEntry(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())
	registerAlice(t, svc)

	u, err := svc.Login(context.Background(), LoginInput{
		UserName:  "alice",
		Password:  "password123",
		UserAgent: "test-agent/1.0",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got := len(repo.users["alice"].LoginHistory); got != 1 {
		t.Fatalf("expected one stored history entry, got %d", got)
	}
	if got := len(u.LoginHistory); got != 1 {
		t.Fatalf("expected one entry on returned user, got %d", got)
	}
	if u.LoginHistory[0].UserAgent != "test-agent/1.0" {
		t.Fatalf("wrong user agent recorded: %q", u.LoginHistory[0].UserAgent)
	}
	if u.LoginHistory[0].Timestamp.IsZero() {
		t.Fatal("history entry has zero timestamp")
	}
}

func TestLoginRejectedWhenHistoryAppendFails(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())
	registerAlice(t, svc)

	repo.appendErr = errors.New("store down")
	_, err := svc.Login(context.Background(), LoginInput{UserName: "alice", Password: "password123"})
	if !apperr.IsKind(err, apperr.KindStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestIssueAndDropSession(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newAuthService(newFakeUserRepo(), sessions)

	token, exp, err := svc.IssueSession(context.Background(), &entity.User{UserName: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", exp)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected one stored session, got %d", len(sessions.sessions))
	}

	claims, err := svc.JWT.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserName != "alice" {
		t.Fatalf("wrong user name in claims: %q", claims.UserName)
	}
	if _, err := sessions.Get(context.Background(), claims.SessionID); err != nil {
		t.Fatalf("session not resolvable: %v", err)
	}

	svc.DropSession(context.Background(), token)
	if _, err := sessions.Get(context.Background(), claims.SessionID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected session gone, got %v", err)
	}
}

func TestUserHistoryOrdering(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo, newFakeSessionStore())
	registerAlice(t, svc)

	for _, ua := range []string{"first", "second", "third"} {
		if _, err := svc.Login(context.Background(), LoginInput{UserName: "alice", Password: "password123", UserAgent: ua}); err != nil {
			t.Fatalf("login failed: %v", err)
		}
	}

	history, err := svc.UserHistory(context.Background(), "alice")
	if err != nil {
		t.Fatalf("user history failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i, want := range []string{"first", "second", "third"} {
		if history[i].UserAgent != want {
			t.Fatalf("entry %d out of order: got %q, want %q", i, history[i].UserAgent, want)
		}
	}
}
