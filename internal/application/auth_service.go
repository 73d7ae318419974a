package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
	"github.com/bloggramm/bloggramm/pkg/apperr"
	"github.com/bloggramm/bloggramm/pkg/helpers"
	"github.com/bloggramm/bloggramm/pkg/mailer"
	mailtpl "github.com/bloggramm/bloggramm/pkg/mailer/templates"
)

// Session is the server-side authorization context a session cookie points
// at. A request is authorized iff its token resolves to a live Session.
type Session struct {
	UserName  string
	Email     string
	CreatedAt time.Time
}

// SessionStore persists live sessions with a TTL.
type SessionStore interface {
	Put(ctx context.Context, sid string, s Session, ttl time.Duration) error
	// Get returns repository.ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, sid string) (*Session, error)
	Del(ctx context.Context, sid string) error
}

// AuthService implements registration and login verification against the
// credential store, and issues sessions for authorized logins.
type AuthService struct {
	Users      repository.UserRepository
	Sessions   SessionStore
	JWT        *helpers.JWTManager
	Pub        *helpers.RabbitPublisher
	Logger     *logrus.Logger
	SessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		Users:      users,
		Sessions:   sessions,
		JWT:        jwt,
		Pub:        pub,
		Logger:     logger,
		SessionTTL: sessionTTL,
	}
}

type RegisterInput struct {
	UserName        string
	Password        string
	PasswordConfirm string
	Email           string
}

type LoginInput struct {
	UserName  string
	Password  string
	UserAgent string
}

// Register validates the input, hashes the password, and persists the user.
// The confirmation password is compared before any hashing or storage work
// and is never persisted.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if in.Password != in.PasswordConfirm {
		return apperr.New(apperr.KindValidation, "passwords do not match")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, "could not hash password", err)
	}

	u := &entity.User{
		UserName:     in.UserName,
		PasswordHash: hash,
		Email:        in.Email,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return apperr.New(apperr.KindDuplicateUser, "user name was already taken")
		}
		s.Logger.WithError(err).WithField("user_name", in.UserName).Error("register: create user failed")
		return apperr.Wrap(apperr.KindStorage, "error saving new user", err)
	}
	return nil
}

// Login verifies the credentials and appends a login-history entry. The
// history write must succeed before the attempt counts as authorized; a
// failed append rejects the login even with valid credentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*entity.User, error) {
	u, err := s.Users.GetByName(ctx, in.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindUserNotFound, "unable to find user: "+in.UserName)
		}
		s.Logger.WithError(err).WithField("user_name", in.UserName).Error("login: lookup failed")
		return nil, apperr.Wrap(apperr.KindStorage, "unable to look up user", err)
	}

	if !helpers.CompareHashAndPassword(u.PasswordHash, in.Password) {
		return nil, apperr.New(apperr.KindInvalidCredentials, "incorrect password for user: "+in.UserName)
	}

	entry := entity.LoginEntry{Timestamp: time.Now().UTC(), UserAgent: in.UserAgent}
	if err := s.Users.AppendLoginHistory(ctx, u.UserName, entry); err != nil {
		s.Logger.WithError(err).WithField("user_name", in.UserName).Error("login: history append failed")
		return nil, apperr.Wrap(apperr.KindStorage, "there was an error verifying the user", err)
	}
	u.LoginHistory = append(u.LoginHistory, entry)

	s.notifyLogin(ctx, u, entry)
	return u, nil
}

// IssueSession creates the server-side session record and returns the signed
// token for the cookie.
func (s *AuthService) IssueSession(ctx context.Context, u *entity.User) (string, time.Time, error) {
	sid := uuid.NewString()
	sess := Session{UserName: u.UserName, Email: u.Email, CreatedAt: time.Now().UTC()}
	if err := s.Sessions.Put(ctx, sid, sess, s.SessionTTL); err != nil {
		s.Logger.WithError(err).WithField("user_name", u.UserName).Error("session store failed")
		return "", time.Time{}, apperr.Wrap(apperr.KindStorage, "could not create session", err)
	}
	token, exp, err := s.JWT.GenerateSessionToken(u.UserName, sid)
	if err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.KindStorage, "could not sign session token", err)
	}
	return token, exp, nil
}

// DropSession invalidates the session behind the token. Unknown tokens are
// treated as already logged out.
func (s *AuthService) DropSession(ctx context.Context, token string) {
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return
	}
	if err := s.Sessions.Del(ctx, claims.SessionID); err != nil {
		s.Logger.WithError(err).Warn("session delete failed")
	}
}

// UserHistory returns the ordered login history for the named user, most
// recent last.
func (s *AuthService) UserHistory(ctx context.Context, userName string) ([]entity.LoginEntry, error) {
	u, err := s.Users.GetByName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindUserNotFound, "unable to find user: "+userName)
		}
		return nil, apperr.Wrap(apperr.KindStorage, "unable to load login history", err)
	}
	return u.LoginHistory, nil
}

// notifyLogin queues a login-notification email. Best effort: delivery
// problems never fail the login.
func (s *AuthService) notifyLogin(ctx context.Context, u *entity.User, entry entity.LoginEntry) {
	if s.Pub == nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.LoginNotification,
		Data: map[string]any{
			"UserName":  u.UserName,
			"Time":      entry.Timestamp.Format(time.RFC3339),
			"UserAgent": entry.UserAgent,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_name", u.UserName).Warn("login notification publish failed")
	}
}
