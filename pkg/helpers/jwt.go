package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and validates the session token carried in the session
// cookie. The token is only a pointer to the server-side session record; it
// grants nothing on its own.
type JWTManager struct {
	Secret     []byte
	SessionTTL time.Duration
}

func NewJWTManager(secret string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		Secret:     []byte(secret),
		SessionTTL: sessionTTL,
	}
}

type Claims struct {
	UserName  string `json:"sub_name"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateSessionToken(userName, sessionID string) (string, time.Time, error) {
	exp := time.Now().Add(m.SessionTTL)
	claims := &Claims{
		UserName:  userName,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

func (m *JWTManager) ParseSessionToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
