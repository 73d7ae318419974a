package entity

import (
	"time"
)

// User is the aggregate root for the credential domain.
// Passwords are stored as bcrypt hashes in PasswordHash; the plaintext never
// leaves the registration/login request.
type User struct {
	UserName     string       `json:"userName"`
	PasswordHash string       `json:"passwordHash"`
	Email        string       `json:"email"`
	LoginHistory []LoginEntry `json:"loginHistory,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// LoginEntry is one append-only record of a successful login.
// Insertion order is meaningful: most recent last.
type LoginEntry struct {
	Timestamp time.Time `json:"dateTime"`
	UserAgent string    `json:"userAgent"`
}
