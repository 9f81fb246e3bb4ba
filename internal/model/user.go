package model

import "time"

// MaxUsernameLen is the longest accepted username.
const MaxUsernameLen = 64

// User represents a registered diary account
type User struct {
	ID           int64
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
