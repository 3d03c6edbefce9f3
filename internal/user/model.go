package user

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	Currency     string
	Locale       string
	TokenVersion int
	CreatedAt    time.Time
}

// Credentials carry a registration or login request.
type Credentials struct {
	Email    string
	Name     string
	Password string
	Locale   string
}
