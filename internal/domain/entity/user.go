package entity

import (
	"net/mail"
	"strings"
	"time"
)

// User represents an account that can sign in to the portal.
// PasswordHash holds a bcrypt hash and is never serialized to clients.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        string
	CreatedAt    time.Time
}

// NormalizeEmail lowercases and trims an email address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that email is a single, well-formed address.
// Returns a ValidationError if the address is empty or malformed.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	return nil
}
