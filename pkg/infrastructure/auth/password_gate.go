// Package auth guards report generation behind a shared password.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrAccessDenied is returned when the supplied password does not match
var ErrAccessDenied = errors.New("access denied")

// PasswordGate checks a password against a bcrypt hash. A gate without a hash is open.
type PasswordGate struct {
	hash []byte
}

// NewPasswordGate creates a gate for a bcrypt hash (empty = open)
func NewPasswordGate(hash string) (*PasswordGate, error) {
	if hash == "" {
		return &PasswordGate{}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &PasswordGate{hash: []byte(hash)}, nil
}

// Enabled reports whether a password is required
func (g *PasswordGate) Enabled() bool {
	return len(g.hash) > 0
}

// Check returns ErrAccessDenied unless password matches the hash
func (g *PasswordGate) Check(password string) error {
	if !g.Enabled() {
		return nil
	}
	if password == "" {
		return fmt.Errorf("%w: password required", ErrAccessDenied)
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrAccessDenied
	}
	return nil
}

// HashPassword returns a bcrypt hash for password at the given cost (0 = bcrypt.DefaultCost)
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
