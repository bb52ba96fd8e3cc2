// Package validation contains input validation for request payloads.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 6
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateUsername checks registration username constraints.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("Username is required")
	}
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("Username must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	return nil
}

// ValidateEmail checks that the address looks like an email.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("Please provide a valid email address")
	}
	return nil
}

// ValidatePassword checks password length and the confirmation field.
func ValidatePassword(password, confirmPassword string) error {
	if password == "" {
		return fmt.Errorf("Password is required")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("Password must be at least %d characters long", minPasswordLen)
	}
	if password != confirmPassword {
		return fmt.Errorf("Passwords do not match")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for case-insensitive lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
