package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// UsernamePattern is the allowed username format: latin letters, digits and
// underscores, 3-32 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen is the minimum username length.
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length.
	MaxUsernameLen = 32

	// MinPasswordLen is the minimum account password length.
	MinPasswordLen = 8

	// MaxTitleLen is the maximum document title length.
	MaxTitleLen = 200
)

// ValidateUsername checks that username matches UsernamePattern.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)")
	}

	return nil
}

// ValidatePassword checks the minimum password requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}

// ValidateTitle checks that a document title is non-blank and within limits.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be blank")
	}

	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	return nil
}
