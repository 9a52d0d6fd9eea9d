package validation

import (
	"fmt"
	"regexp"

	"github.com/loreforge/loreforge/internal/models"
)

// UsernamePattern defines the allowed username format:
// latin letters, digits and underscores, 3-32 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const (
	// MinUsernameLen is the minimum username length
	MinUsernameLen = 3
	// MaxUsernameLen is the maximum username length
	MaxUsernameLen = 32
	// MaxElementNameLen is the maximum element name length
	MaxElementNameLen = 200
)

// ValidateUsername checks that a username matches the allowed format.
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

// ValidatePassword checks the minimum master password requirements.
func ValidatePassword(password string) error {
	const minPasswordLen = 12

	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}

	return nil
}

// knownCategories are the built-in element categories.
var knownCategories = map[string]bool{
	models.CategoryCharacter: true,
	models.CategoryLocation:  true,
	models.CategoryFaction:   true,
	models.CategoryCustom:    true,
}

// ValidateCategory checks that a category is one of the built-in ones.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category cannot be empty")
	}
	if !knownCategories[category] {
		return fmt.Errorf("unknown category %q (expected character, location, faction or custom)", category)
	}
	return nil
}

// ValidateElementName checks an element display name.
func ValidateElementName(name string) error {
	if name == "" {
		return fmt.Errorf("element name cannot be empty")
	}
	if len(name) > MaxElementNameLen {
		return fmt.Errorf("element name must not exceed %d characters", MaxElementNameLen)
	}
	return nil
}
