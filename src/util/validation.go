package util

import (
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateUsername requires at least 5 characters.
func ValidateUsername(username string) bool {
	return len(username) >= 5
}

// ValidatePassword requires at least 8 characters including a digit.
func ValidatePassword(password string) bool {
	return len(password) >= 8 && digitPattern.MatchString(password)
}
