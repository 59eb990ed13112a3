// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	unsafeNameRun = regexp.MustCompile(`[^a-zA-Z0-9.]`)
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}

// ParseKeywords splits a comma separated keyword field, trimming each entry
// and dropping empties and case-insensitive duplicates.
func ParseKeywords(raw string) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		keyword := SanitizeInput(part)
		if keyword == "" {
			continue
		}
		lower := strings.ToLower(keyword)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		keywords = append(keywords, keyword)
	}
	return keywords
}

// SafeFilename replaces every character outside [a-zA-Z0-9.] with an underscore.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "paper.pdf"
	}
	return unsafeNameRun.ReplaceAllString(name, "_")
}
