package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// Input validation and sanitization utilities

// MaxQuestionLength caps assistant questions, in characters.
const MaxQuestionLength = 2000

// ValidateRole parses a role name from user input.
func ValidateRole(raw string) (roles.Role, error) {
	r, err := roles.Parse(SanitizeString(raw))
	if err != nil {
		return "", fmt.Errorf("invalid role: %q (allowed: fisheries, biodiversity, researcher): %w", raw, err)
	}
	return r, nil
}

// ValidateDatasetID accepts anything the catalog could hold as an id; whether
// it exists is the lookup's business. Empty means "no selection".
func ValidateDatasetID(id string) error {
	if err := catalog.CheckKey(id); err != nil {
		return fmt.Errorf("invalid dataset ID: %w", err)
	}
	return nil
}

// ValidateRegionName is ValidateDatasetID for region names. Empty clears the selection.
func ValidateRegionName(name string) error {
	if err := catalog.CheckKey(name); err != nil {
		return fmt.Errorf("invalid region name: %w", err)
	}
	return nil
}

// ValidateQuestion sanitizes an assistant question and enforces its length.
func ValidateQuestion(q string) (string, error) {
	q = SanitizeString(q)
	if q == "" {
		return "", fmt.Errorf("question cannot be empty")
	}
	if utf8.RuneCountInString(q) > MaxQuestionLength {
		return "", fmt.Errorf("question exceeds %d characters", MaxQuestionLength)
	}
	return q, nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
