package persistence

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

const minTenantSlugLength = 3

// NormalizeSlug trims whitespace, lowercases the value, and ensures it matches
// the canonical URL-safe slug pattern required for tenant slugs.
func NormalizeSlug(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("slug is required")
	}

	normalized := strings.ToLower(trimmed)
	if !slugPattern.MatchString(normalized) {
		return "", fmt.Errorf("invalid slug %q: must match ^[a-z0-9]+(?:-[a-z0-9]+)*$", input)
	}
	if len(normalized) < minTenantSlugLength {
		return "", fmt.Errorf("invalid slug %q: must be at least %d characters", input, minTenantSlugLength)
	}

	return normalized, nil
}

// NormalizeIdentifier validates the snake_case identifiers used for custom object and field slugs.
// These end up as JSON keys in record payloads.
func NormalizeIdentifier(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("identifier is required")
	}
	if !identifierPattern.MatchString(trimmed) {
		return "", fmt.Errorf("invalid identifier %q: must match ^[a-z][a-z0-9_]*$", input)
	}
	return trimmed, nil
}
