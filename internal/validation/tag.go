package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var tagNameRegex = regexp.MustCompile(`^[a-z0-9-]{2,32}$`)

var reservedTagNames = map[string]struct{}{
	"api":      {},
	"admin":    {},
	"authors":  {},
	"posts":    {},
	"profiles": {},
	"tags":     {},
	"metrics":  {},
	"health":   {},
}

// ValidateTagName validates tag name format and reserved names. Tag names
// double as URL path segments, so they follow slug rules.
func ValidateTagName(name string) error {
	if !tagNameRegex.MatchString(name) {
		return fmt.Errorf("tag name must be 2-32 characters and contain only lowercase letters, numbers, and hyphens")
	}

	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("tag name cannot start or end with a hyphen")
	}

	if _, exists := reservedTagNames[name]; exists {
		return fmt.Errorf("tag name is reserved")
	}

	return nil
}

// NormalizeTagName lowercases and trims a raw tag name before validation.
// Spaces inside the name become hyphens so "Deep Learning" and
// "deep-learning" resolve to the same tag.
func NormalizeTagName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(name, " ", "-")
}
