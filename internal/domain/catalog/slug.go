package catalog

import (
	"errors"
	"regexp"
)

var ErrInvalidSlug = errors.New("invalid slug format")

// slugRegex validates slug format (lowercase letters, numbers, hyphens)
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether slug is well-formed
func ValidSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}
