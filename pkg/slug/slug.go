// Package slug normalizes catalog names for URL matching.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from name. Apostrophes are dropped
// rather than turned into separators:
//
//   - "men's clothing" → "mens-clothing"
//   - "  Electronics!" → "electronics"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("'", "", "’", "").Replace(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Match reports whether a and b have the same slug.
func Match(a, b string) bool {
	return Generate(a) == Generate(b)
}
