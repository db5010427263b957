package usecase

import "strings"

const maxSlugLen = 36

// SlugFromTitle derives a URL slug from a post title: lowercase, spaces to
// hyphens, everything else outside [a-z0-9-] dropped.
func SlugFromTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// SanitizeSlug restricts a caller-supplied slug to [a-z0-9._-] and caps it
// at 36 characters so it can double as the document ID.
func SanitizeSlug(slug string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(slug) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
	}
	return s
}
