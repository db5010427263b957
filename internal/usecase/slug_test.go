package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugFromTitle(t *testing.T) {
	assert.Equal(t, "my-first-post", SlugFromTitle("My First Post"))
	assert.Equal(t, "hello-world", SlugFromTitle("  Hello World  "))
	assert.Equal(t, "whats-new-in-2026", SlugFromTitle("What's New in 2026?"))
	assert.Equal(t, "", SlugFromTitle("!!!"))
}

func TestSanitizeSlug_Charset(t *testing.T) {
	// Sanitation only strips; it never hyphenates or transliterates.
	assert.Equal(t, "mypost", SanitizeSlug("My Post"))
	assert.Equal(t, "v1.2_beta-rc", SanitizeSlug("V1.2_Beta-RC"))
	assert.Equal(t, "caf", SanitizeSlug("café!"))
}

func TestSanitizeSlug_CapsAt36(t *testing.T) {
	long := strings.Repeat("a", 50)
	got := SanitizeSlug(long)
	assert.Equal(t, 36, len(got))
	assert.Equal(t, strings.Repeat("a", 36), got)
}

func TestSanitizeSlug_Deterministic(t *testing.T) {
	assert.Equal(t, SanitizeSlug("Some Slug Here"), SanitizeSlug("Some Slug Here"))
}

func TestSanitizeSlug_Empty(t *testing.T) {
	assert.Equal(t, "", SanitizeSlug(""))
	assert.Equal(t, "", SanitizeSlug("@#$%"))
}
