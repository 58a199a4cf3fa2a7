package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "bohol-countryside-loop", Slugify("", "Bohol Countryside Loop"))
	assert.Equal(t, "custom-slug", Slugify("Custom Slug", "Ignored"))
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Jane van Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "van Doe", last)

	first, last = SplitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-01")
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	d, err = ParseDate("2025-06-01T08:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("June 1st")
	assert.Error(t, err)
}
