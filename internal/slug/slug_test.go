package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"iOS 17 Forensics: A Deep Dive!", "ios-17-forensics-a-deep-dive"},
		{"  Hello   World  ", "hello-world"},
		{"snake_case__title", "snake-case-title"},
		{"--already-slugged--", "already-slugged"},
		{"a - _ b", "a-b"},
		{"Tab\tand\nnewline", "tab-and-newline"},
		{"디지털 포렌식 2024", "2024"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input=%q", tc.in)
	}
}

func TestSlugifyIdempotentAndClean(t *testing.T) {
	inputs := []string{
		"iOS 17 Forensics: A Deep Dive!",
		"__Leading and trailing__",
		"Mixed---separators___and   spaces",
		"Ünïcödé Tïtle",
		"x",
		"-",
		"a_-_b",
	}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "not idempotent for %q", in)
		assert.False(t, strings.HasPrefix(once, "-"), "leading hyphen for %q", in)
		assert.False(t, strings.HasSuffix(once, "-"), "trailing hyphen for %q", in)
		assert.NotContains(t, once, "--", "double hyphen for %q", in)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("digital-crime"))
	assert.False(t, Valid("Digital Crime"))
	assert.False(t, Valid(""))
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"report": true, "report-2": true}
	got, err := Unique("report", func(c string) (bool, error) { return taken[c], nil })
	require.NoError(t, err)
	assert.Equal(t, "report-3", got)

	got, err = Unique("fresh", func(c string) (bool, error) { return taken[c], nil })
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestEditorFollowsTitleUntilOverridden(t *testing.T) {
	var e Editor
	e.SetTitle("iOS 17 Forensics")
	assert.Equal(t, "ios-17-forensics", e.Slug())

	e.SetTitle("iOS 17 Forensics: A Deep Dive!")
	assert.Equal(t, "ios-17-forensics-a-deep-dive", e.Slug())

	e.SetSlug("custom-slug")
	e.SetTitle("Something else")
	assert.True(t, e.Overridden())
	assert.Equal(t, "custom-slug", e.Slug())

	e.SetSlug("")
	assert.False(t, e.Overridden())
	assert.Equal(t, "something-else", e.Slug())
}
