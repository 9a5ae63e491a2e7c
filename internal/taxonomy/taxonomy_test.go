package taxonomy

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	table := Default()
	cases := []struct {
		category    string
		subcategory string
		want        uint
	}{
		{"digital-forensic", "general-forensics", 2},
		{"digital-forensic", "evidence-forensics", 3},
		{"digital-forensic", "digital-crime", 4},
		{"press", "", 5},
		{"press", "ignored", 5},
		{"training", "", 6},
		{" Training ", "", 6},
		{"blog", "digital-crime", 4},
		{"Blog", "general-forensics", 2},
	}
	for _, tc := range cases {
		id, err := table.Resolve(tc.category, tc.subcategory)
		require.NoError(t, err, "%s/%s", tc.category, tc.subcategory)
		assert.Equal(t, tc.want, id, "%s/%s", tc.category, tc.subcategory)
	}
}

func TestResolveUnmapped(t *testing.T) {
	table := Default()
	cases := [][2]string{
		{"blog", ""},
		{"blog", "mobile"},
		{"services", ""},
		{"", ""},
		{"digital-forensic", ""},
		{"digital-forensic", "mobile"},
	}
	for _, tc := range cases {
		_, err := table.Resolve(tc[0], tc[1])
		assert.True(t, errors.Is(err, ErrUnmapped), "%v should be unmapped", tc)
		_, ok := table.Lookup(tc[0], tc[1])
		assert.False(t, ok, "%v should not be found", tc)
	}
}

func TestPostURL(t *testing.T) {
	table := Default()
	assert.Equal(t, "/digital-forensic/digital-crime/phone-dump", table.PostURL("digital-forensic", "digital-crime", "phone-dump"))
	assert.Equal(t, "/press/launch", table.PostURL("press", "", "launch"))
	assert.Equal(t, "/training/course", table.PostURL("training", "x", "course"))
	assert.Equal(t, "/posts/other", table.PostURL("unknown", "", "other"))
	assert.Equal(t, "/posts/other", table.PostURL("digital-forensic", "unknown", "other"))
	assert.Equal(t, "/press/your-slug-here", table.PostURL("press", "", ""))
	assert.Equal(t, "/digital-forensic/digital-crime/alias", table.PostURL("blog", "digital-crime", "alias"))
}

func TestURLForCategorySlug(t *testing.T) {
	table := Default()
	assert.Equal(t, "/digital-forensic/evidence-forensics/a", table.URLForCategorySlug("evidence-forensics", "a"))
	assert.Equal(t, "/training/b", table.URLForCategorySlug("training", "b"))
	assert.Equal(t, "/posts/c", table.URLForCategorySlug("misc", "c"))
}

func TestFromCategories(t *testing.T) {
	table := FromCategories([]Source{
		{ID: 1, Slug: "digital-forensic"},
		{ID: 11, Slug: "general-forensics", ParentSlug: "digital-forensic"},
		{ID: 14, Slug: "digital-crime", ParentSlug: "digital-forensic"},
		{ID: 15, Slug: "press"},
		{ID: 16, Slug: "training"},
		{ID: 20, Slug: "notices"},
	})

	id, err := table.Resolve("digital-forensic", "digital-crime")
	require.NoError(t, err)
	assert.Equal(t, uint(14), id)

	_, err = table.Resolve("digital-forensic", "evidence-forensics")
	assert.ErrorIs(t, err, ErrUnmapped)

	want := []Entry{
		{Category: "digital-forensic", Subcategory: "general-forensics", ID: 11, Slug: "general-forensics"},
		{Category: "digital-forensic", Subcategory: "digital-crime", ID: 14, Slug: "digital-crime"},
		{Category: "press", ID: 15, Slug: "press"},
		{Category: "training", ID: 16, Slug: "training"},
	}
	if diff := cmp.Diff(want, table.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"general-forensics", "digital-crime"}, table.Subcategories("digital-forensic"))
}

func TestNilTableIsUnmapped(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("press", "")
	assert.False(t, ok)
	assert.Equal(t, "/posts/x", table.PostURL("digital-forensic", "digital-crime", "x"))
}
