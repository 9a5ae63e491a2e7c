package filter

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type inquiry struct {
	ID      int
	Name    string
	Email   string
	Subject string
	Message string
	Status  string
	Urgency string
}

func inquiryView(i inquiry) InquiryRecord {
	return InquiryRecord{Name: i.Name, Email: i.Email, Subject: i.Subject, Message: i.Message, Status: i.Status, Urgency: i.Urgency}
}

func sampleInquiries() []inquiry {
	return []inquiry{
		{1, "Kim Minsu", "kim@example.com", "Phone recovery", "iPhone locked", "new", "urgent"},
		{2, "Lee", "lee@corp.kr", "Audit", "Need evidence review", "read", "normal"},
		{3, "Park", "park@example.com", "Training", "Group course for police", "closed", "low"},
		{4, "Choi", "choi@example.com", "Recovery quote", "Deleted messages", "new", "high"},
	}
}

func ids(items []inquiry) []int {
	out := make([]int, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestInquiriesFilter(t *testing.T) {
	items := sampleInquiries()
	cases := []struct {
		name     string
		criteria InquiryCriteria
		want     []int
	}{
		{"no filters", InquiryCriteria{}, []int{1, 2, 3, 4}},
		{"all keywords", InquiryCriteria{Status: "all", Urgency: "all"}, []int{1, 2, 3, 4}},
		{"search subject case insensitive", InquiryCriteria{Search: "RECOVERY"}, []int{1, 4}},
		{"search email", InquiryCriteria{Search: "corp.kr"}, []int{2}},
		{"search message", InquiryCriteria{Search: "police"}, []int{3}},
		{"status", InquiryCriteria{Status: "new"}, []int{1, 4}},
		{"status and urgency", InquiryCriteria{Status: "new", Urgency: "urgent"}, []int{1}},
		{"search and status", InquiryCriteria{Search: "recovery", Status: "read"}, []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Inquiries(items, tc.criteria, inquiryView))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// 命中当且仅当状态、紧急程度与任一文本字段同时满足
func TestInquiriesFilterIffProperty(t *testing.T) {
	items := sampleInquiries()
	searches := []string{"", " ", "e", "kim", "REVIEW", "zzz", " minsu", "review "}
	statuses := []string{"", "all", "new", "read", "closed"}
	urgencies := []string{"", "all", "urgent", "low"}
	for _, search := range searches {
		for _, status := range statuses {
			for _, urgency := range urgencies {
				c := InquiryCriteria{Search: search, Status: status, Urgency: urgency}
				got := map[int]bool{}
				for _, item := range Inquiries(items, c, inquiryView) {
					got[item.ID] = true
				}
				for _, item := range items {
					statusOK := status == "" || status == "all" || item.Status == status
					urgencyOK := urgency == "" || urgency == "all" || item.Urgency == urgency
					s := strings.ToLower(search)
					textOK := strings.Contains(strings.ToLower(item.Name), s) ||
						strings.Contains(strings.ToLower(item.Email), s) ||
						strings.Contains(strings.ToLower(item.Subject), s) ||
						strings.Contains(strings.ToLower(item.Message), s)
					want := statusOK && urgencyOK && textOK
					assert.Equal(t, want, got[item.ID], "item=%d criteria=%+v", item.ID, c)
				}
			}
		}
	}
}

func TestContainsFoldKeepsWhitespace(t *testing.T) {
	names := []string{"Kim Lee", "Park"}
	got := Apply(names, func(name string) bool { return ContainsFold(" ", name) })
	assert.Equal(t, []string{"Kim Lee"}, got)
	assert.True(t, ContainsFold("", "Park"))
	assert.False(t, ContainsFold("park ", "Park"))
}

func TestPostsFilter(t *testing.T) {
	type post struct {
		Title     string
		Excerpt   string
		Tags      string
		Cat       string
		Slug      string
		Published bool
	}
	items := []post{
		{"Mobile forensics", "phones", "ios,android", "Digital Crime", "digital-crime", true},
		{"Press release", "launch", "news", "Press", "press", false},
		{"Course", "evidence handling", "training", "Training", "training", true},
	}
	view := func(p post) PostRecord {
		return PostRecord{Title: p.Title, Excerpt: p.Excerpt, Tags: p.Tags, CategoryName: p.Cat, CategorySlug: p.Slug, IsPublished: p.Published}
	}
	titles := func(in []post) []string {
		out := []string{}
		for _, p := range in {
			out = append(out, p.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Mobile forensics", "Course"}, titles(Posts(items, PostCriteria{Status: "published"}, view)))
	assert.Equal(t, []string{"Press release"}, titles(Posts(items, PostCriteria{Status: "draft"}, view)))
	assert.Equal(t, []string{"Mobile forensics"}, titles(Posts(items, PostCriteria{Search: "ANDROID"}, view)))
	assert.Equal(t, []string{"Course"}, titles(Posts(items, PostCriteria{Search: "evidence"}, view)))
	assert.Equal(t, []string{"Mobile forensics"}, titles(Posts(items, PostCriteria{Category: "Digital Crime"}, view)))
	assert.Equal(t, []string{"Press release"}, titles(Posts(items, PostCriteria{Category: "press", Status: "all"}, view)))
}

func TestCategoriesFilter(t *testing.T) {
	items := []CategoryRecord{
		{Name: "Press", Slug: "press", Description: "News coverage"},
		{Name: "Training", Slug: "training", Description: "Courses"},
		{Name: "Digital Crime", Slug: "digital-crime"},
	}
	got := Categories(items, CategoryCriteria{Search: "news"}, func(r CategoryRecord) CategoryRecord { return r })
	assert.Len(t, got, 1)
	assert.Equal(t, "press", got[0].Slug)

	got = Categories(items, CategoryCriteria{Search: "CRIME"}, func(r CategoryRecord) CategoryRecord { return r })
	assert.Len(t, got, 1)
	assert.Equal(t, "digital-crime", got[0].Slug)
}
