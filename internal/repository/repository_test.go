package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yhdfc-next/internal/constants"
	"github.com/yhdfc-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Category{}, &models.Post{}, &models.Inquiry{}, &models.Visit{}, &models.Setting{}); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func TestPostRepositoryListFilters(t *testing.T) {
	db := setupRepositoryTest(t)
	press := createCategory(t, db, "Press", "press")
	training := createCategory(t, db, "Training", "training")
	repo := NewPostRepository(db)

	base := time.Now().Add(-time.Hour)
	posts := []models.Post{
		{Title: "Mobile Forensics", Slug: "mobile", Content: "x", CategoryID: press.ID, IsPublished: true, CreatedAt: base},
		{Title: "Draft note", Slug: "draft", Content: "x", CategoryID: press.ID, IsPublished: false, CreatedAt: base.Add(time.Minute)},
		{Title: "Course", Slug: "course", Content: "evidence 50% off", CategoryID: training.ID, IsPublished: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range posts {
		if err := repo.Create(&posts[i]); err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	rows, total, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyPublished: true, WithCategory: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("published want 2 got total=%d len=%d", total, len(rows))
	}
	if rows[0].Slug != "course" {
		t.Fatalf("newest first expected, got %s", rows[0].Slug)
	}
	if rows[0].Category == nil || rows[0].Category.Slug != "training" {
		t.Fatalf("category should be preloaded")
	}

	_, total, _ = repo.List(PostListFilter{Status: constants.PostStatusDraft})
	if total != 1 {
		t.Fatalf("draft want 1 got %d", total)
	}
	_, total, _ = repo.List(PostListFilter{CategoryIDs: []uint{press.ID}})
	if total != 2 {
		t.Fatalf("press want 2 got %d", total)
	}
	_, total, _ = repo.List(PostListFilter{Search: "FORENSICS"})
	if total != 1 {
		t.Fatalf("case insensitive search want 1 got %d", total)
	}
	_, total, _ = repo.List(PostListFilter{Search: "50%"})
	if total != 1 {
		t.Fatalf("escaped wildcard search want 1 got %d", total)
	}

	page2, total, _ := repo.List(PostListFilter{Page: 2, PageSize: 2})
	if total != 3 || len(page2) != 1 {
		t.Fatalf("pagination unexpected total=%d len=%d", total, len(page2))
	}
}

func TestPostRepositorySlugAndViews(t *testing.T) {
	db := setupRepositoryTest(t)
	category := createCategory(t, db, "Press", "press")
	repo := NewPostRepository(db)
	post := &models.Post{Title: "A", Slug: "a", Content: "x", CategoryID: category.ID, IsPublished: true}
	if err := repo.Create(post); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	count, _ := repo.CountBySlug("a", nil)
	if count != 1 {
		t.Fatalf("slug count want 1 got %d", count)
	}
	count, _ = repo.CountBySlug("a", &post.ID)
	if count != 0 {
		t.Fatalf("slug count excluding self want 0 got %d", count)
	}

	if err := repo.IncrementViewCount(post.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	got, err := repo.GetBySlug("a", true)
	if err != nil || got == nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got.ViewCount != 1 {
		t.Fatalf("view count want 1 got %d", got.ViewCount)
	}
	missing, err := repo.GetBySlug("missing", true)
	if err != nil || missing != nil {
		t.Fatalf("missing slug should be nil,nil got %v,%v", missing, err)
	}
}

func TestCategoryRepositoryLookups(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCategoryRepository(db)
	crime := createCategory(t, db, "Digital Crime", "digital-crime")

	found, err := repo.FindBySlugOrName("digital crime")
	if err != nil || found == nil || found.ID != crime.ID {
		t.Fatalf("find by name failed: %v %v", found, err)
	}
	found, _ = repo.FindBySlugOrName("DIGITAL-CRIME")
	if found == nil {
		t.Fatalf("find by slug should be case insensitive")
	}
	count, _ := repo.CountByName("DIGITAL CRIME", nil)
	if count != 1 {
		t.Fatalf("name count want 1 got %d", count)
	}
	count, _ = repo.CountByName("digital crime", &crime.ID)
	if count != 0 {
		t.Fatalf("name count excluding self want 0 got %d", count)
	}
}

func TestInquiryRepositoryMarkReadIfNew(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewInquiryRepository(db)
	inquiry := &models.Inquiry{Name: "Kim", Email: "kim@example.com", Subject: "S", Message: "M"}
	if err := repo.Create(inquiry); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inquiry.Status != constants.InquiryStatusNew || inquiry.UrgencyLevel != constants.UrgencyNormal {
		t.Fatalf("defaults not applied: %+v", inquiry)
	}

	changed, err := repo.MarkReadIfNew(inquiry.ID, time.Now())
	if err != nil || !changed {
		t.Fatalf("first mark read should change, changed=%v err=%v", changed, err)
	}
	changed, err = repo.MarkReadIfNew(inquiry.ID, time.Now())
	if err != nil || changed {
		t.Fatalf("second mark read should be noop, changed=%v err=%v", changed, err)
	}
	got, _ := repo.GetByID(inquiry.ID)
	if got.Status != constants.InquiryStatusRead || !got.IsRead {
		t.Fatalf("unexpected state: %+v", got)
	}

	existed, err := repo.Delete(inquiry.ID)
	if err != nil || !existed {
		t.Fatalf("delete should report existing row")
	}
	existed, _ = repo.Delete(inquiry.ID)
	if existed {
		t.Fatalf("second delete should report missing row")
	}
}

func TestInquiryRepositoryListAndStats(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewInquiryRepository(db)
	yesterday := time.Now().Add(-30 * time.Hour)
	items := []models.Inquiry{
		{Name: "Kim", Email: "kim@example.com", Subject: "Phone recovery", Message: "m", UrgencyLevel: "urgent", CreatedAt: yesterday},
		{Name: "Lee", Email: "lee@corp.kr", Subject: "Audit", Message: "m", Status: "read", IsRead: true},
		{Name: "Park", Email: "park@example.com", Subject: "Recovery", Message: "m", UrgencyLevel: "high"},
	}
	for i := range items {
		if err := repo.Create(&items[i]); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	unread := false
	rows, total, err := repo.List(InquiryListFilter{IsRead: &unread})
	if err != nil || total != 2 || len(rows) != 2 {
		t.Fatalf("unread list want 2 got %d err=%v", total, err)
	}
	_, total, _ = repo.List(InquiryListFilter{Search: "recovery", Urgency: "all"})
	if total != 2 {
		t.Fatalf("search want 2 got %d", total)
	}
	_, total, _ = repo.List(InquiryListFilter{Search: "recovery", Urgency: "high"})
	if total != 1 {
		t.Fatalf("search+urgency want 1 got %d", total)
	}
	_, total, _ = repo.List(InquiryListFilter{Status: "read"})
	if total != 1 {
		t.Fatalf("status want 1 got %d", total)
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := repo.Stats(dayStart)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 3 || stats.Unread != 2 || stats.Today != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestVisitRepositoryAggregates(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewVisitRepository(db)
	now := time.Now()
	visits := []models.Visit{
		{PagePath: "/", IPMasked: "1.2.xxx.xxx", Country: "South Korea", CountryCode: "KR", CreatedAt: now},
		{PagePath: "/press", IPMasked: "1.2.xxx.xxx", Country: "South Korea", CountryCode: "KR", CreatedAt: now},
		{PagePath: "/", IPMasked: "8.8.xxx.xxx", Country: "United States", CountryCode: "US", CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{PagePath: "/", IPMasked: "9.9.xxx.xxx", CreatedAt: now},
	}
	for i := range visits {
		if err := repo.Create(&visits[i]); err != nil {
			t.Fatalf("create visit failed: %v", err)
		}
	}

	stats, err := repo.Stats(VisitWindow{
		DayStart:   now.Add(-time.Hour),
		WeekStart:  now.Add(-7 * 24 * time.Hour),
		MonthStart: now.Add(-30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalVisits != 4 || stats.UniqueVisitors != 3 || stats.VisitsToday != 3 || stats.VisitsThisMonth != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	countries, err := repo.TopCountries(20)
	if err != nil {
		t.Fatalf("top countries failed: %v", err)
	}
	if len(countries) != 2 || countries[0].Country != "South Korea" || countries[0].Visits != 2 || countries[0].CountryCode != "KR" {
		t.Fatalf("unexpected countries: %+v", countries)
	}

	recent, err := repo.Recent(2)
	if err != nil || len(recent) != 2 {
		t.Fatalf("recent want 2 got %d err=%v", len(recent), err)
	}

	if err := repo.UpdateGeo(visits[3].ID, "Japan", "JP", "Tokyo"); err != nil {
		t.Fatalf("update geo failed: %v", err)
	}
	countries, _ = repo.TopCountries(20)
	if len(countries) != 3 {
		t.Fatalf("geo update should add a country: %+v", countries)
	}
}

func TestDashboardRepositoryOverview(t *testing.T) {
	db := setupRepositoryTest(t)
	category := createCategory(t, db, "Press", "press")
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	posts := []models.Post{
		{Title: "a", Slug: "a", Content: "x", CategoryID: category.ID, IsPublished: true, ViewCount: 10, CreatedAt: monthStart.Add(time.Hour)},
		{Title: "b", Slug: "b", Content: "x", CategoryID: category.ID, ViewCount: 5, CreatedAt: lastMonthStart.Add(time.Hour)},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}
	if err := db.Create(&models.Inquiry{Name: "n", Email: "e@x.com", Subject: "s", Message: "m", CreatedAt: monthStart.Add(time.Hour)}).Error; err != nil {
		t.Fatalf("create inquiry failed: %v", err)
	}

	repo := NewDashboardRepository(db)
	row, err := repo.GetOverview(DashboardWindow{
		MonthStart:     monthStart,
		LastMonthStart: lastMonthStart,
		WeekStart:      now.AddDate(0, 0, -7),
		LastWeekStart:  now.AddDate(0, 0, -14),
	})
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if row.TotalPosts != 2 || row.PublishedPosts != 1 || row.PostsThisMonth != 1 || row.PostsLastMonth != 1 {
		t.Fatalf("unexpected post counts: %+v", row)
	}
	if row.TotalInquiries != 1 || row.InquiriesThisMonth != 1 {
		t.Fatalf("unexpected inquiry counts: %+v", row)
	}
	if row.TotalViews != 15 {
		t.Fatalf("total views want 15 got %d", row.TotalViews)
	}
}

func TestInquiryRepositoryListPaging(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewInquiryRepository(db)

	rows, total, err := repo.List(InquiryListFilter{Page: 1, PageSize: 2})
	if err != nil || total != 0 || rows == nil || len(rows) != 0 {
		t.Fatalf("empty table: rows=%v total=%d err=%v", rows, total, err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		item := &models.Inquiry{
			Name: fmt.Sprintf("client-%d", i), Email: "c@example.com", Subject: "s", Message: "m",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("create inquiry failed: %v", err)
		}
	}

	rows, total, err = repo.List(InquiryListFilter{Page: 2, PageSize: 2})
	if err != nil || total != 5 || len(rows) != 2 {
		t.Fatalf("page 2: len=%d total=%d err=%v", len(rows), total, err)
	}
	if rows[0].Name != "client-3" || rows[1].Name != "client-2" {
		t.Fatalf("page 2 should continue newest-first order, got %s,%s", rows[0].Name, rows[1].Name)
	}

	rows, total, err = repo.List(InquiryListFilter{Page: 4, PageSize: 2})
	if err != nil || total != 5 || len(rows) != 0 {
		t.Fatalf("out of range page: len=%d total=%d err=%v", len(rows), total, err)
	}

	rows, _, err = repo.List(InquiryListFilter{Page: 0, PageSize: 0})
	if err != nil || len(rows) != 5 {
		t.Fatalf("unpaged list: len=%d err=%v", len(rows), err)
	}
}
