package service

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/yhdfc-next/internal/repository"
	"github.com/yhdfc-next/internal/taxonomy"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapPage struct {
	path       string
	changefreq string
	priority   string
}

var sitemapStaticPages = []sitemapPage{
	{"", "daily", "1.0"},
	{"/about", "monthly", "0.8"},
	{"/digital-forensic", "weekly", "0.9"},
	{"/digital-forensic/computer-forensics", "monthly", "0.8"},
	{"/digital-forensic/mobile-forensics", "monthly", "0.8"},
	{"/digital-forensic/cloud-forensics", "monthly", "0.8"},
	{"/digital-forensic/data-recovery", "monthly", "0.8"},
	{"/digital-forensic/expert-witness", "monthly", "0.8"},
	{"/press", "weekly", "0.7"},
	{"/training", "monthly", "0.7"},
	{"/blog", "daily", "0.8"},
	{"/contact", "monthly", "0.6"},
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapService 生成 sitemap.xml 与 robots.txt
type SitemapService struct {
	postRepo        repository.PostRepository
	categoryService *CategoryService
	baseURL         string
	now             func() time.Time
}

// NewSitemapService 创建站点地图服务
func NewSitemapService(postRepo repository.PostRepository, categoryService *CategoryService, baseURL string) *SitemapService {
	return &SitemapService{
		postRepo:        postRepo,
		categoryService: categoryService,
		baseURL:         strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		now:             time.Now,
	}
}

// SitemapXML 静态页面加全部已发布文章
func (s *SitemapService) SitemapXML() ([]byte, error) {
	posts, err := s.postRepo.ListPublishedForSitemap()
	if err != nil {
		return nil, err
	}
	table := taxonomy.Default()
	if s.categoryService != nil {
		if built, err := s.categoryService.Taxonomy(); err == nil {
			table = built
		}
	}

	lastmod := s.now().UTC().Format(time.RFC3339)
	set := sitemapURLSet{Xmlns: sitemapNamespace}
	for _, page := range sitemapStaticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + page.path,
			LastMod:    lastmod,
			ChangeFreq: page.changefreq,
			Priority:   page.priority,
		})
	}
	for _, post := range posts {
		categorySlug := ""
		if post.Category != nil {
			categorySlug = post.Category.Slug
		}
		updated := post.UpdatedAt
		if updated.IsZero() {
			updated = post.CreatedAt
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + table.URLForCategorySlug(categorySlug, post.Slug),
			LastMod:    updated.UTC().Format(time.RFC3339),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(&buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(set); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RobotsTXT 禁止抓取后台与接口
func (s *SitemapService) RobotsTXT() string {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("Disallow: /admin/\nDisallow: /api/\nDisallow: /_next/\nDisallow: /static/\n\n")
	for _, path := range []string{"/blog", "/digital-forensic", "/press", "/training", "/contact", "/about"} {
		b.WriteString("Allow: " + path + "\n")
	}
	b.WriteString("\nSitemap: " + s.baseURL + "/sitemap.xml\n\nCrawl-delay: 1\n")
	return b.String()
}
