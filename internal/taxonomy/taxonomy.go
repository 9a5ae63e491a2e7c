// Package taxonomy 维护栏目选择到后端分类 ID 与前台 URL 的映射
//
// 映射表只有一份：默认值与种子数据一致，运行时可由后端分类列表重建，
// 服务端与管理客户端共用同一套解析逻辑。
package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yhdfc-next/internal/constants"
)

// ErrUnmapped 栏目选择无法映射到分类
var ErrUnmapped = errors.New("category selection is not mapped")

// Entry 映射表条目
type Entry struct {
	Category    string `json:"category"`              // 顶级栏目（digital-forensic/press/training）
	Subcategory string `json:"subcategory,omitempty"` // 子栏目，仅 digital-forensic 使用
	ID          uint   `json:"id"`                    // 后端分类 ID
	Slug        string `json:"slug"`                  // 后端分类 slug
}

// Source 可用于构建映射表的分类记录
type Source struct {
	ID         uint
	Slug       string
	ParentSlug string
}

// Table 栏目映射表
type Table struct {
	entries []Entry
	byKey   map[string]Entry
	bySlug  map[string]Entry
}

// DefaultEntries 与种子分类一致的默认映射
func DefaultEntries() []Entry {
	return []Entry{
		{Category: constants.CategoryDigitalForensic, Subcategory: constants.SubcategoryGeneralForensics, ID: 2, Slug: constants.SubcategoryGeneralForensics},
		{Category: constants.CategoryDigitalForensic, Subcategory: constants.SubcategoryEvidenceForensics, ID: 3, Slug: constants.SubcategoryEvidenceForensics},
		{Category: constants.CategoryDigitalForensic, Subcategory: constants.SubcategoryDigitalCrime, ID: 4, Slug: constants.SubcategoryDigitalCrime},
		{Category: constants.CategoryPress, ID: 5, Slug: constants.CategoryPress},
		{Category: constants.CategoryTraining, ID: 6, Slug: constants.CategoryTraining},
	}
}

// Default 默认映射表
func Default() *Table {
	return New(DefaultEntries())
}

// New 由条目构建映射表，重复键以后出现者为准
func New(entries []Entry) *Table {
	t := &Table{
		byKey:  make(map[string]Entry, len(entries)),
		bySlug: make(map[string]Entry, len(entries)),
	}
	for _, entry := range entries {
		entry.Category = normalize(entry.Category)
		entry.Subcategory = normalize(entry.Subcategory)
		entry.Slug = normalize(entry.Slug)
		if entry.Category == "" || entry.ID == 0 {
			continue
		}
		if entry.Category != constants.CategoryDigitalForensic {
			entry.Subcategory = ""
		}
		key := entryKey(entry.Category, entry.Subcategory)
		if _, exists := t.byKey[key]; !exists {
			t.entries = append(t.entries, entry)
		} else {
			for i := range t.entries {
				if entryKey(t.entries[i].Category, t.entries[i].Subcategory) == key {
					t.entries[i] = entry
				}
			}
		}
		t.byKey[key] = entry
		if entry.Slug != "" {
			t.bySlug[entry.Slug] = entry
		}
	}
	return t
}

// FromCategories 由后端分类列表构建映射表
//
// 父级为 digital-forensic 的分类成为其子栏目，press/training 直接映射，
// 其它分类不参与栏目选择。
func FromCategories(sources []Source) *Table {
	entries := make([]Entry, 0, len(sources))
	for _, src := range sources {
		slug := normalize(src.Slug)
		parent := normalize(src.ParentSlug)
		switch {
		case parent == constants.CategoryDigitalForensic:
			entries = append(entries, Entry{Category: parent, Subcategory: slug, ID: src.ID, Slug: slug})
		case parent == "" && (slug == constants.CategoryPress || slug == constants.CategoryTraining):
			entries = append(entries, Entry{Category: slug, ID: src.ID, Slug: slug})
		}
	}
	return New(entries)
}

// Entries 返回条目副本
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Lookup 查找分类 ID，未映射时 ok=false
func (t *Table) Lookup(category, subcategory string) (uint, bool) {
	entry, ok := t.find(category, subcategory)
	if !ok {
		return 0, false
	}
	return entry.ID, true
}

// Resolve 解析栏目选择，未映射时返回 ErrUnmapped
func (t *Table) Resolve(category, subcategory string) (uint, error) {
	entry, ok := t.find(category, subcategory)
	if !ok {
		if normalize(subcategory) != "" {
			return 0, fmt.Errorf("%w: %s/%s", ErrUnmapped, normalize(category), normalize(subcategory))
		}
		return 0, fmt.Errorf("%w: %s", ErrUnmapped, normalize(category))
	}
	return entry.ID, nil
}

// EntryBySlug 按后端分类 slug 查找条目
func (t *Table) EntryBySlug(categorySlug string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	entry, ok := t.bySlug[normalize(categorySlug)]
	return entry, ok
}

// EntryByID 按分类 ID 查找条目
func (t *Table) EntryByID(id uint) (Entry, bool) {
	if t == nil || id == 0 {
		return Entry{}, false
	}
	for _, entry := range t.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// Subcategories 某顶级栏目下的子栏目
func (t *Table) Subcategories(category string) []string {
	if t == nil {
		return nil
	}
	category = normalize(category)
	var out []string
	for _, entry := range t.entries {
		if entry.Category == category && entry.Subcategory != "" {
			out = append(out, entry.Subcategory)
		}
	}
	return out
}

// PostURL 生成文章前台地址，未识别的栏目回退到 /posts/<slug>
func (t *Table) PostURL(category, subcategory, slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = constants.SlugPlaceholder
	}
	category = canonical(category)
	subcategory = normalize(subcategory)
	switch category {
	case constants.CategoryDigitalForensic:
		if subcategory != "" {
			if _, ok := t.find(constants.CategoryDigitalForensic, subcategory); ok {
				return "/" + constants.CategoryDigitalForensic + "/" + subcategory + "/" + slug
			}
		}
	case constants.CategoryPress, constants.CategoryTraining:
		return "/" + category + "/" + slug
	}
	return "/posts/" + slug
}

// URLForCategorySlug 根据文章已存储的分类 slug 生成前台地址
func (t *Table) URLForCategorySlug(categorySlug, slug string) string {
	entry, ok := t.EntryBySlug(categorySlug)
	if !ok {
		return t.PostURL("", "", slug)
	}
	return t.PostURL(entry.Category, entry.Subcategory, slug)
}

func (t *Table) find(category, subcategory string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	category = canonical(category)
	subcategory = normalize(subcategory)
	if category != constants.CategoryDigitalForensic {
		subcategory = ""
	} else if subcategory == "" {
		return Entry{}, false
	}
	entry, ok := t.byKey[entryKey(category, subcategory)]
	return entry, ok
}

func entryKey(category, subcategory string) string {
	return category + "/" + subcategory
}

// canonical 归一化顶级栏目，blog 视为 digital-forensic 的别名
func canonical(category string) string {
	category = normalize(category)
	if category == constants.CategoryBlogAlias {
		return constants.CategoryDigitalForensic
	}
	return category
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
