// Package slug 提供 URL 安全标识的生成
package slug

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify 从任意标题生成 URL 安全标识
//
// 小写化后仅保留 ASCII 字母、数字、下划线、空白与连字符，
// 空白/下划线/连字符的连续片段折叠为单个 "-"，并去掉首尾 "-"。
// 结果满足 Slugify(Slugify(x)) == Slugify(x)。
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case isASCIIAlnum(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '_' || r == '-' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// Valid 判断是否已是规范标识
func Valid(s string) bool {
	return s != "" && Slugify(s) == s
}

// Unique 在 base 已被占用时追加数字后缀
func Unique(base string, exists func(candidate string) (bool, error)) (string, error) {
	candidate := base
	for i := 2; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(i)
	}
}

// Editor 跟踪表单中 slug 是否被手动覆盖
// 未覆盖时，每次修改标题都会重新生成 slug
type Editor struct {
	title      string
	slug       string
	overridden bool
}

// SetTitle 更新标题
func (e *Editor) SetTitle(title string) {
	e.title = title
	if !e.overridden {
		e.slug = Slugify(title)
	}
}

// SetSlug 手动设置 slug，空值恢复自动生成
func (e *Editor) SetSlug(value string) {
	if strings.TrimSpace(value) == "" {
		e.overridden = false
		e.slug = Slugify(e.title)
		return
	}
	e.overridden = true
	e.slug = value
}

// Title 当前标题
func (e *Editor) Title() string { return e.title }

// Slug 当前 slug
func (e *Editor) Slug() string { return e.slug }

// Overridden 是否手动覆盖
func (e *Editor) Overridden() bool { return e.overridden }
