package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yhdfc-next/internal/client"
	"github.com/yhdfc-next/internal/taxonomy"

	"github.com/spf13/cobra"
)

func newPostsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "文章管理",
	}
	cmd.AddCommand(newPostsListCommand(a), newPostsShowCommand(a), newPostsCreateCommand(a), newPostsDeleteCommand(a))
	return cmd
}

func newPostsListCommand(a *app) *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出文章（含草稿）",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.client.AdminPosts(cmd.Context(), opts)
			if err != nil {
				return err
			}
			t := &table{headers: []string{"ID", "TITLE", "SLUG", "CATEGORY", "STATE", "VIEWS"}}
			for _, post := range page.Posts {
				category := ""
				if post.Category != nil {
					category = post.Category.Slug
				}
				state := mutedStyle.Render("draft")
				if post.IsPublished {
					state = okStyle.Render("published")
				}
				t.add(strconv.FormatUint(uint64(post.ID), 10), truncate(post.Title, 40), post.Slug, category, state, strconv.FormatInt(post.ViewCount, 10))
			}
			t.render(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("page %d/%d, %d total", page.Page, page.TotalPages, page.Total)))
			return nil
		},
	}
	bindListFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Status, "status", "", "published/draft/all")
	cmd.Flags().StringVar(&opts.Category, "category", "", "分类 slug 或名称")
	return cmd
}

func newPostsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "在终端渲染文章",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			post, err := a.client.AdminPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			body, err := htmlToMarkdown(post.Content)
			if err != nil {
				return fmt.Errorf("convert content: %w", err)
			}
			doc := "# " + post.Title + "\n\n"
			if post.Excerpt != "" {
				doc += "> " + post.Excerpt + "\n\n"
			}
			doc += body
			rendered, err := renderMarkdown(doc, a.opts.style, 80)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			if post.Tags != "" {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("tags: "+post.Tags))
			}
			return nil
		},
	}
}

type postFlags struct {
	title, slug, contentFile, tags string
	category, subcategory          string
	excerpt, thumbnail             string
	publish                        bool
	source, externalURL            string
	clientName, trainingDate       string
}

func (f postFlags) draft(table *taxonomy.Table) (*client.PostDraft, error) {
	d := client.NewPostDraft(table)
	d.SetTitle(f.title)
	if f.slug != "" {
		d.SetSlug(f.slug)
	}
	d.Category, d.Subcategory = f.category, f.subcategory
	d.Excerpt, d.Thumbnail, d.Published = f.excerpt, f.thumbnail, f.publish
	d.Source, d.ExternalURL = f.source, f.externalURL
	d.ClientName, d.TrainingDay = f.clientName, f.trainingDate
	if f.tags != "" {
		d.Tags = strings.Split(f.tags, ",")
	}
	if f.contentFile != "" {
		content, err := os.ReadFile(f.contentFile)
		if err != nil {
			return nil, err
		}
		d.Content = string(content)
	}
	return d, nil
}

func newPostsCreateCommand(a *app) *cobra.Command {
	var f postFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "创建文章，栏目通过后端映射表解析",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 分类表取不到时退回内置映射
			table, _ := a.client.Taxonomy(cmd.Context())
			draft, err := f.draft(table)
			if err != nil {
				return err
			}
			post, err := draft.Save(cmd.Context(), a.client, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", okStyle.Render("created"), post.ID, draft.PreviewURL())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "标题")
	flags.StringVar(&f.slug, "slug", "", "自定义 slug，留空由标题生成")
	flags.StringVar(&f.category, "category", "", "digital-forensic/press/training")
	flags.StringVar(&f.subcategory, "subcategory", "", "digital-forensic 子栏目")
	flags.StringVar(&f.contentFile, "content-file", "", "正文 HTML 文件")
	flags.StringVar(&f.excerpt, "excerpt", "", "摘要")
	flags.StringVar(&f.tags, "tags", "", "逗号分隔标签")
	flags.StringVar(&f.thumbnail, "thumbnail", "", "缩略图 URL")
	flags.BoolVar(&f.publish, "publish", false, "立即发布")
	flags.StringVar(&f.source, "source", "", "媒体来源（press）")
	flags.StringVar(&f.externalURL, "external-url", "", "外部链接（press）")
	flags.StringVar(&f.clientName, "client-name", "", "培训客户（training）")
	flags.StringVar(&f.trainingDate, "training-date", "", "培训日期 2006-01-02（training）")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newPostsDeleteCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除文章（不可恢复）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, fmt.Sprintf("delete post #%d? this cannot be undone", id), yes)
			if err != nil || !ok {
				return err
			}
			if err := a.client.DeletePost(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", okStyle.Render("deleted"), id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "跳过确认")
	return cmd
}

// confirm 从标准输入读取 y/yes 确认，其余输入（含 EOF）视为放弃
func confirm(cmd *cobra.Command, prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	fmt.Fprintln(out, mutedStyle.Render("aborted"))
	return false, nil
}

func bindListFlags(cmd *cobra.Command, opts *client.ListOptions) {
	cmd.Flags().IntVar(&opts.Page, "page", 1, "页码")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "每页数量（最大 100）")
	cmd.Flags().StringVar(&opts.Search, "search", "", "关键字")
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id: %s", raw)
	}
	return uint(id), nil
}
