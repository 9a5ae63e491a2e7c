package cli

import (
	"fmt"
	"strings"

	"github.com/yhdfc-next/internal/client"

	"github.com/spf13/cobra"
)

func newSlugCommand(a *app) *cobra.Command {
	var category, subcategory string
	cmd := &cobra.Command{
		Use:   "slug <title...>",
		Short: "预览标题生成的 slug 与文章地址（离线）",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := client.NewPostDraft(nil)
			draft.SetTitle(strings.Join(args, " "))
			draft.Category, draft.Subcategory = category, subcategory
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, draft.Slug())
			if category != "" {
				if _, err := draft.CategoryID(); err != nil {
					return err
				}
				fmt.Fprintln(out, draft.PreviewURL())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "顶级栏目")
	cmd.Flags().StringVar(&subcategory, "subcategory", "", "子栏目")
	return cmd
}
