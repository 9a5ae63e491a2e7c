package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/yhdfc-next/internal/client"
	"github.com/yhdfc-next/internal/constants"

	"github.com/spf13/cobra"
)

// 详情操作先逐页加载全部咨询再按 ID 定位
const boardLoadLimit = 100

func newInquiriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inquiries",
		Aliases: []string{"inq"},
		Short:   "咨询管理",
	}
	cmd.AddCommand(
		newInquiriesListCommand(a),
		newInquiriesOpenCommand(a),
		newInquiriesStatusCommand(a),
		newInquiriesDeleteCommand(a),
	)
	return cmd
}

func newInquiriesListCommand(a *app) *cobra.Command {
	var opts client.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出咨询",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.client.InquiryStats(cmd.Context())
			if err != nil {
				return err
			}
			page, err := a.client.Inquiries(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("total %d, unread %d, today %d", stats.Total, stats.Unread, stats.Today)))
			t := &table{headers: []string{"ID", "STATUS", "URGENCY", "NAME", "EMAIL", "SUBJECT", "RECEIVED"}}
			for _, item := range page.Inquiries {
				t.add(
					strconv.FormatUint(uint64(item.ID), 10),
					statusStyle(item.Status).Render(item.Status),
					item.UrgencyLevel,
					truncate(item.Name, 20),
					item.Email,
					truncate(item.Subject, 36),
					item.CreatedAt.Local().Format("2006-01-02 15:04"),
				)
			}
			t.render(out)
			return nil
		},
	}
	bindListFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Status, "status", "", "new/read/responded/closed/all")
	cmd.Flags().StringVar(&opts.Urgency, "urgency", "", "low/normal/high/urgent/all")
	return cmd
}

func loadBoard(cmd *cobra.Command, a *app) (*client.InquiryBoard, error) {
	board := client.NewInquiryBoard(a.client)
	if err := board.LoadAll(cmd.Context(), client.ListOptions{Limit: boardLoadLimit}); err != nil {
		return nil, err
	}
	return board, nil
}

func newInquiriesOpenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open <id>",
		Short: "查看咨询详情（新咨询自动标记已读）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			board, err := loadBoard(cmd, a)
			if err != nil {
				return err
			}
			item, err := board.Open(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s #%d %s\n", headerStyle.Render(item.Subject), item.ID, statusStyle(item.Status).Render(item.Status))
			fmt.Fprintf(out, "from:    %s <%s>\n", item.Name, item.Email)
			if item.Phone != "" {
				fmt.Fprintf(out, "phone:   %s %s\n", item.CountryCode, item.Phone)
			}
			if item.Company != "" {
				fmt.Fprintf(out, "company: %s\n", item.Company)
			}
			if item.ServiceType != "" {
				fmt.Fprintf(out, "service: %s\n", item.ServiceType)
			}
			fmt.Fprintf(out, "urgency: %s\n\n%s\n", item.UrgencyLevel, item.Message)
			return nil
		},
	}
}

func newInquiriesStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "修改咨询状态",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !slices.Contains(constants.InquiryStatuses, args[1]) {
				return fmt.Errorf("invalid status: %s", args[1])
			}
			board, err := loadBoard(cmd, a)
			if err != nil {
				return err
			}
			if err := board.SetStatus(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "#%d -> %s\n", id, statusStyle(args[1]).Render(args[1]))
			return nil
		},
	}
}

func newInquiriesDeleteCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "删除咨询",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(cmd, fmt.Sprintf("delete inquiry #%d?", id), yes)
			if err != nil || !ok {
				return err
			}
			board, err := loadBoard(cmd, a)
			if err != nil {
				return err
			}
			if err := board.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", okStyle.Render("deleted"), id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "跳过确认")
	return cmd
}
