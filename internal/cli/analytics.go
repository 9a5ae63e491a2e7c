package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAnalyticsCommand(a *app) *cobra.Command {
	var recentLimit int
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "访问统计概览",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := a.client.Analytics(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			s := snapshot.Stats
			fmt.Fprintln(out, headerStyle.Render("visits"))
			fmt.Fprintf(out, "total %d  unique %d  today %d  week %d  month %d\n\n",
				s.TotalVisits, s.UniqueVisitors, s.VisitsToday, s.VisitsThisWeek, s.VisitsThisMonth)

			countries := &table{headers: []string{"COUNTRY", "CODE", "VISITS"}}
			for _, c := range snapshot.Countries {
				countries.add(c.CountryName, c.CountryCode, strconv.FormatInt(c.VisitCount, 10))
			}
			countries.render(out)
			fmt.Fprintln(out)

			recent := &table{headers: []string{"TIME", "IP", "COUNTRY", "PATH"}}
			for i, v := range snapshot.Recent {
				if recentLimit > 0 && i >= recentLimit {
					break
				}
				recent.add(v.CreatedAt.Local().Format("01-02 15:04:05"), v.IPMasked, v.CountryCode, truncate(v.PagePath, 48))
			}
			recent.render(out)
			return nil
		},
	}
	cmd.Flags().IntVar(&recentLimit, "recent", 10, "显示的最近访问条数")
	return cmd
}
