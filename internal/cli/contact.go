package cli

import (
	"fmt"

	"github.com/yhdfc-next/internal/client"

	"github.com/spf13/cobra"
)

func newContactCommand(a *app) *cobra.Command {
	form := client.NewContactForm()
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "以访客身份提交联系表单",
		RunE: func(cmd *cobra.Command, args []string) error {
			inquiry, err := form.Submit(cmd.Context(), a.client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", okStyle.Render("inquiry submitted"), inquiry.ID)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.Name, "name", "", "姓名")
	flags.StringVar(&form.Email, "email", "", "邮箱")
	flags.StringVar(&form.CountryCode, "country-code", form.CountryCode, "国际区号")
	flags.StringVar(&form.Phone, "phone", "", "电话")
	flags.StringVar(&form.Company, "company", "", "公司")
	flags.StringVar(&form.Subject, "subject", "", "主题")
	flags.StringVar(&form.Message, "message", "", "内容")
	flags.StringVar(&form.ServiceType, "service", "", "服务类型")
	flags.StringVar(&form.UrgencyLevel, "urgency", form.UrgencyLevel, "low/normal/high/urgent")
	for _, name := range []string{"name", "email", "subject", "message"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
