package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const envPassword = "YHCTL_PASSWORD"

func newLoginCommand(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "登录管理后台并保存会话",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(envPassword)
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return errors.New("username and password are required (--password or " + envPassword + ")")
			}
			result, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (expires %s)\n",
				okStyle.Render("logged in as"), result.Admin.Username, result.ExpiresAt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "用户名")
	cmd.Flags().StringVarP(&password, "password", "p", "", "密码")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "注销并清除本地会话",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("logged out"))
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "显示当前管理员",
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s <%s>\n", headerStyle.Render(me.Admin.Username), me.Admin.FullName, me.Admin.Email)
			if me.Admin.IsSuper {
				fmt.Fprintln(out, mutedStyle.Render("super admin"))
			} else if len(me.Roles) > 0 {
				fmt.Fprintln(out, mutedStyle.Render("roles: "+strings.Join(me.Roles, ", ")))
			}
			return nil
		},
	}
}
