package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/campusboard/pkg/commands/options"
	"tableflip.dev/campusboard/pkg/notice"
	"tableflip.dev/campusboard/pkg/runner/session"
)

func addRegister(topLevel *cobra.Command) {
	var (
		u    notice.User
		role string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Example: `
campusboard register --name "Jane Doe" --username jane --password secret --role student --dept cs
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r, ok := notice.ParseRole(role)
			if !ok {
				return output.HandleError(fmt.Errorf("unknown role %q", role))
			}
			u.Role = r
			return runSession(cmd, session.Register, u)
		},
	}

	cmd.Flags().StringVar(&u.Name, "name", "", "Full name.")
	cmd.Flags().StringVar(&u.Username, "username", "", "Login name, case-sensitive.")
	cmd.Flags().StringVar(&u.Password, "password", "", "Password.")
	cmd.Flags().StringVar(&u.Department, "dept", "", "Department id.")
	cmd.Flags().StringVar(&role, "role", string(notice.RoleStudent), "One of student, faculty, admin.")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command) {
	var (
		u    notice.User
		role string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in; username, password and role must all match",
		Example: `
campusboard login --username admin --password password --role admin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			r, ok := notice.ParseRole(role)
			if !ok {
				return output.HandleError(fmt.Errorf("unknown role %q", role))
			}
			u.Role = r
			return runSession(cmd, session.Login, u)
		},
	}

	cmd.Flags().StringVar(&u.Username, "username", "", "Login name.")
	cmd.Flags().StringVar(&u.Password, "password", "", "Password.")
	cmd.Flags().StringVar(&role, "role", string(notice.RoleStudent), "One of student, faculty, admin.")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSession(cmd, session.Logout, notice.User{})
		},
	}
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSession(cmd, session.Whoami, notice.User{})
		},
	}
	topLevel.AddCommand(cmd)
}

func runSession(cmd *cobra.Command, action session.Action, u notice.User) error {
	env, err := openBoard(cmd.Context(), false)
	if err != nil {
		return output.HandleError(err)
	}
	defer env.Close()

	s := session.Session{
		Action: action,
		User:   u,
		Board:  env.Board,
		Out:    cmd.OutOrStdout(),
	}
	return output.HandleError(s.Do(cmd.Context()))
}
