package nsg

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			if err := client.Login(cmd.Context(), authEmail, authPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged in.")
			return nil
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and store the session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			if err := client.SignUp(cmd.Context(), authEmail, authPassword); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created, logged in.")
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			client := newClient(sqldb)
			if err := client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
		c.MarkFlagRequired("email")
		c.MarkFlagRequired("password")
	}
	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd)
}
