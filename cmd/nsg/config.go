package nsg

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vishva1703/Nanosingapore-sub000/internal/auth"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write local settings",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a local setting",
	Long:  "Stores a setting in the local store. `api_base_url` overrides the backend base URL for every command.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			if err := auth.NewStore(sqldb).SetConfig(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a local setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(sqldb *sql.DB) error {
			value, ok, err := auth.NewStore(sqldb).GetConfig(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("config %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		})
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configGetCmd)
	rootCmd.AddCommand(configCmd)
}
