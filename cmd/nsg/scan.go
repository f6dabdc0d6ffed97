package nsg

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vishva1703/Nanosingapore-sub000/internal/api"
	"github.com/vishva1703/Nanosingapore-sub000/internal/model"
)

var scanDate string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Recognize food from photos",
}

var scanPhotoCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Recognize a food photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args[0], (*api.Client).ScanPhoto)
	},
}

var scanLabelCmd = &cobra.Command{
	Use:   "label <file>",
	Short: "Parse a nutrition label photo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args[0], (*api.Client).ScanLabel)
	},
}

func runScan(cmd *cobra.Command, path string, submit func(*api.Client, context.Context, io.Reader, string, string) (model.ScanResult, error)) error {
	date, err := parseDateFlag(scanDate)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	return withStore(func(sqldb *sql.DB) error {
		client := newClient(sqldb)
		result, err := submit(client, cmd.Context(), file, filepath.Base(path), date)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:     %s\n", result.Name)
		fmt.Fprintf(out, "Calories: %.0f Cal\n", result.Calories)
		fmt.Fprintf(out, "Protein:  %.0f g\n", result.ProteinG)
		fmt.Fprintf(out, "Carbs:    %.0f g\n", result.CarbsG)
		fmt.Fprintf(out, "Fats:     %.0f g\n", result.FatG)
		return nil
	})
}

func init() {
	for _, c := range []*cobra.Command{scanPhotoCmd, scanLabelCmd} {
		c.Flags().StringVar(&scanDate, "date", "", "Log date as YYYY-MM-DD (default: today)")
	}
	scanCmd.AddCommand(scanPhotoCmd, scanLabelCmd)
	rootCmd.AddCommand(scanCmd)
}
