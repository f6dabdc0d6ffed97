package nsg

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vishva1703/Nanosingapore-sub000/internal/api"
	"github.com/vishva1703/Nanosingapore-sub000/internal/app"
	"github.com/vishva1703/Nanosingapore-sub000/internal/auth"
	"github.com/vishva1703/Nanosingapore-sub000/internal/db"
)

func withStore(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if env := strings.TrimSpace(os.Getenv("NSG_DB")); env != "" {
		return env, nil
	}
	return app.DefaultDBPath()
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newClient wires the API client with the token store and the resolved base
// URL: flag, then NSG_API_BASE, then the stored config override, then the
// built-in default.
func newClient(sqldb *sql.DB) *api.Client {
	store := auth.NewStore(sqldb)
	base := strings.TrimSpace(apiBase)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("NSG_API_BASE"))
	}
	if base == "" {
		if stored, ok, err := store.GetConfig("api_base_url"); err == nil && ok {
			base = stored
		}
	}
	return &api.Client{
		BaseURL: base,
		Tokens:  store,
		Logger:  newLogger(),
	}
}

// warnDegraded tells the user the displayed data is a fallback, mirroring
// what the client already logged.
func warnDegraded(cmd *cobra.Command, env api.Envelope, what string) {
	if env.Success {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s unavailable (%s), showing fallback data\n", what, env.Err)
}

// parseMonthFlag parses YYYY-MM, defaulting to the current month.
func parseMonthFlag(value string) (int, time.Month, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month %q (expected YYYY-MM)", value)
	}
	return t.Year(), t.Month(), nil
}

// parseDateFlag parses YYYY-MM-DD, defaulting to today.
func parseDateFlag(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}
