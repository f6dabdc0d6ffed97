package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName = "nsg"
	dbFileName = "nsg.db"
)

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

// EnsureDBDir creates the store's directory. The store holds the session
// token, so the directory is private to the user.
func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}
