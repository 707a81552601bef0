// Package filex resolves and prepares on-disk locations for console state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory that holds the console's state.
const AppDirName = "fleetdesk"

// StatePath returns the path of name inside the per-user fleetdesk directory
// (os.UserConfigDir()/fleetdesk/name). The directory is not created.
func StatePath(name string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, AppDirName, name), nil
}

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
