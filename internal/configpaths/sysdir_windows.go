//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine-wide configuration directory under
// %ProgramData%, falling back to the per-user directory.
func SystemConfigDir() (string, error) {
	if pd := os.Getenv("ProgramData"); pd != "" {
		return filepath.Join(pd, appDir), nil
	}
	return DefaultConfigDir()
}
