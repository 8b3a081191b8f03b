//go:build !windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns the machine-wide configuration directory.
// On Unix this is /etc/ds4wire.
func SystemConfigDir() (string, error) {
	return filepath.Join(string(os.PathSeparator), "etc", appDir), nil
}
