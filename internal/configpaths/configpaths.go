// Package configpaths resolves where ds4wire looks for configuration files.
package configpaths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir   = "ds4wire"
	baseName = "ds4wire"
)

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, appDir), nil
}

// ConfigCandidatePaths returns JSON, YAML and TOML configuration candidates
// in priority order. An explicit userCfg is placed first in the list that
// matches its extension; files without a known extension are tried as JSON.
//
// The remaining candidates are ./ds4wire.<ext>, <user config dir>/config.<ext>
// and <system config dir>/config.<ext>.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userCfg)
		case ".toml":
			tomlPaths = append(tomlPaths, userCfg)
		default:
			jsonPaths = append(jsonPaths, userCfg)
		}
	}

	jsonPaths = append(jsonPaths, baseName+".json")
	yamlPaths = append(yamlPaths, baseName+".yaml", baseName+".yml")
	tomlPaths = append(tomlPaths, baseName+".toml")

	for _, resolve := range []func() (string, error){DefaultConfigDir, SystemConfigDir} {
		dir, err := resolve()
		if err != nil {
			continue
		}
		jsonPaths = append(jsonPaths, filepath.Join(dir, "config.json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "config.toml"))
	}
	return jsonPaths, yamlPaths, tomlPaths
}
