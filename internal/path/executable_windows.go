//go:build windows

package path

import (
	"os"
	"path/filepath"
	"strings"
)

var executableExts = map[string]bool{
	".exe": true,
	".bat": true,
	".cmd": true,
	".com": true,
}

// IsExecutable reports whether path is a file with an executable extension.
func IsExecutable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return executableExts[strings.ToLower(filepath.Ext(path))]
}
