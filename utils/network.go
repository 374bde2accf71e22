package utils

import (
	"path/filepath"
	"strings"
)

// IsNetworkDrive detects if a file path is on a network-mounted drive.
// Parallel workers hammering a network share tend to be slower than a single
// worker, so callers clamp concurrency when this reports true.
func IsNetworkDrive(filePath string) bool {
	// Windows UNC paths, checked before resolving to an absolute path.
	if strings.HasPrefix(filePath, "//") || strings.HasPrefix(filePath, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return false
	}

	// Common network mount points across platforms.
	for _, prefix := range []string{"/mnt/", "/media/", "/Volumes/"} {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	// Network filesystem names appearing anywhere in the path.
	lowerPath := strings.ToLower(absPath)
	for _, indicator := range []string{"nfs", "cifs", "smb", "webdav", "sftp"} {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}

	return false
}
