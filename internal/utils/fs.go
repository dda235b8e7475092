package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DirStatus reports what CheckDir found out about a directory.
type DirStatus struct {
	Exists   bool
	Writable bool
	Err      error
}

// FileExists reports whether a file is present at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates the directory if it doesn't exist yet.
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// CheckDir makes sure a directory exists, creating it when needed, and
// probes whether it can be written to.
func CheckDir(dirPath string) DirStatus {
	status := DirStatus{}
	if _, err := os.Stat(dirPath); err != nil {
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			status.Err = err
			log.Warnf("Cannot create directory %s: %v", dirPath, err)
			return status
		}
	}
	status.Exists = true
	status.Writable = probeWriteAccess(dirPath)
	return status
}

// probeWriteAccess creates and removes a throwaway file to test access.
func probeWriteAccess(dirPath string) bool {
	probe := filepath.Join(dirPath, ".write_test")
	file, err := os.Create(probe)
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dirPath, err)
		return false
	}
	file.Close()
	os.Remove(probe)
	return true
}

// ExecutableDir returns the directory holding the running binary, the last
// fallback for placing the settings file.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// AbsolutePath resolves path for display, leaving it alone when resolution
// fails.
func AbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}
