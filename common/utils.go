// Package common provides shared constants, types, and utilities
// used across the Pxls Desktop application.
package common

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the path to the application configuration directory.
// It creates the directory if it doesn't exist.
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", WrapError(err, "failed to get config directory")
	}

	configDir = filepath.Join(configDir, ConfigDirName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", WrapError(err, "failed to create config directory")
	}

	return configDir, nil
}

// GetAppDir returns the directory holding the running executable.
func GetAppDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", WrapError(err, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Dir(execPath), nil
}

// URLFileCandidates lists the places pxls-url.txt is looked up, in order.
// Directories that cannot be determined are skipped.
func URLFileCandidates() []string {
	var paths []string
	if dir, err := GetConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, URLFileName))
	}
	if dir, err := GetAppDir(); err == nil {
		paths = append(paths, filepath.Join(dir, URLFileName))
	}
	return paths
}

// GetUserextsDir returns the user extensions folder path. It does not create it.
func GetUserextsDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, UserextsDirName), nil
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir ensures a directory exists, creating it if necessary.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
