// Package filesys provides a small set of file system utility functions
// shared by the engine's segment directory management and the
// engine-selection config file: creating directories, checking existence,
// enumerating files by glob pattern, and reading/writing/deleting files.
package filesys

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	// Get file information for the given path.
	stat, err := os.Stat(dirPath)
	// If 'force' is false and the path exists
	// return the error (indicating the directory already exists).
	if !force && !os.IsNotExist(err) {
		if err == nil {
			return &os.PathError{Op: "mkdir", Path: dirPath, Err: os.ErrExist}
		}
		return err
	}

	// If the path exists and it's not a directory, return an error.
	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}

	// Create all necessary parent directories if they don't exist, with the specified permissions.
	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	// Apply the requested permissions exactly, independent of the umask.
	return os.Chmod(dirPath, permission)
}

// ReadDir reads the directory specified by `dirName` and returns a list of matching file paths.
// It uses `filepath.Glob` which means `dirName` can contain glob patterns (e.g., "mydir/*.log").
func ReadDir(dirName string) ([]string, error) {
	files, err := filepath.Glob(dirName)
	return files, err
}

// WriteFile writes the provided `contents` to the file at `filePath` with the given `permission`.
// If the file does not exist, it will be created. If it exists, it will be truncated.
func WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(filePath, contents, permission)
}

// DeleteFile deletes the file at the specified `filePath`.
// It returns an error if the file cannot be removed.
func DeleteFile(filePath string) error {
	return os.Remove(filePath)
}

// ReadFile reads the entire content of the file at `filePath` into a byte slice.
// It returns the file content and any error encountered.
func ReadFile(filePath string) ([]byte, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return contents, err
}

// Exists checks if a file or directory at the given `file` path exists.
// It returns true if the file/directory exists, false if it does not,
// and an error if there's any other issue checking its status.
func Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil // Path exists.
	}
	// If the error indicates that the file does not exist, return false.
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
