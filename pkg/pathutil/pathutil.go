// Package pathutil provides utilities for safe path handling and validation.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath validates that a path is safe to use for file operations.
// It rejects directory traversal attempts and, when base directories are
// given, requires the path to resolve inside one of them.
func ValidatePath(path string, allowedBaseDirs ...string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("path contains directory traversal pattern: %s", path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("getting absolute path: %w", err)
	}

	if len(allowedBaseDirs) == 0 {
		return absPath, nil
	}

	for _, baseDir := range allowedBaseDirs {
		absBase, err := filepath.Abs(baseDir)
		if err != nil {
			continue
		}
		if absPath == absBase || strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("path %s is outside allowed directories", path)
}

// JoinAndValidate joins path elements onto a base directory and validates
// that the result stays inside it.
func JoinAndValidate(baseDir string, elems ...string) (string, error) {
	joined := filepath.Join(append([]string{baseDir}, elems...)...)
	return ValidatePath(joined, baseDir)
}
