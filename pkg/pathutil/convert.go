// Package pathutil provides utilities for converting between absolute and
// relative paths.
//
// scour uses absolute paths while walking for consistency, but user-facing
// output uses root-relative paths for readability and portability. This
// package is the conversion layer between the two representations.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or the path is already
// relative.
//
// Examples:
//   - ToRelative("/home/user/project/src/main.go", "/home/user/project") → "src/main.go"
//   - ToRelative("/other/location/file.go", "/home/user/project") → "/other/location/file.go" (outside root)
//   - ToRelative("src/main.go", "/home/user/project") → "src/main.go" (already relative)
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}

	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		// Conversion failed (e.g., different drives on Windows)
		return absPath
	}

	// A ".." prefix means the file is outside the root; the absolute path
	// is clearer in that case
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}

	return relPath
}

// DisplayPath returns the path of a walked file the way it should appear in
// results: relative to the scan root when possible, otherwise relative to
// the working directory, always slash-separated with no "./" prefix.
func DisplayPath(path, root string) string {
	rel := ToRelative(path, root)
	if filepath.IsAbs(rel) {
		if cwd, err := os.Getwd(); err == nil {
			rel = ToRelative(rel, cwd)
		}
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}
