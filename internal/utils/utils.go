// Package utils contains general helper functions used across the repoctx tool.
package utils

import (
	"path/filepath"
	"strings"
)

// Directory and file name constants used across the project.
const (
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// GitIgnoreFileName is the name of the Git ignore file.
	GitIgnoreFileName = ".gitignore"
	// PythonCacheDirectoryName is the interpreter bytecode cache directory.
	PythonCacheDirectoryName = "__pycache__"
	// CompiledPythonExtension marks interpreter bytecode files.
	CompiledPythonExtension = ".pyc"

	hiddenNamePrefix = "."
)

// PrunedDirectoryNames lists directories that are never descended into.
var PrunedDirectoryNames = map[string]struct{}{
	GitDirectoryName:         {},
	".hg":                    {},
	".svn":                   {},
	PythonCacheDirectoryName: {},
}

// IsPrunedDirectoryName reports whether a directory with this name holds
// version-control metadata or interpreter caches.
func IsPrunedDirectoryName(name string) bool {
	_, pruned := PrunedDirectoryNames[name]
	return pruned
}

// IsHiddenName reports whether a file name is dot-prefixed.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, hiddenNamePrefix) && name != "." && name != ".."
}

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, err := filepath.Abs(root)
	if err != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
