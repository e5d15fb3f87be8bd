package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/temirov/repoctx/internal/utils"
)

const (
	// errorCompileGitignoreFormat is used when the root .gitignore cannot be parsed.
	errorCompileGitignoreFormat = "compiling %s: %w"
	directoryPatternSuffix      = "/"
)

// FilterOptions configures which entries a Filter admits.
type FilterOptions struct {
	IncludeHidden   bool
	ExcludePatterns []string
	UseGitignore    bool
	// SkipPaths lists absolute file paths that are never admitted, such as the report destination.
	SkipPaths []string
}

// Filter decides which directories are descended into and which files are admitted.
// Version-control and interpreter cache directories are always pruned.
type Filter struct {
	root            string
	includeHidden   bool
	includeCompiled bool
	excludePatterns []string
	skipPaths       map[string]struct{}
	gitIgnore       *ignore.GitIgnore
}

// NewFilter creates a filter for the given root directory.
func NewFilter(root string, options FilterOptions) (*Filter, error) {
	filter := &Filter{
		root:            root,
		includeHidden:   options.IncludeHidden,
		excludePatterns: normalizeExcludePatterns(options.ExcludePatterns),
		skipPaths:       skipPathSet(options.SkipPaths),
	}

	if options.UseGitignore {
		gitIgnorePath := filepath.Join(root, utils.GitIgnoreFileName)
		if _, statError := os.Stat(gitIgnorePath); statError == nil {
			compiled, compileError := ignore.CompileIgnoreFile(gitIgnorePath)
			if compileError != nil {
				return nil, fmt.Errorf(errorCompileGitignoreFormat, gitIgnorePath, compileError)
			}
			filter.gitIgnore = compiled
		}
	}
	return filter, nil
}

// newLocatorFilter admits every file and prunes only version-control and cache directories.
func newLocatorFilter(root string) *Filter {
	return NewStructureFilter(root, nil)
}

// NewStructureFilter creates the filter used for the structure tree. It lists
// hidden and compiled files, ignores exclude patterns and .gitignore, and
// prunes only version-control and cache directories. skipPaths are still
// left out so the report never lists its own destination.
func NewStructureFilter(root string, skipPaths []string) *Filter {
	return &Filter{
		root:            root,
		includeHidden:   true,
		includeCompiled: true,
		skipPaths:       skipPathSet(skipPaths),
	}
}

func skipPathSet(paths []string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		set[filepath.Clean(path)] = struct{}{}
	}
	return set
}

// AllowDirectory reports whether the walker may descend into the directory at relativePath.
func (filter *Filter) AllowDirectory(relativePath string, name string) bool {
	if utils.IsPrunedDirectoryName(name) {
		return false
	}
	if filter.matchesExclude(relativePath, true) {
		return false
	}
	if filter.gitIgnore != nil && (filter.gitIgnore.MatchesPath(relativePath) || filter.gitIgnore.MatchesPath(relativePath+directoryPatternSuffix)) {
		return false
	}
	return true
}

// AllowFile reports whether the file at absolutePath is admitted.
func (filter *Filter) AllowFile(absolutePath string, relativePath string, name string) bool {
	if _, skipped := filter.skipPaths[filepath.Clean(absolutePath)]; skipped {
		return false
	}
	if !filter.includeHidden && utils.IsHiddenName(name) {
		return false
	}
	if !filter.includeCompiled && strings.EqualFold(filepath.Ext(name), utils.CompiledPythonExtension) {
		return false
	}
	if filter.matchesExclude(relativePath, false) {
		return false
	}
	if filter.gitIgnore != nil && filter.gitIgnore.MatchesPath(relativePath) {
		return false
	}
	return true
}

// matchesExclude evaluates doublestar exclude patterns against a slash separated relative path.
// Patterns ending with a slash only match directories. Patterns without a slash also match the base name.
func (filter *Filter) matchesExclude(relativePath string, isDirectory bool) bool {
	if len(filter.excludePatterns) == 0 {
		return false
	}
	baseName := relativePath
	if lastSeparator := strings.LastIndex(relativePath, directoryPatternSuffix); lastSeparator >= 0 {
		baseName = relativePath[lastSeparator+1:]
	}
	for _, pattern := range filter.excludePatterns {
		directoryOnly := strings.HasSuffix(pattern, directoryPatternSuffix)
		if directoryOnly && !isDirectory {
			continue
		}
		trimmedPattern := strings.TrimSuffix(pattern, directoryPatternSuffix)
		if matched, matchError := doublestar.Match(trimmedPattern, relativePath); matchError == nil && matched {
			return true
		}
		if !strings.Contains(trimmedPattern, directoryPatternSuffix) {
			if matched, matchError := doublestar.Match(trimmedPattern, baseName); matchError == nil && matched {
				return true
			}
		}
	}
	return false
}

func normalizeExcludePatterns(patterns []string) []string {
	normalized := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(filepath.ToSlash(pattern))
		trimmed = strings.TrimPrefix(trimmed, "./")
		if trimmed == "" || trimmed == directoryPatternSuffix {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return utils.DeduplicatePatterns(normalized)
}
