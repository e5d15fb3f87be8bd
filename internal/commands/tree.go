package commands

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	structureIndent       = "  "
	structureDirectoryEnd = "/"
)

// RenderStructure produces the indented directory tree of root. Each
// directory is printed as "name/" and each file one level deeper than its
// directory. Ordering matches DiscoverFiles; pruning follows filter.
func RenderStructure(root string, filter *Filter, logger *zap.Logger) (string, error) {
	var lines []string
	walkError := walkSorted(root, filter, logger, walkVisitor{
		directory: func(absolutePath string, relativePath string, depth int) {
			directoryName := filepath.Base(absolutePath)
			if depth == 0 {
				directoryName = rootDisplayName(absolutePath)
			}
			lines = append(lines, strings.Repeat(structureIndent, depth)+directoryName+structureDirectoryEnd)
		},
		file: func(absolutePath string, relativePath string, depth int) {
			lines = append(lines, strings.Repeat(structureIndent, depth)+filepath.Base(absolutePath))
		},
	})
	if walkError != nil {
		return "", walkError
	}
	return strings.Join(lines, "\n"), nil
}

func rootDisplayName(root string) string {
	baseName := filepath.Base(root)
	if baseName == string(filepath.Separator) || baseName == "." || baseName == "" {
		return root
	}
	return baseName
}
