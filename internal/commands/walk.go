package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/utils"
)

const (
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// walkVisitor receives entries in walk order. Depth is 0 for the root
// directory and grows by one per nested directory.
type walkVisitor struct {
	directory func(absolutePath string, relativePath string, depth int)
	file      func(absolutePath string, relativePath string, depth int)
}

// walkSorted visits root top-down. Within a directory, admitted files come
// first in name order, followed by each admitted subdirectory in name order.
// Directories rejected by the filter are never read. Symbolic links to
// directories are not followed.
func walkSorted(root string, filter *Filter, logger *zap.Logger, visitor walkVisitor) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if visitor.directory != nil {
		visitor.directory(root, ".", 0)
	}
	return walkDirectory(root, root, 0, filter, logger, visitor)
}

func walkDirectory(root string, directoryPath string, depth int, filter *Filter, logger *zap.Logger, visitor walkVisitor) error {
	// os.ReadDir returns entries sorted by file name.
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError)
	}

	var childDirectories []fs.DirEntry
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		relativePath := utils.RelativePathOrSelf(entryPath, root)

		isDirectory := directoryEntry.IsDir()
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			targetInfo, statError := os.Stat(entryPath)
			if statError == nil && targetInfo.IsDir() {
				logger.Info("Skipping symbolic link to directory", zap.String("path", entryPath))
				continue
			}
		}
		if isDirectory {
			if filter.AllowDirectory(relativePath, directoryEntry.Name()) {
				childDirectories = append(childDirectories, directoryEntry)
			}
			continue
		}
		if !filter.AllowFile(entryPath, relativePath, directoryEntry.Name()) {
			continue
		}
		if visitor.file != nil {
			visitor.file(entryPath, relativePath, depth+1)
		}
	}

	for _, childDirectory := range childDirectories {
		childPath := filepath.Join(directoryPath, childDirectory.Name())
		if visitor.directory != nil {
			visitor.directory(childPath, utils.RelativePathOrSelf(childPath, root), depth+1)
		}
		if walkError := walkDirectory(root, childPath, depth+1, filter, logger, visitor); walkError != nil {
			logger.Warn("Skipping unreadable directory", zap.String("path", childPath), zap.Error(walkError))
		}
	}
	return nil
}
