package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/types"
)

const (
	multipleDirectoriesMessage = "Only one directory path is allowed."
	mixedPathsMessage          = "Cannot mix directory and file paths."
	fileNotFoundFormat         = "%s not found."
	errorResolvePathFormat     = "resolving %s: %w"
)

// ClassifyPaths splits the user supplied paths into a single directory or a
// list of file names. An empty input selects the current working directory.
func ClassifyPaths(inputs []string) (types.PathSelection, error) {
	if len(inputs) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return types.PathSelection{}, workingDirectoryError
		}
		return types.PathSelection{Directory: workingDirectory}, nil
	}

	var directories []string
	var filenames []string
	for _, input := range inputs {
		absolutePath, absoluteError := filepath.Abs(input)
		if absoluteError != nil {
			return types.PathSelection{}, fmt.Errorf(errorResolvePathFormat, input, absoluteError)
		}
		info, statError := os.Stat(absolutePath)
		if statError == nil && info.IsDir() {
			if !slices.Contains(directories, absolutePath) {
				directories = append(directories, absolutePath)
			}
			continue
		}
		filenames = append(filenames, input)
	}

	if len(directories) > 1 {
		return types.PathSelection{}, apperrors.NewValidation(multipleDirectoriesMessage)
	}
	if len(directories) == 1 && len(filenames) > 0 {
		return types.PathSelection{}, apperrors.NewValidation(mixedPathsMessage)
	}
	if len(directories) == 1 {
		return types.PathSelection{Directory: directories[0]}, nil
	}
	return types.PathSelection{Filenames: filenames}, nil
}

// LocateFilenames resolves each name by base name beneath searchRoot. The
// normalized input is kept when it names an existing regular file, otherwise
// the first match in walk order is used. A name with no match is a not_found error.
func LocateFilenames(searchRoot string, filenames []string, logger *zap.Logger) ([]string, error) {
	firstMatchByName := make(map[string]string)
	walkError := walkSorted(searchRoot, newLocatorFilter(searchRoot), logger, walkVisitor{
		file: func(absolutePath string, relativePath string, depth int) {
			baseName := filepath.Base(absolutePath)
			if _, seen := firstMatchByName[baseName]; !seen {
				firstMatchByName[baseName] = absolutePath
			}
		},
	})
	if walkError != nil {
		return nil, walkError
	}

	located := make([]string, 0, len(filenames))
	for _, filename := range filenames {
		firstMatch, found := firstMatchByName[filepath.Base(filename)]
		if !found {
			return nil, apperrors.NewNotFound(fmt.Sprintf(fileNotFoundFormat, filename))
		}
		normalizedPath, absoluteError := filepath.Abs(filename)
		if absoluteError == nil {
			if info, statError := os.Stat(normalizedPath); statError == nil && info.Mode().IsRegular() {
				located = append(located, normalizedPath)
				continue
			}
		}
		located = append(located, firstMatch)
	}
	return located, nil
}
