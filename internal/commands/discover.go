package commands

import (
	"go.uber.org/zap"
)

// DiscoverFiles returns the absolute paths of every admitted file under root
// in deterministic walk order.
func DiscoverFiles(root string, filter *Filter, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var discovered []string
	walkError := walkSorted(root, filter, logger, walkVisitor{
		file: func(absolutePath string, relativePath string, depth int) {
			logger.Info("Checking file", zap.String("path", absolutePath))
			discovered = append(discovered, absolutePath)
		},
	})
	if walkError != nil {
		return nil, walkError
	}
	return discovered, nil
}
