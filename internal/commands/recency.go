package commands

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/clock"
)

const hoursPerDay = 24

// FilterRecent keeps the paths whose modification time lies within days of
// the clock's current instant, inclusive of the boundary. Input order is
// preserved. Paths that cannot be stat'ed are skipped with a warning.
func FilterRecent(paths []string, days int, now clock.Clock, logger *zap.Logger) []string {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = clock.System{}
	}
	window := time.Duration(days) * hoursPerDay * time.Hour
	current := now.Now()

	recent := make([]string, 0, len(paths))
	for _, path := range paths {
		info, statError := os.Stat(path)
		if statError != nil {
			logger.Warn("Skipping file with unreadable modification time",
				zap.Error(apperrors.New(apperrors.KindStat, path, statError)))
			continue
		}
		if current.Sub(info.ModTime()) <= window {
			recent = append(recent, path)
		}
	}
	return recent
}
