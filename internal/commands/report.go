package commands

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/clock"
	"github.com/temirov/repoctx/internal/tokenizer"
	"github.com/temirov/repoctx/internal/types"
	"github.com/temirov/repoctx/internal/utils"
)

const unknownModificationTime = "Unknown"

// GitMetadataSource resolves version-control metadata for a directory.
type GitMetadataSource interface {
	Collect(ctx context.Context, directory string) (types.GitInfo, error)
}

// ReportDependencies carries the collaborators used by BuildReport.
type ReportDependencies struct {
	Git          GitMetadataSource
	Clock        clock.Clock
	TokenCounter tokenizer.Counter
	TokenModel   string
	Logger       *zap.Logger
}

// BuildReport runs discovery, filtering and rendering for one request.
// Every counter starts at zero so repeated calls are independent.
func BuildReport(ctx context.Context, request types.TraversalRequest, dependencies ReportDependencies) (types.Report, error) {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	currentClock := dependencies.Clock
	if currentClock == nil {
		currentClock = clock.System{}
	}

	filter, filterError := NewFilter(request.Root, FilterOptions{
		IncludeHidden:   request.IncludeHidden,
		ExcludePatterns: request.ExcludePatterns,
		UseGitignore:    request.UseGitignore,
		SkipPaths:       request.SkipPaths,
	})
	if filterError != nil {
		return types.Report{}, filterError
	}

	report := types.Report{
		Location:   request.Root,
		RecentOnly: request.RecentOnly,
	}

	if dependencies.Git != nil {
		gitInfo, gitError := dependencies.Git.Collect(ctx, request.Root)
		if gitError != nil {
			logger.Info("Git metadata unavailable", zap.Error(gitError))
		} else {
			report.Git = &gitInfo
		}
	}

	structure, structureError := RenderStructure(request.Root, NewStructureFilter(request.Root, request.SkipPaths), logger)
	if structureError != nil {
		return types.Report{}, structureError
	}
	report.Structure = structure

	candidates := request.Filenames
	if len(request.Filenames) == 0 {
		discovered, discoverError := DiscoverFiles(request.Root, filter, logger)
		if discoverError != nil {
			return types.Report{}, discoverError
		}
		candidates = discovered
	}
	if request.RecentOnly {
		candidates = FilterRecent(candidates, request.RecentDays, currentClock, logger)
	}

	contentOptions := ContentOptions{
		MaxFileBytes:  request.MaxFileBytes,
		StripComments: request.StripComments,
		Logger:        logger,
	}
	summary := types.ReportSummary{}
	if dependencies.TokenCounter != nil {
		summary.TokenModel = dependencies.TokenModel
	}
	for _, candidate := range candidates {
		if contextError := ctx.Err(); contextError != nil {
			return types.Report{}, contextError
		}
		record := RenderFileContent(candidate, contentOptions)
		if request.RecentOnly {
			record.Modified = modificationTimestamp(candidate)
		}
		if dependencies.TokenCounter != nil {
			tokens, countError := tokenizer.CountText(dependencies.TokenCounter, record.Content)
			if countError != nil {
				logger.Warn("Unable to count tokens", zap.String("path", candidate), zap.Error(countError))
			}
			record.Tokens = tokens
			summary.TotalTokens += tokens
		}
		summary.TotalLines += record.Lines
		report.Files = append(report.Files, record)
	}
	summary.TotalFiles = len(report.Files)
	report.Summary = summary
	return report, nil
}

func modificationTimestamp(path string) string {
	info, statError := os.Stat(path)
	if statError != nil {
		return unknownModificationTime
	}
	return utils.FormatTimestamp(info.ModTime())
}
