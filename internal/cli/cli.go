// Package cli provides the command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/clock"
	"github.com/temirov/repoctx/internal/commands"
	"github.com/temirov/repoctx/internal/config"
	"github.com/temirov/repoctx/internal/gitinfo"
	"github.com/temirov/repoctx/internal/output"
	"github.com/temirov/repoctx/internal/services/clipboard"
	"github.com/temirov/repoctx/internal/tokenizer"
	"github.com/temirov/repoctx/internal/types"
	"github.com/temirov/repoctx/internal/utils"
)

const (
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	recentFlagName        = "recent"
	recentFlagShorthand   = "r"
	recentDaysFlagName    = "recent-days"
	verboseFlagName       = "verbose"
	maxFileSizeFlagName   = "max-file-size"
	stripCommentsFlagName = "strip-comments"
	includeHiddenFlagName = "include-hidden"
	excludeFlagName       = "exclude"
	excludeFlagShorthand  = "e"
	gitignoreFlagName     = "gitignore"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	configFlagName        = "config"
	versionFlagName       = "version"

	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName + " [paths...]"
	rootShortDescription = "Assemble a Markdown snapshot of a repository for language models"
	rootLongDescription  = `repoctx scans one directory, or a list of files located beneath the
working directory, and renders a single Markdown document with the location,
git metadata, a structure tree, fenced file contents and a summary.
Defaults may be supplied by ~/.repoctx/config.toml and .scan-repo-config.toml;
flags given on the command line always win.`
	rootUsageExample = `  # Snapshot the current directory
  repoctx

  # Only files modified during the last week, written to a file
  repoctx --recent -o context.md ./service

  # Two specific files found anywhere below the working directory
  repoctx main.go handler.go`

	outputFlagDescription        = "write the report to this file instead of printing it"
	recentFlagDescription        = "only include recently modified files"
	recentDaysFlagDescription    = "recency window in days"
	verboseFlagDescription       = "log progress information"
	maxFileSizeFlagDescription   = "maximum number of bytes read per file"
	stripCommentsFlagDescription = "remove comments from supported source files"
	includeHiddenFlagDescription = "include dot-files"
	excludeFlagDescription       = "exclude paths matching a glob pattern (repeatable)"
	gitignoreFlagDescription     = "honor the root .gitignore"
	copyFlagDescription          = "copy the report to the clipboard"
	tokensFlagDescription        = "include a total token count in the summary"
	modelFlagDescription         = "tokenizer model used for token counting"
	configFlagDescription        = "configuration file used instead of " + utils.LocalConfigFileName
	versionFlagDescription       = "display application version"

	negativeMaxFileSizeMessage  = "--max-file-size must not be negative."
	negativeRecentDaysMessage   = "--recent-days must not be negative."
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	tokenizerErrorFormat        = "unable to initialize tokenizer for %s: %w"
	resolveOutputErrorFormat    = "resolving output path %s: %w"
)

// reportOptions holds the effective settings for one run.
type reportOptions struct {
	outputPath      string
	recentOnly      bool
	recentDays      int
	verbose         bool
	maxFileBytes    int
	stripComments   bool
	includeHidden   bool
	excludePatterns []string
	useGitignore    bool
	copyToClipboard bool
	countTokens     bool
	tokenModel      string
	configPath      string
	showVersion     bool
}

// applicationDependencies are the collaborators replaced in tests.
type applicationDependencies struct {
	gitSource  commands.GitMetadataSource
	clock      clock.Clock
	copier     clipboard.Copier
	newCounter func(tokenizer.Config) (tokenizer.Counter, string, error)
	newLogger  func(verbose bool) (*zap.Logger, error)
}

func defaultDependencies() applicationDependencies {
	return applicationDependencies{
		gitSource:  gitinfo.NewCollector(),
		clock:      clock.System{},
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
		newLogger:  utils.NewApplicationLogger,
	}
}

// Execute runs the repoctx application with the process arguments.
func Execute(ctx context.Context) error {
	rootCommand := createRootCommand(defaultDependencies())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies applicationDependencies) *cobra.Command {
	options := &reportOptions{}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, writeError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return writeError
			}
			return runReport(command, arguments, options, dependencies)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	registerBooleanFlag(flagSet, &options.recentOnly, recentFlagName, recentFlagShorthand, false, recentFlagDescription)
	flagSet.IntVar(&options.recentDays, recentDaysFlagName, types.DefaultRecentDays, recentDaysFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, "", false, verboseFlagDescription)
	flagSet.IntVar(&options.maxFileBytes, maxFileSizeFlagName, types.DefaultMaxFileBytes, maxFileSizeFlagDescription)
	registerBooleanFlag(flagSet, &options.stripComments, stripCommentsFlagName, "", false, stripCommentsFlagDescription)
	registerBooleanFlag(flagSet, &options.includeHidden, includeHiddenFlagName, "", false, includeHiddenFlagDescription)
	flagSet.StringArrayVarP(&options.excludePatterns, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	registerBooleanFlag(flagSet, &options.useGitignore, gitignoreFlagName, "", false, gitignoreFlagDescription)
	registerBooleanFlag(flagSet, &options.copyToClipboard, copyFlagName, "", false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.countTokens, tokensFlagName, "", false, tokensFlagDescription)
	flagSet.StringVar(&options.tokenModel, modelFlagName, types.DefaultTokenModel, modelFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// applyConfiguration fills every option the user did not set explicitly
// from the loaded configuration.
func (options *reportOptions) applyConfiguration(flagSet *pflag.FlagSet, configuration config.ApplicationConfiguration) {
	if !flagSet.Changed(outputFlagName) && configuration.Output != "" {
		options.outputPath = configuration.Output
	}
	applyBool(flagSet, recentFlagName, &options.recentOnly, configuration.Recent)
	applyInt(flagSet, recentDaysFlagName, &options.recentDays, configuration.RecentDays)
	applyBool(flagSet, verboseFlagName, &options.verbose, configuration.Verbose)
	applyInt(flagSet, maxFileSizeFlagName, &options.maxFileBytes, configuration.MaxFileSize)
	applyBool(flagSet, stripCommentsFlagName, &options.stripComments, configuration.StripComments)
	applyBool(flagSet, includeHiddenFlagName, &options.includeHidden, configuration.IncludeHidden)
	if !flagSet.Changed(excludeFlagName) && len(configuration.Exclude) > 0 {
		options.excludePatterns = append([]string{}, configuration.Exclude...)
	}
	applyBool(flagSet, gitignoreFlagName, &options.useGitignore, configuration.Gitignore)
	applyBool(flagSet, copyFlagName, &options.copyToClipboard, configuration.Copy)
	applyBool(flagSet, tokensFlagName, &options.countTokens, configuration.Tokens)
	if !flagSet.Changed(modelFlagName) && configuration.Model != "" {
		options.tokenModel = configuration.Model
	}
}

func applyBool(flagSet *pflag.FlagSet, name string, target *bool, configured *bool) {
	if configured != nil && !flagSet.Changed(name) {
		*target = *configured
	}
}

func applyInt(flagSet *pflag.FlagSet, name string, target *int, configured *int) {
	if configured != nil && !flagSet.Changed(name) {
		*target = *configured
	}
}

func (options *reportOptions) validate() error {
	if options.maxFileBytes < 0 {
		return apperrors.NewValidation(negativeMaxFileSizeMessage)
	}
	if options.recentDays < 0 {
		return apperrors.NewValidation(negativeRecentDaysMessage)
	}
	return nil
}

func runReport(command *cobra.Command, arguments []string, options *reportOptions, dependencies applicationDependencies) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	logger, loggerError := dependencies.newLogger(options.verbose)
	if loggerError != nil {
		return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
	}
	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
		Logger:           logger,
	})
	if configurationError != nil {
		return configurationError
	}
	requestedVerbose := options.verbose
	options.applyConfiguration(command.Flags(), configuration)
	if options.verbose != requestedVerbose {
		logger, loggerError = dependencies.newLogger(options.verbose)
		if loggerError != nil {
			return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
		}
	}
	defer utils.SyncLogger(logger)

	if validationError := options.validate(); validationError != nil {
		return validationError
	}

	inputPaths := arguments
	if len(inputPaths) == 0 {
		inputPaths = configuration.Paths
	}
	request, requestError := buildTraversalRequest(workingDirectory, inputPaths, options, logger)
	if requestError != nil {
		return requestError
	}

	reportDependencies := commands.ReportDependencies{
		Git:    dependencies.gitSource,
		Clock:  dependencies.clock,
		Logger: logger,
	}
	if options.countTokens {
		counter, modelName, counterError := dependencies.newCounter(tokenizer.Config{Model: options.tokenModel})
		if counterError != nil {
			return fmt.Errorf(tokenizerErrorFormat, options.tokenModel, counterError)
		}
		reportDependencies.TokenCounter = counter
		reportDependencies.TokenModel = modelName
	}

	report, reportError := commands.BuildReport(command.Context(), request, reportDependencies)
	if reportError != nil {
		return reportError
	}
	rendered := output.RenderMarkdown(report)

	if emitError := selectSink(command.OutOrStdout(), options.outputPath, logger).Emit(rendered); emitError != nil {
		return emitError
	}
	if options.copyToClipboard && dependencies.copier != nil {
		if copyError := dependencies.copier.Copy(rendered); copyError != nil {
			logger.Warn("Unable to copy report to clipboard", zap.Error(copyError))
		} else {
			logger.Info("Report copied to clipboard")
		}
	}
	return nil
}

func buildTraversalRequest(workingDirectory string, inputPaths []string, options *reportOptions, logger *zap.Logger) (types.TraversalRequest, error) {
	request := types.TraversalRequest{
		RecentOnly:      options.recentOnly,
		RecentDays:      options.recentDays,
		MaxFileBytes:    options.maxFileBytes,
		StripComments:   options.stripComments,
		IncludeHidden:   options.includeHidden,
		ExcludePatterns: options.excludePatterns,
		UseGitignore:    options.useGitignore,
	}
	if options.outputPath != "" {
		absoluteOutput, absoluteError := filepath.Abs(options.outputPath)
		if absoluteError != nil {
			return types.TraversalRequest{}, fmt.Errorf(resolveOutputErrorFormat, options.outputPath, absoluteError)
		}
		request.SkipPaths = []string{absoluteOutput}
	}

	selection, classifyError := commands.ClassifyPaths(inputPaths)
	if classifyError != nil {
		return types.TraversalRequest{}, classifyError
	}
	if selection.IsDirectoryMode() {
		request.Root = selection.Directory
		return request, nil
	}

	located, locateError := commands.LocateFilenames(workingDirectory, selection.Filenames, logger)
	if locateError != nil {
		return types.TraversalRequest{}, locateError
	}
	request.Root = workingDirectory
	request.Filenames = located
	return request, nil
}

func selectSink(writer io.Writer, outputPath string, logger *zap.Logger) output.Sink {
	if outputPath == "" {
		return output.TerminalSink{Writer: writer}
	}
	return output.FileSink{Path: outputPath, Logger: logger}
}
