// Package gitinfo reads version-control metadata by shelling out to git.
package gitinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/types"
)

const (
	gitExecutableName  = "git"
	workTreeMarker     = "true"
	fieldSeparator     = "\x1f"
	logFormat          = "--format=%H%x1f%an%x1f%ae%x1f%cI"
	commitDateLayout   = "Mon Jan 02 15:04:05 2006 -0700"
	authorFormat       = "%s <%s>"
	commandErrorFormat = "git %s: %w: %s"
	lookupFailedFormat = "git metadata unavailable for %s"
	expectedLogFields  = 4
)

var (
	errNotWorkTree      = errors.New("not inside a git work tree")
	errMalformedLogLine = errors.New("unexpected git log output")
)

// CommandRunner executes git with arguments in directory and returns trimmed stdout.
type CommandRunner func(ctx context.Context, directory string, arguments ...string) (string, error)

// Collector resolves commit, branch, author and date for a directory inside a work tree.
type Collector struct {
	run CommandRunner
}

// NewCollector returns a Collector that runs the git executable found on PATH.
func NewCollector() *Collector {
	return &Collector{run: runGit}
}

// NewCollectorWithRunner returns a Collector backed by runner.
func NewCollectorWithRunner(runner CommandRunner) *Collector {
	return &Collector{run: runner}
}

// Collect returns the metadata of the commit checked out at path. Any
// failure, including a detached HEAD, is reported as a git_lookup error.
func (collector *Collector) Collect(ctx context.Context, path string) (types.GitInfo, error) {
	info, collectError := collector.collect(ctx, path)
	if collectError != nil {
		return types.GitInfo{}, apperrors.New(apperrors.KindGitLookup, fmt.Sprintf(lookupFailedFormat, path), collectError)
	}
	return info, nil
}

func (collector *Collector) collect(ctx context.Context, path string) (types.GitInfo, error) {
	insideWorkTree, workTreeError := collector.run(ctx, path, "rev-parse", "--is-inside-work-tree")
	if workTreeError != nil {
		return types.GitInfo{}, workTreeError
	}
	if insideWorkTree != workTreeMarker {
		return types.GitInfo{}, errNotWorkTree
	}

	branch, branchError := collector.run(ctx, path, "symbolic-ref", "--quiet", "--short", "HEAD")
	if branchError != nil {
		return types.GitInfo{}, branchError
	}

	logLine, logError := collector.run(ctx, path, "log", "-1", logFormat)
	if logError != nil {
		return types.GitInfo{}, logError
	}
	fields := strings.Split(logLine, fieldSeparator)
	if len(fields) != expectedLogFields {
		return types.GitInfo{}, errMalformedLogLine
	}
	commitTime, parseError := time.Parse(time.RFC3339, fields[3])
	if parseError != nil {
		return types.GitInfo{}, parseError
	}

	return types.GitInfo{
		Commit: fields[0],
		Branch: branch,
		Author: fmt.Sprintf(authorFormat, fields[1], fields[2]),
		Date:   commitTime.Format(commitDateLayout),
	}, nil
}

func runGit(ctx context.Context, directory string, arguments ...string) (string, error) {
	gitPath, lookupError := exec.LookPath(gitExecutableName)
	if lookupError != nil {
		return "", lookupError
	}
	command := exec.CommandContext(ctx, gitPath, arguments...)
	command.Dir = directory

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	command.Stdout = &standardOutput
	command.Stderr = &standardError

	if runError := command.Run(); runError != nil {
		return "", fmt.Errorf(commandErrorFormat, strings.Join(arguments, " "), runError, strings.TrimSpace(standardError.String()))
	}
	return strings.TrimSpace(standardOutput.String()), nil
}
