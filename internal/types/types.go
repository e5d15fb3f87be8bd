// Package types defines every cross-package data structure used by the repoctx CLI.
package types

const (
	// DefaultMaxFileBytes is the per-file read budget when none is configured.
	DefaultMaxFileBytes = 16 * 1024
	// DefaultRecentDays is the recency window used by --recent.
	DefaultRecentDays = 7
	// DefaultTokenModel is the tokenizer model used by --tokens.
	DefaultTokenModel = "gpt-4o"
)

// PathSelection is the classified form of the user supplied paths.
// Exactly one of Directory and Filenames is set.
type PathSelection struct {
	Directory string
	Filenames []string
}

// IsDirectoryMode reports whether the selection names a single directory.
func (selection PathSelection) IsDirectoryMode() bool {
	return selection.Directory != ""
}

// TraversalRequest describes one pipeline run. Root is the scanned directory
// in directory mode and the search root in filename mode, where Filenames
// holds the located files.
type TraversalRequest struct {
	Root            string
	Filenames       []string
	RecentOnly      bool
	RecentDays      int
	MaxFileBytes    int
	StripComments   bool
	IncludeHidden   bool
	ExcludePatterns []string
	UseGitignore    bool
	SkipPaths       []string
}

// FileRecord is one rendered file section.
type FileRecord struct {
	Path      string
	Name      string
	Content   string
	Lines     int
	Truncated bool
	Modified  string
	Tokens    int
}

// GitInfo is the version-control metadata shown in the report header.
type GitInfo struct {
	Commit string
	Branch string
	Author string
	Date   string
}

// ReportSummary aggregates counts for a single report.
type ReportSummary struct {
	TotalFiles  int
	TotalLines  int
	TotalTokens int
	TokenModel  string
}

// Report is the assembled, renderer independent result of one run.
type Report struct {
	Location   string
	Git        *GitInfo
	Structure  string
	RecentOnly bool
	Files      []FileRecord
	Summary    ReportSummary
}
