// Package output renders reports and delivers them to the terminal or a file.
package output

import (
	"fmt"
	"strings"

	"github.com/temirov/repoctx/internal/types"
)

const (
	reportTitle           = "# Repository Context\n\n"
	locationHeading       = "## File System Location\n\n"
	gitHeading            = "## Git Info\n\n"
	gitCommitFormat       = "- Commit: %s\n"
	gitBranchFormat       = "- Branch: %s\n"
	gitAuthorFormat       = "- Author: %s\n"
	gitDateFormat         = "- Date: %s\n\n"
	gitAbsentLine         = "Not a git repository\n\n"
	structureHeading      = "## Structure\n"
	codeFence             = "```\n"
	fileContentsHeading   = "## File Contents\n"
	recentOnlyNotice      = "[Only the recently modified files are included]\n\n"
	fileHeadingFormat     = "### File: %s"
	modifiedSuffixFormat  = " (Modified: %s)"
	noFileContentLine     = "No file content available.\n\n"
	summaryHeading        = "## Summary\n"
	totalFilesFormat      = "- Total files: %d\n"
	totalRecentFormat     = "- Total files (recently changed): %d\n"
	totalLinesFormat      = "- Total lines: %d\n"
	totalTokensFormat     = "- Total tokens: %d (%s)\n"
	sectionTerminator     = "\n"
	blockTerminator       = "\n\n"
	trailingBlankLine     = "\n"
)

// RenderMarkdown returns the complete Markdown document for report.
func RenderMarkdown(report types.Report) string {
	var builder strings.Builder

	builder.WriteString(reportTitle)
	builder.WriteString(locationHeading)
	builder.WriteString(report.Location + blockTerminator)

	builder.WriteString(gitHeading)
	if report.Git == nil {
		builder.WriteString(gitAbsentLine)
	} else {
		fmt.Fprintf(&builder, gitCommitFormat, report.Git.Commit)
		fmt.Fprintf(&builder, gitBranchFormat, report.Git.Branch)
		fmt.Fprintf(&builder, gitAuthorFormat, report.Git.Author)
		fmt.Fprintf(&builder, gitDateFormat, report.Git.Date)
	}

	builder.WriteString(structureHeading)
	builder.WriteString(codeFence)
	builder.WriteString(report.Structure + sectionTerminator)
	builder.WriteString(codeFence + trailingBlankLine)

	builder.WriteString(fileContentsHeading)
	if report.RecentOnly {
		builder.WriteString(recentOnlyNotice)
	} else {
		builder.WriteString(sectionTerminator)
	}
	if len(report.Files) == 0 {
		builder.WriteString(noFileContentLine)
	}
	for _, record := range report.Files {
		renderFileSection(&builder, record, report.RecentOnly)
	}

	builder.WriteString(summaryHeading)
	if report.RecentOnly {
		fmt.Fprintf(&builder, totalRecentFormat, report.Summary.TotalFiles)
	} else {
		fmt.Fprintf(&builder, totalFilesFormat, report.Summary.TotalFiles)
	}
	fmt.Fprintf(&builder, totalLinesFormat, report.Summary.TotalLines)
	if report.Summary.TokenModel != "" {
		fmt.Fprintf(&builder, totalTokensFormat, report.Summary.TotalTokens, report.Summary.TokenModel)
	}
	builder.WriteString(sectionTerminator)
	return builder.String()
}

func renderFileSection(builder *strings.Builder, record types.FileRecord, recentOnly bool) {
	fmt.Fprintf(builder, fileHeadingFormat, record.Name)
	if recentOnly {
		fmt.Fprintf(builder, modifiedSuffixFormat, record.Modified)
	}
	builder.WriteString(sectionTerminator)
	builder.WriteString(codeFence)
	builder.WriteString(record.Content + sectionTerminator)
	builder.WriteString(codeFence + trailingBlankLine)
}
