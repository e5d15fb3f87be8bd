package output_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/temirov/repoctx/internal/commands"
	"github.com/temirov/repoctx/internal/output"
	"github.com/temirov/repoctx/internal/types"
)

const fullReportExpected = "# Repository Context\n\n" +
	"## File System Location\n\n" +
	"/work/proj\n\n" +
	"## Git Info\n\n" +
	"- Commit: 0123abcd\n" +
	"- Branch: main\n" +
	"- Author: Dev Person <dev@example.com>\n" +
	"- Date: Tue Jan 02 15:04:05 2024 +0200\n\n" +
	"## Structure\n" +
	"```\n" +
	"proj/\n  a.py\n" +
	"```\n\n" +
	"## File Contents\n" +
	"\n" +
	"### File: a.py\n" +
	"```\n" +
	"print(1)\n" +
	"```\n\n" +
	"## Summary\n" +
	"- Total files: 1\n" +
	"- Total lines: 1\n" +
	"- Total tokens: 8 (gpt-4o)\n" +
	"\n"

const emptyRecentReportExpected = "# Repository Context\n\n" +
	"## File System Location\n\n" +
	"/work/empty\n\n" +
	"## Git Info\n\n" +
	"Not a git repository\n\n" +
	"## Structure\n" +
	"```\n" +
	"empty/\n" +
	"```\n\n" +
	"## File Contents\n" +
	"[Only the recently modified files are included]\n\n" +
	"No file content available.\n\n" +
	"## Summary\n" +
	"- Total files (recently changed): 0\n" +
	"- Total lines: 0\n" +
	"\n"

func unifiedDiff(expected string, actual string) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	return diff
}

func TestRenderMarkdownFullReport(testingHandle *testing.T) {
	report := types.Report{
		Location: "/work/proj",
		Git: &types.GitInfo{
			Commit: "0123abcd",
			Branch: "main",
			Author: "Dev Person <dev@example.com>",
			Date:   "Tue Jan 02 15:04:05 2024 +0200",
		},
		Structure: "proj/\n  a.py",
		Files: []types.FileRecord{
			{Name: "a.py", Content: "print(1)", Lines: 1, Tokens: 8},
		},
		Summary: types.ReportSummary{TotalFiles: 1, TotalLines: 1, TotalTokens: 8, TokenModel: "gpt-4o"},
	}
	rendered := output.RenderMarkdown(report)
	if rendered != fullReportExpected {
		testingHandle.Fatalf("unexpected rendering:\n%s", unifiedDiff(fullReportExpected, rendered))
	}
}

func TestRenderMarkdownEmptyRecentReport(testingHandle *testing.T) {
	report := types.Report{
		Location:   "/work/empty",
		Structure:  "empty/",
		RecentOnly: true,
	}
	rendered := output.RenderMarkdown(report)
	if rendered != emptyRecentReportExpected {
		testingHandle.Fatalf("unexpected rendering:\n%s", unifiedDiff(emptyRecentReportExpected, rendered))
	}
}

func TestRenderMarkdownModifiedSuffix(testingHandle *testing.T) {
	report := types.Report{
		Location:   "/work/proj",
		Structure:  "proj/",
		RecentOnly: true,
		Files:      []types.FileRecord{{Name: "a.py", Content: "x", Lines: 1, Modified: "2024-06-19 12:00:00"}},
		Summary:    types.ReportSummary{TotalFiles: 1, TotalLines: 1},
	}
	rendered := output.RenderMarkdown(report)
	if !strings.Contains(rendered, "### File: a.py (Modified: 2024-06-19 12:00:00)\n```\nx\n```\n\n") {
		testingHandle.Fatalf("missing modified header:\n%s", rendered)
	}
	if !strings.Contains(rendered, "- Total files (recently changed): 1\n") {
		testingHandle.Fatalf("missing recency summary:\n%s", rendered)
	}
}

func TestRenderedReportIsDeterministic(testingHandle *testing.T) {
	root := filepath.Join(testingHandle.TempDir(), "proj")
	files := map[string]string{
		"main.go":             "package main\n",
		"pkg/zeta/zeta.go":    "package zeta\n",
		"pkg/alpha/alpha.go":  "package alpha\n",
		"docs/readme.md":      "```sh\nmake\n```\n",
		"scripts/run.py":      "# run\nprint('go')\n",
		"scripts/__init__.py": "",
	}
	for relativePath, content := range files {
		path := filepath.Join(root, filepath.FromSlash(relativePath))
		if mkdirError := os.MkdirAll(filepath.Dir(path), 0o755); mkdirError != nil {
			testingHandle.Fatalf("mkdir: %v", mkdirError)
		}
		if writeError := os.WriteFile(path, []byte(content), 0o644); writeError != nil {
			testingHandle.Fatalf("write: %v", writeError)
		}
	}

	request := types.TraversalRequest{Root: root, MaxFileBytes: types.DefaultMaxFileBytes, StripComments: true}
	renderOnce := func() string {
		report, buildError := commands.BuildReport(context.Background(), request, commands.ReportDependencies{})
		if buildError != nil {
			testingHandle.Fatalf("BuildReport error: %v", buildError)
		}
		return output.RenderMarkdown(report)
	}

	first := renderOnce()
	second := renderOnce()
	if first != second {
		testingHandle.Fatalf("reports differ between runs:\n%s", unifiedDiff(first, second))
	}
	if !strings.Contains(first, "- Total files: 6\n") {
		testingHandle.Fatalf("unexpected summary:\n%s", first)
	}
	if strings.Count(first, "```") != 2*(len(files)+1) {
		testingHandle.Fatalf("file content must not open extra fences:\n%s", first)
	}
}
