// Package comments removes source comments from rendered file content.
//
// Stripping is lexical and line oriented. A line is either kept verbatim or
// dropped entirely; code that shares a line with a trailing comment is kept.
// Delimiters that appear inside string literals are not recognized, so a
// string containing "/*" at the start of a line will open a block comment.
package comments

import (
	"regexp"
	"strings"
	"unicode"
)

type state int

const (
	stateNormal state = iota
	stateInBlockComment
)

type blockDelimiter struct {
	opener string
	closer string
}

// lineRule describes the comment syntax of one language family.
type lineRule struct {
	lineToken string
	blocks    []blockDelimiter
}

var (
	hashRule = lineRule{
		lineToken: "#",
		blocks: []blockDelimiter{
			{opener: `"""`, closer: `"""`},
			{opener: `'''`, closer: `'''`},
		},
	}
	slashRule = lineRule{
		lineToken: "//",
		blocks:    []blockDelimiter{{opener: "/*", closer: "*/"}},
	}

	lineRulesByExtension = map[string]lineRule{
		".py":    hashRule,
		".js":    slashRule,
		".jsx":   slashRule,
		".ts":    slashRule,
		".tsx":   slashRule,
		".java":  slashRule,
		".c":     slashRule,
		".h":     slashRule,
		".cpp":   slashRule,
		".hpp":   slashRule,
		".cs":    slashRule,
		".go":    slashRule,
		".rs":    slashRule,
		".kt":    slashRule,
		".swift": slashRule,
	}

	markupCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

	markupExtensions = map[string]struct{}{
		".html": {},
		".htm":  {},
		".xml":  {},
	}
)

// Supported reports whether Strip knows the comment syntax for extension.
func Supported(extension string) bool {
	normalized := strings.ToLower(extension)
	if _, known := lineRulesByExtension[normalized]; known {
		return true
	}
	_, known := markupExtensions[normalized]
	return known
}

// Strip removes comments from content according to the file extension
// (including the leading dot) and trims surrounding whitespace from the
// result. Content of unsupported extensions is only trimmed.
func Strip(content string, extension string) string {
	normalized := strings.ToLower(extension)
	if rule, known := lineRulesByExtension[normalized]; known {
		return strings.TrimSpace(stripLines(content, rule))
	}
	if _, known := markupExtensions[normalized]; known {
		return strings.TrimSpace(markupCommentPattern.ReplaceAllString(content, ""))
	}
	return strings.TrimSpace(content)
}

func stripLines(content string, rule lineRule) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	stateMachine := &machine{rule: rule}
	for _, line := range lines {
		if stateMachine.keep(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// machine is the {Normal, InBlockComment} state machine applied to one file.
type machine struct {
	rule   lineRule
	state  state
	closer string
}

// keep consumes one line, advancing the state, and reports whether the line survives.
func (stateMachine *machine) keep(line string) bool {
	if stateMachine.state == stateInBlockComment {
		if strings.Contains(line, stateMachine.closer) {
			stateMachine.state = stateNormal
			stateMachine.closer = ""
		}
		return false
	}

	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if stateMachine.rule.lineToken != "" && strings.HasPrefix(trimmed, stateMachine.rule.lineToken) {
		return false
	}
	for _, block := range stateMachine.rule.blocks {
		if !strings.HasPrefix(trimmed, block.opener) {
			continue
		}
		remainder := trimmed[len(block.opener):]
		if !strings.Contains(remainder, block.closer) {
			stateMachine.state = stateInBlockComment
			stateMachine.closer = block.closer
		}
		return false
	}
	return true
}
