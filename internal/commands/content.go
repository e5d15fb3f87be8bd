package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/comments"
	"github.com/temirov/repoctx/internal/types"
)

const (
	codeFence              = "```"
	escapedCodeFence       = "&#96;&#96;&#96;"
	truncationMarkerFormat = "\n\n[Truncated: file exceeds %dKB limit]"
	readFailureFormat      = "Failed to read %s: %s"
	bytesPerKilobyte       = 1024
)

var errInvalidUTF8 = errors.New("invalid UTF-8 content")

// ContentOptions controls how a single file is rendered.
type ContentOptions struct {
	MaxFileBytes  int
	StripComments bool
	Logger        *zap.Logger
}

// RenderFileContent reads MaxFileBytes plus one byte of the file and returns its
// fence-safe text with a line count. Read failures never abort the run: the
// record carries a placeholder message and zero lines.
func RenderFileContent(path string, options ContentOptions) types.FileRecord {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	record := types.FileRecord{Path: path, Name: filepath.Base(path)}

	data, truncated, readError := readBounded(path, options.MaxFileBytes)
	if readError == nil && !utf8.Valid(data) {
		readError = errInvalidUTF8
	}
	if readError != nil {
		logger.Warn("Unable to read file", zap.Error(apperrors.New(apperrors.KindFileRead, path, readError)))
		record.Content = fmt.Sprintf(readFailureFormat, path, readError.Error())
		return record
	}

	lines := splitLines(string(data))
	for lineIndex := range lines {
		lines[lineIndex] = strings.ReplaceAll(lines[lineIndex], codeFence, escapedCodeFence)
	}
	rendered := strings.Join(lines, "\n")
	if options.StripComments {
		rendered = comments.Strip(rendered, filepath.Ext(path))
	}
	if truncated {
		rendered += fmt.Sprintf(truncationMarkerFormat, options.MaxFileBytes/bytesPerKilobyte)
	}

	record.Content = rendered
	record.Lines = len(lines)
	record.Truncated = truncated
	return record
}

// readBounded reads one byte past the limit to detect truncation and keeps
// that byte. A truncated read drops a trailing partial rune so the cut never
// splits a multi-byte sequence.
func readBounded(path string, limit int) ([]byte, bool, error) {
	if limit < 0 {
		limit = 0
	}
	file, openError := os.Open(path)
	if openError != nil {
		return nil, false, openError
	}
	defer file.Close()

	data, readError := io.ReadAll(io.LimitReader(file, int64(limit)+1))
	if readError != nil {
		return nil, false, readError
	}
	if len(data) <= limit {
		return data, false, nil
	}
	return trimIncompleteRune(data), true, nil
}

func trimIncompleteRune(data []byte) []byte {
	for cut := 0; cut < utf8.UTFMax && cut < len(data); cut++ {
		start := len(data) - 1 - cut
		if !utf8.RuneStart(data[start]) {
			continue
		}
		if utf8.FullRune(data[start:]) {
			return data
		}
		return data[:start]
	}
	return data
}

// splitLines splits on \n, \r\n and \r. A single trailing line break does
// not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	return strings.Split(normalized, "\n")
}
