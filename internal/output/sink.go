package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/repoctx/internal/apperrors"
	"github.com/temirov/repoctx/internal/utils"
)

const (
	displayStatusLine     = "Displaying results..\n\n"
	temporaryFilePattern  = "." + utils.ApplicationName + "-*.tmp"
	outputFilePermissions = 0o644
	writeFailedFormat     = "failed to write output to %s"
)

// Sink delivers a rendered report.
type Sink interface {
	Emit(rendered string) error
}

// TerminalSink prints the report after a status line.
type TerminalSink struct {
	Writer io.Writer
}

func (sink TerminalSink) Emit(rendered string) error {
	if _, writeError := io.WriteString(sink.Writer, displayStatusLine+rendered+"\n"); writeError != nil {
		return apperrors.New(apperrors.KindOutput, "failed to print output", writeError)
	}
	return nil
}

// FileSink replaces the file at Path atomically. A failed write leaves any
// previous file untouched.
type FileSink struct {
	Path   string
	Logger *zap.Logger
}

func (sink FileSink) Emit(rendered string) error {
	logger := sink.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if writeError := writeFileAtomic(sink.Path, []byte(rendered)); writeError != nil {
		wrapped := apperrors.New(apperrors.KindOutput, fmt.Sprintf(writeFailedFormat, sink.Path), writeError)
		logger.Error("Failed to write output", zap.String("path", sink.Path), zap.Error(writeError))
		return wrapped
	}
	logger.Info("Output written", zap.String("path", sink.Path))
	return nil
}

func writeFileAtomic(path string, data []byte) (resultError error) {
	temporaryFile, createError := os.CreateTemp(filepath.Dir(path), temporaryFilePattern)
	if createError != nil {
		return createError
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if resultError != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.Write(data); writeError != nil {
		_ = temporaryFile.Close()
		return writeError
	}
	if syncError := temporaryFile.Sync(); syncError != nil {
		_ = temporaryFile.Close()
		return syncError
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return closeError
	}
	if chmodError := os.Chmod(temporaryPath, outputFilePermissions); chmodError != nil {
		return chmodError
	}
	return os.Rename(temporaryPath, path)
}

var (
	_ Sink = TerminalSink{}
	_ Sink = FileSink{}
)
