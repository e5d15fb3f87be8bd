// Package apperrors tags errors with the kind of failure that produced them so
// callers can decide which failures are fatal and which are recovered inline.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an AppError.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindFileRead    Kind = "file_read"
	KindStat        Kind = "stat"
	KindGitLookup   Kind = "git_lookup"
	KindConfigParse Kind = "config_parse"
	KindOutput      Kind = "output"
)

// AppError is an error carrying a Kind and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New builds an AppError of the given kind.
func New(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func NewValidation(message string) error {
	return New(KindValidation, message, nil)
}

func NewNotFound(message string) error {
	return New(KindNotFound, message, nil)
}

// IsKind reports whether err, or anything it wraps, is an AppError of kind.
func IsKind(err error, kind Kind) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Kind == kind
	}
	return false
}
