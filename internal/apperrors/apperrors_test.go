package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKindThroughWrapping(t *testing.T) {
	cause := errors.New("permission denied")
	base := New(KindFileRead, "read main.go", cause)
	wrapped := fmt.Errorf("render: %w", base)

	if !IsKind(wrapped, KindFileRead) {
		t.Fatalf("expected wrapped error to report kind %s", KindFileRead)
	}
	if IsKind(wrapped, KindValidation) {
		t.Fatalf("unexpected validation kind")
	}
	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if wrapped.Error() != "render: read main.go: permission denied" {
		t.Fatalf("unexpected message %q", wrapped.Error())
	}
}

func TestErrorWithoutCause(t *testing.T) {
	err := NewValidation("Only one directory path is allowed.")
	if err.Error() != "Only one directory path is allowed." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !IsKind(err, KindValidation) {
		t.Fatalf("expected validation kind")
	}
	if IsKind(errors.New("plain"), KindValidation) {
		t.Fatalf("plain errors carry no kind")
	}
}
