package clipboard

import "testing"

func TestCopierFunc(t *testing.T) {
	var captured string
	copier := CopierFunc(func(text string) error {
		captured = text
		return nil
	})
	if err := copier.Copy("# Repository Context"); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	if captured != "# Repository Context" {
		t.Fatalf("unexpected captured text %q", captured)
	}
}
