package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/repoctx/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "max_file_size = 16384") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}

	loaded, loadErr := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadErr != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", loadErr)
	}
	if loaded.MaxFileSize == nil || *loaded.MaxFileSize != 16384 || loaded.Model != "gpt-4o" {
		t.Fatalf("template should round trip through the loader: %+v", loaded)
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	homeDir := isolateHome(t)
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, Force: true})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected %s, got %s", expectedPath, path)
	}
}

func TestInitializeConfigurationRefusesOverwrite(t *testing.T) {
	workingDirectory := t.TempDir()
	options := InitOptions{WorkingDirectory: workingDirectory}
	if _, err := InitializeConfiguration(options); err != nil {
		t.Fatalf("first InitializeConfiguration error: %v", err)
	}
	if _, err := InitializeConfiguration(options); err == nil {
		t.Fatalf("expected error when configuration exists")
	}
	options.Force = true
	if _, err := InitializeConfiguration(options); err != nil {
		t.Fatalf("forced InitializeConfiguration error: %v", err)
	}
}
