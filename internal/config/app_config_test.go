package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/repoctx/internal/utils"
)

func writeConfig(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func isolateHome(t *testing.T) string {
	t.Helper()
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	return homeDir
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	homeDir := isolateHome(t)
	workingDirectory := t.TempDir()
	writeConfig(t, filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName),
		"recent = true\nmax_file_size = 1024\nmodel = \"gpt-4\"\nexclude = [\"vendor/\"]\n")
	writeConfig(t, filepath.Join(workingDirectory, utils.LocalConfigFileName),
		"max_file_size = 2048\npaths = [\"src\"]\nexclude = [\"*.log\", \"*.log\"]\n")

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loaded.Recent == nil || !*loaded.Recent {
		t.Fatalf("expected recent from global configuration")
	}
	if loaded.MaxFileSize == nil || *loaded.MaxFileSize != 2048 {
		t.Fatalf("expected local max_file_size to win, got %v", loaded.MaxFileSize)
	}
	if loaded.Model != "gpt-4" {
		t.Fatalf("expected model from global configuration, got %q", loaded.Model)
	}
	if strings.Join(loaded.Paths, ",") != "src" {
		t.Fatalf("unexpected paths %v", loaded.Paths)
	}
	if strings.Join(loaded.Exclude, ",") != "*.log" {
		t.Fatalf("expected deduplicated local exclude, got %v", loaded.Exclude)
	}
	if loaded.Verbose != nil || loaded.Output != "" {
		t.Fatalf("absent keys must stay unset: %+v", loaded)
	}
}

func TestLoadApplicationConfigurationWeakTyping(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	writeConfig(t, filepath.Join(workingDirectory, utils.LocalConfigFileName),
		"recent = \"true\"\nmax_file_size = \"4096\"\npaths = \"lib\"\noutput = \"context.md\"\n")

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loaded.Recent == nil || !*loaded.Recent {
		t.Fatalf("expected string boolean to decode")
	}
	if loaded.MaxFileSize == nil || *loaded.MaxFileSize != 4096 {
		t.Fatalf("expected string integer to decode, got %v", loaded.MaxFileSize)
	}
	if strings.Join(loaded.Paths, ",") != "lib" || loaded.Output != "context.md" {
		t.Fatalf("unexpected configuration %+v", loaded)
	}
}

func TestLoadApplicationConfigurationExplicitPath(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	writeConfig(t, filepath.Join(workingDirectory, utils.LocalConfigFileName), "verbose = true\n")
	writeConfig(t, filepath.Join(workingDirectory, "custom.toml"), "strip_comments = true\n")

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, ExplicitFilePath: "custom.toml"})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loaded.Verbose != nil {
		t.Fatalf("explicit configuration must replace the local file")
	}
	if loaded.StripComments == nil || !*loaded.StripComments {
		t.Fatalf("expected strip_comments from explicit file")
	}
}

func TestLoadApplicationConfigurationMalformedFileWarns(t *testing.T) {
	homeDir := isolateHome(t)
	workingDirectory := t.TempDir()
	writeConfig(t, filepath.Join(homeDir, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName), "tokens = true\n")
	writeConfig(t, filepath.Join(workingDirectory, utils.LocalConfigFileName), "recent = [unterminated\n")
	core, logs := observer.New(zap.WarnLevel)

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory, Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("malformed configuration must not be fatal: %v", err)
	}
	if loaded.Tokens == nil || !*loaded.Tokens {
		t.Fatalf("valid global configuration should still apply")
	}
	if loaded.Recent != nil {
		t.Fatalf("malformed local configuration must be ignored")
	}
	if logs.FilterMessage("Ignoring configuration file").Len() != 1 {
		t.Fatalf("expected a single warning, got %d", logs.Len())
	}
}

func TestLoadApplicationConfigurationMissingFiles(t *testing.T) {
	isolateHome(t)
	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadApplicationConfiguration error: %v", err)
	}
	if loaded.Recent != nil || loaded.MaxFileSize != nil || len(loaded.Paths) != 0 {
		t.Fatalf("expected empty configuration, got %+v", loaded)
	}
}
