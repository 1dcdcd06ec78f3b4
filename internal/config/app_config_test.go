package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwebbo/AnsibleRoleDoc/internal/config"
)

// localConfigFixture defines a local configuration overriding the dir command.
const localConfigFixture = `dir:
  format: text
  output: docs/role.txt
  clipboard: true
  tokens:
    enabled: true
    model: gpt-4o-mini
`

// globalConfigFixture defines a global configuration setting shared defaults.
const globalConfigFixture = `archive:
  format: text
dir:
  format: markdown
  watch: true
`

// TestLoadApplicationConfigurationLocalFile verifies decoding of a local
// configuration file.
func TestLoadApplicationConfigurationLocalFile(testingInstance *testing.T) {
	workingDirectory := testingInstance.TempDir()
	testingInstance.Setenv("HOME", testingInstance.TempDir())
	configPath := filepath.Join(workingDirectory, config.LocalConfigFileName)
	if writeError := os.WriteFile(configPath, []byte(localConfigFixture), 0o644); writeError != nil {
		testingInstance.Fatalf("write configuration: %v", writeError)
	}

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingInstance.Fatalf("load configuration: %v", loadError)
	}

	if loaded.Dir.Format != "text" {
		testingInstance.Errorf("unexpected format %q", loaded.Dir.Format)
	}
	if loaded.Dir.Output != "docs/role.txt" {
		testingInstance.Errorf("unexpected output %q", loaded.Dir.Output)
	}
	if loaded.Dir.Clipboard == nil || !*loaded.Dir.Clipboard {
		testingInstance.Error("clipboard default not decoded")
	}
	if loaded.Dir.Tokens.Enabled == nil || !*loaded.Dir.Tokens.Enabled {
		testingInstance.Error("tokens.enabled default not decoded")
	}
	if loaded.Dir.Tokens.Model != "gpt-4o-mini" {
		testingInstance.Errorf("unexpected tokens model %q", loaded.Dir.Tokens.Model)
	}
	if loaded.Archive.Format != "" {
		testingInstance.Errorf("archive section should be empty, got %q", loaded.Archive.Format)
	}
}

// TestLoadApplicationConfigurationMergesGlobalAndLocal verifies that local
// values override global ones while untouched global values survive.
func TestLoadApplicationConfigurationMergesGlobalAndLocal(testingInstance *testing.T) {
	homeDirectory := testingInstance.TempDir()
	testingInstance.Setenv("HOME", homeDirectory)
	globalDirectory := filepath.Join(homeDirectory, ".ansibleroledoc")
	if mkdirError := os.MkdirAll(globalDirectory, 0o755); mkdirError != nil {
		testingInstance.Fatalf("mkdir global directory: %v", mkdirError)
	}
	if writeError := os.WriteFile(filepath.Join(globalDirectory, "config.yaml"), []byte(globalConfigFixture), 0o644); writeError != nil {
		testingInstance.Fatalf("write global configuration: %v", writeError)
	}

	workingDirectory := testingInstance.TempDir()
	if writeError := os.WriteFile(filepath.Join(workingDirectory, config.LocalConfigFileName), []byte(localConfigFixture), 0o644); writeError != nil {
		testingInstance.Fatalf("write local configuration: %v", writeError)
	}

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingInstance.Fatalf("load configuration: %v", loadError)
	}

	if loaded.Dir.Format != "text" {
		testingInstance.Errorf("local format should win, got %q", loaded.Dir.Format)
	}
	if loaded.Dir.Watch == nil || !*loaded.Dir.Watch {
		testingInstance.Error("global watch default should survive the merge")
	}
	if loaded.Archive.Format != "text" {
		testingInstance.Errorf("global archive format should survive, got %q", loaded.Archive.Format)
	}
}

// TestLoadApplicationConfigurationMissingFiles verifies that absent files
// yield the zero configuration.
func TestLoadApplicationConfigurationMissingFiles(testingInstance *testing.T) {
	testingInstance.Setenv("HOME", testingInstance.TempDir())
	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: testingInstance.TempDir()})
	if loadError != nil {
		testingInstance.Fatalf("load configuration: %v", loadError)
	}
	if loaded.Dir.Format != "" || loaded.Archive.Format != "" {
		testingInstance.Errorf("expected zero configuration, got %+v", loaded)
	}
}

// TestLoadApplicationConfigurationExplicitPath verifies that an explicit
// configuration path replaces local discovery.
func TestLoadApplicationConfigurationExplicitPath(testingInstance *testing.T) {
	testingInstance.Setenv("HOME", testingInstance.TempDir())
	workingDirectory := testingInstance.TempDir()
	explicitPath := filepath.Join(workingDirectory, "custom.yaml")
	if writeError := os.WriteFile(explicitPath, []byte(localConfigFixture), 0o644); writeError != nil {
		testingInstance.Fatalf("write configuration: %v", writeError)
	}

	loaded, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: "custom.yaml",
	})
	if loadError != nil {
		testingInstance.Fatalf("load configuration: %v", loadError)
	}
	if loaded.Dir.Format != "text" {
		testingInstance.Errorf("unexpected format %q", loaded.Dir.Format)
	}
}
