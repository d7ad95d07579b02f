package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/lstree/internal/config"
)

// boolPointer returns a pointer to the provided value.
func boolPointer(value bool) *bool {
	return &value
}

// TestMerge verifies that override values win only when set.
func TestMerge(testingInstance *testing.T) {
	base := config.ApplicationConfiguration{
		FlagsFile:     "base-flags",
		Color:         "never",
		Copy:          boolPointer(false),
		StructureOnly: boolPointer(true),
	}
	base.Ignore.Extra = []string{"dist"}

	override := config.ApplicationConfiguration{
		Color: "always",
		Copy:  boolPointer(true),
	}

	merged := base.Merge(override)
	if merged.FlagsFile != "base-flags" {
		testingInstance.Errorf("expected base flags file to survive, got %q", merged.FlagsFile)
	}
	if merged.Color != "always" {
		testingInstance.Errorf("expected override color, got %q", merged.Color)
	}
	if merged.Copy == nil || !*merged.Copy {
		testingInstance.Errorf("expected override copy to win")
	}
	if merged.StructureOnly == nil || !*merged.StructureOnly {
		testingInstance.Errorf("expected base structure-only to survive")
	}
	if len(merged.Ignore.Extra) != 1 || merged.Ignore.Extra[0] != "dist" {
		testingInstance.Errorf("expected base ignore extras to survive, got %v", merged.Ignore.Extra)
	}
}

// TestLoadApplicationConfiguration verifies that the local file
// overrides the global one and missing files are not errors.
func TestLoadApplicationConfiguration(testingInstance *testing.T) {
	homeDirectory := testingInstance.TempDir()
	workingDirectory := testingInstance.TempDir()
	testingInstance.Setenv("HOME", homeDirectory)

	globalContent := "color: never\nflags_file: global-flags\n"
	if writeError := os.WriteFile(filepath.Join(homeDirectory, config.ConfigFileName), []byte(globalContent), 0o600); writeError != nil {
		testingInstance.Fatalf("writing global configuration: %v", writeError)
	}
	localContent := "color: always\nignore:\n  extra:\n    - dist\n"
	if writeError := os.WriteFile(filepath.Join(workingDirectory, config.ConfigFileName), []byte(localContent), 0o600); writeError != nil {
		testingInstance.Fatalf("writing local configuration: %v", writeError)
	}

	loaded, loadError := config.LoadApplicationConfiguration(workingDirectory)
	if loadError != nil {
		testingInstance.Fatalf("unexpected error: %v", loadError)
	}
	if loaded.Color != "always" {
		testingInstance.Errorf("expected local color to win, got %q", loaded.Color)
	}
	if loaded.FlagsFile != "global-flags" {
		testingInstance.Errorf("expected global flags file to survive, got %q", loaded.FlagsFile)
	}
	if len(loaded.Ignore.Extra) != 1 || loaded.Ignore.Extra[0] != "dist" {
		testingInstance.Errorf("expected local ignore extras, got %v", loaded.Ignore.Extra)
	}
}

// TestLoadApplicationConfigurationMissingFiles verifies the zero
// configuration when no file exists anywhere.
func TestLoadApplicationConfigurationMissingFiles(testingInstance *testing.T) {
	testingInstance.Setenv("HOME", testingInstance.TempDir())
	loaded, loadError := config.LoadApplicationConfiguration(testingInstance.TempDir())
	if loadError != nil {
		testingInstance.Fatalf("unexpected error: %v", loadError)
	}
	if loaded.FlagsFile != "" || loaded.Color != "" || loaded.Copy != nil {
		testingInstance.Errorf("expected zero configuration, got %+v", loaded)
	}
}
