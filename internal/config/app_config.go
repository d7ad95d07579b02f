package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFileName is the application configuration file looked up in
// the home and working directories.
const ConfigFileName = ".lstree.yaml"

// ApplicationConfiguration holds invocation defaults that command-line
// flags may override.
type ApplicationConfiguration struct {
	FlagsFile     string              `mapstructure:"flags_file"`
	Color         string              `mapstructure:"color"`
	Copy          *bool               `mapstructure:"copy"`
	StructureOnly *bool               `mapstructure:"structure_only"`
	Ignore        IgnoreConfiguration `mapstructure:"ignore"`
}

// IgnoreConfiguration extends the built-in ignore set.
type IgnoreConfiguration struct {
	Extra []string `mapstructure:"extra"`
}

// LoadApplicationConfiguration merges the global configuration from
// the home directory with the local configuration from the working
// directory, local values winning. Missing files are not errors;
// unreadable or malformed files are.
func LoadApplicationConfiguration(workingDirectory string) (ApplicationConfiguration, error) {
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalConfiguration, loadError := loadConfigurationFromPath(filepath.Join(homeDirectory, ConfigFileName))
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localConfiguration, loadError := loadConfigurationFromPath(filepath.Join(workingDirectory, ConfigFileName))
	if loadError != nil {
		return ApplicationConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

// loadConfigurationFromPath reads one configuration file through viper.
func loadConfigurationFromPath(configurationPath string) (ApplicationConfiguration, error) {
	fileInformation, statError := os.Stat(configurationPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}
	if fileInformation.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", configurationPath)
	}

	reader := viper.New()
	reader.SetConfigFile(configurationPath)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", configurationPath, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", configurationPath, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.FlagsFile != "" {
		result.FlagsFile = override.FlagsFile
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.StructureOnly != nil {
		result.StructureOnly = cloneBool(override.StructureOnly)
	}
	if len(override.Ignore.Extra) > 0 {
		result.Ignore.Extra = append([]string{}, override.Ignore.Extra...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
