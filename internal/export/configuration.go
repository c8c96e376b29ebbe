package export

import "strings"

// CommandConfiguration captures configuration values for the export command.
type CommandConfiguration struct {
	InputPath           string `mapstructure:"input"`
	RepositoryDirectory string `mapstructure:"repository_directory"`
	Anonymize           bool   `mapstructure:"anonymize"`
}

// DefaultCommandConfiguration provides baseline configuration values for export.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		InputPath:           "",
		RepositoryDirectory: DefaultRepositoryDirectoryName,
		Anonymize:           false,
	}
}

// sanitize trims configuration values and restores required defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.InputPath = strings.TrimSpace(configuration.InputPath)
	sanitized.RepositoryDirectory = strings.TrimSpace(configuration.RepositoryDirectory)
	if len(sanitized.RepositoryDirectory) == 0 {
		sanitized.RepositoryDirectory = DefaultRepositoryDirectoryName
	}

	return sanitized
}

// DefaultConfigurationValues exposes export defaults keyed under the provided configuration prefix.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + ".input":                defaults.InputPath,
		configurationKey + ".repository_directory": defaults.RepositoryDirectory,
		configurationKey + ".anonymize":            defaults.Anonymize,
	}
}
