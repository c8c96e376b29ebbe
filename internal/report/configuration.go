package report

import "strings"

// CommandConfiguration captures configuration values for the report command.
type CommandConfiguration struct {
	InputPath  string `mapstructure:"input"`
	Format     string `mapstructure:"format"`
	Anonymize  bool   `mapstructure:"anonymize"`
	WithLinks  bool   `mapstructure:"with_links"`
	OutputPath string `mapstructure:"output"`
}

// DefaultCommandConfiguration provides baseline configuration values for report.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		InputPath:  "",
		Format:     string(FormatText),
		Anonymize:  false,
		WithLinks:  false,
		OutputPath: "",
	}
}

// sanitize trims configuration values and restores required defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.InputPath = strings.TrimSpace(configuration.InputPath)
	sanitized.Format = strings.TrimSpace(configuration.Format)
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(FormatText)
	}
	sanitized.OutputPath = strings.TrimSpace(configuration.OutputPath)

	return sanitized
}

// DefaultConfigurationValues exposes report defaults keyed under the provided configuration prefix.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKey + ".input":      defaults.InputPath,
		configurationKey + ".format":     defaults.Format,
		configurationKey + ".anonymize":  defaults.Anonymize,
		configurationKey + ".with_links": defaults.WithLinks,
		configurationKey + ".output":     defaults.OutputPath,
	}
}
