package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/contriblog/internal/utils"
)

const (
	testEnvironmentPrefixConstant     = "TESTCONTRIBLOG"
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testConfigFileNameConstant        = "config.yaml"
	testConfigContentTemplateConstant = "common:\n  log_level: %s\nexport:\n  anonymize: %t\n"
	testLogLevelDefaultKeyConstant    = "common.log_level"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
	Export configurationExportFixture `mapstructure:"export"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationExportFixture struct {
	Anonymize bool `mapstructure:"anonymize"`
}

func writeConfigurationFile(testInstance *testing.T, logLevel string, anonymize bool) string {
	testInstance.Helper()
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	content := fmt.Sprintf(testConfigContentTemplateConstant, logLevel, anonymize)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o644))
	return configurationPath
}

func TestConfigurationLoaderAppliesDefaults(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	var loaded configurationFixture
	metadata, loadError := loader.LoadConfiguration("", map[string]any{testLogLevelDefaultKeyConstant: "info"}, &loaded)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "info", loaded.Common.LogLevel)
	require.Empty(testInstance, metadata.ConfigFileUsed)
	require.False(testInstance, loaded.Export.Anonymize)
}

func TestConfigurationLoaderReadsConfigurationFile(testInstance *testing.T) {
	configurationPath := writeConfigurationFile(testInstance, "debug", true)
	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	var loaded configurationFixture
	metadata, loadError := loader.LoadConfiguration(configurationPath, map[string]any{testLogLevelDefaultKeyConstant: "info"}, &loaded)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "debug", loaded.Common.LogLevel)
	require.True(testInstance, loaded.Export.Anonymize)
	require.Equal(testInstance, configurationPath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderEnvironmentOverridesFile(testInstance *testing.T) {
	configurationPath := writeConfigurationFile(testInstance, "warn", false)
	testInstance.Setenv(testEnvironmentPrefixConstant+"_COMMON_LOG_LEVEL", "error")

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	var loaded configurationFixture
	_, loadError := loader.LoadConfiguration(configurationPath, map[string]any{testLogLevelDefaultKeyConstant: "info"}, &loaded)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "error", loaded.Common.LogLevel)
}

func TestConfigurationLoaderSearchesProvidedPaths(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	configurationPath := filepath.Join(searchDirectory, testConfigFileNameConstant)
	content := fmt.Sprintf(testConfigContentTemplateConstant, "debug", false)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(content), 0o644))

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{searchDirectory})

	var loaded configurationFixture
	metadata, loadError := loader.LoadConfiguration("", nil, &loaded)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, "debug", loaded.Common.LogLevel)
	require.Equal(testInstance, configurationPath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderReportsMalformedFile(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte("common: [unbalanced"), 0o644))

	loader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	var loaded configurationFixture
	_, loadError := loader.LoadConfiguration(configurationPath, nil, &loaded)
	require.Error(testInstance, loadError)
	require.Contains(testInstance, loadError.Error(), "failed to read configuration")
}
