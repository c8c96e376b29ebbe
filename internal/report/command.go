package report

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/contriblog/internal/contribution"
)

const (
	commandUseConstant               = "report"
	commandShortDescriptionConstant  = "Render a contribution batch as a readable report"
	commandLongDescriptionConstant   = "report reads a contribution batch and renders it chronologically as text, JSON, CSV, or YAML without touching any repository."
	inputFlagNameConstant            = "input"
	inputFlagDescriptionConstant     = "Path to the contribution batch file (JSON or YAML)"
	formatFlagNameConstant           = "format"
	formatFlagDescriptionConstant    = "Report format: text, json, csv, or yaml"
	anonymizeFlagNameConstant        = "anonymize"
	anonymizeFlagDescriptionConstant = "Replace repository names and free text with deterministic hashes"
	withLinksFlagNameConstant        = "with-links"
	withLinksFlagDescriptionConstant = "Include contribution URLs in the report"
	outputFlagNameConstant           = "output"
	outputFlagDescriptionConstant    = "Write the report to a file instead of standard output"
	missingInputPathMessageConstant  = "input path is required; supply --input"
	reportFilePermissionsConstant    = 0o644
)

// CommandBuilder assembles the report command.
type CommandBuilder struct {
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the report command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(inputFlagNameConstant, "", inputFlagDescriptionConstant)
	command.Flags().String(formatFlagNameConstant, string(FormatText), formatFlagDescriptionConstant)
	command.Flags().Bool(anonymizeFlagNameConstant, false, anonymizeFlagDescriptionConstant)
	command.Flags().Bool(withLinksFlagNameConstant, false, withLinksFlagDescriptionConstant)
	command.Flags().String(outputFlagNameConstant, "", outputFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	inputPath := configuration.InputPath
	if command.Flags().Changed(inputFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(inputFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		inputPath = strings.TrimSpace(flagValue)
	}
	if len(inputPath) == 0 {
		_ = command.Help()
		return errors.New(missingInputPathMessageConstant)
	}

	formatName := configuration.Format
	if command.Flags().Changed(formatFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(formatFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		formatName = flagValue
	}
	reportFormat, formatError := ParseFormat(formatName)
	if formatError != nil {
		return formatError
	}

	anonymizeRequested := configuration.Anonymize
	if command.Flags().Changed(anonymizeFlagNameConstant) {
		flagValue, flagError := command.Flags().GetBool(anonymizeFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		anonymizeRequested = flagValue
	}

	withLinksRequested := configuration.WithLinks
	if command.Flags().Changed(withLinksFlagNameConstant) {
		flagValue, flagError := command.Flags().GetBool(withLinksFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		withLinksRequested = flagValue
	}

	outputPath := configuration.OutputPath
	if command.Flags().Changed(outputFlagNameConstant) {
		flagValue, flagError := command.Flags().GetString(outputFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		outputPath = strings.TrimSpace(flagValue)
	}

	records, loadError := contribution.LoadRecords(inputPath)
	if loadError != nil {
		return loadError
	}

	rendered, renderError := Render(records, reportFormat, contribution.FormatOptions{
		Anonymize: anonymizeRequested,
		WithLinks: withLinksRequested,
	})
	if renderError != nil {
		return renderError
	}

	if len(outputPath) > 0 {
		return os.WriteFile(outputPath, []byte(rendered), reportFilePermissionsConstant)
	}

	_, writeError := fmt.Fprint(command.OutOrStdout(), rendered)
	return writeError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}
