package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/contriblog/internal/contribution"
	"github.com/temirov/contriblog/internal/dependencies"
	"github.com/temirov/contriblog/internal/gitrepo"
)

const (
	commandUseConstant               = "export"
	commandShortDescriptionConstant  = "Synthesize a git repository from a contribution batch"
	commandLongDescriptionConstant   = "export reads a contribution batch and creates one historically dated empty commit per contribution inside a dedicated repository."
	inputFlagNameConstant            = "input"
	inputFlagDescriptionConstant     = "Path to the contribution batch file (JSON or YAML)"
	anonymizeFlagNameConstant        = "anonymize"
	anonymizeFlagDescriptionConstant = "Replace repository names and free text with deterministic hashes"
	missingInputPathMessageConstant  = "input path is required; supply --input"
	summaryOutputTemplateConstant    = "%s\n"
	skippedWarningTemplateConstant   = "WARNING: skipped %s contribution at %s: %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the export command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	RepositoryManager            RepositoryManager
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the export command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(inputFlagNameConstant, "", inputFlagDescriptionConstant)
	command.Flags().Bool(anonymizeFlagNameConstant, false, anonymizeFlagDescriptionConstant)

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

	anonymizeRequested := configuration.Anonymize
	if command.Flags().Changed(anonymizeFlagNameConstant) {
		flagValue, flagError := command.Flags().GetBool(anonymizeFlagNameConstant)
		if flagError != nil {
			return flagError
		}
		anonymizeRequested = flagValue
	}

	records, loadError := contribution.LoadRecords(inputPath)
	if loadError != nil {
		return loadError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager := builder.RepositoryManager
	if repositoryManager == nil {
		resolvedManager, managerError := dependencies.ResolveRepositoryManager(nil, gitExecutor, configuration.RepositoryDirectory)
		if managerError != nil {
			return managerError
		}
		repositoryManager = resolvedManager
	}

	service, serviceCreationError := NewService(Dependencies{
		GitExecutor:       gitExecutor,
		RepositoryManager: repositoryManager,
		Logger:            logger,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	result, exportError := service.Export(command.Context(), records, contribution.FormatOptions{Anonymize: anonymizeRequested})
	if exportError != nil {
		return exportError
	}

	for _, skipped := range result.SkippedContributions {
		fmt.Fprintf(command.ErrOrStderr(), skippedWarningTemplateConstant, skipped.Type, skipped.Timestamp.Format(time.RFC3339), skipped.Reason)
	}
	fmt.Fprintf(command.OutOrStdout(), summaryOutputTemplateConstant, result.Summary)

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
