package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/contriblog/internal/execshell"
	"github.com/temirov/contriblog/internal/ui"
)

const (
	repositoryPathConstant = "/tmp/contributions-export"
	commitMessageConstant  = "[commit]: owner/repo: feat: add feature"
)

func TestConsoleCommandEventLoggerMessages(testInstance *testing.T) {
	commitCommand := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"commit", "--allow-empty", "-m", commitMessageConstant},
			WorkingDirectory: repositoryPathConstant,
		},
	}

	testCases := []struct {
		name            string
		emit            func(eventLogger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "started_event_logs_operation_description",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandStarted(commitCommand)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Creating commit in /tmp/contributions-export with message \"[commit]: owner/repo: feat: add feature\"",
		},
		{
			name: "successful_completion_logs_info",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(commitCommand, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: "Created commit in /tmp/contributions-export with message \"[commit]: owner/repo: feat: add feature\"",
		},
		{
			name: "nonzero_exit_logs_warning",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandCompleted(commitCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: "bad object"})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: "Failed to create commit in /tmp/contributions-export with message \"[commit]: owner/repo: feat: add feature\" (exit code 128: bad object)",
		},
		{
			name: "execution_failure_logs_error",
			emit: func(eventLogger *ui.ConsoleCommandEventLogger) {
				eventLogger.CommandExecutionFailed(commitCommand, errors.New("executable not found"))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: "Unable to create commit in /tmp/contributions-export with message \"[commit]: owner/repo: feat: add feature\": executable not found",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			observedCore, observedLogs := observer.New(zapcore.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observedCore))

			testCase.emit(eventLogger)

			entries := observedLogs.All()
			require.Len(subtest, entries, 1)
			require.Equal(subtest, testCase.expectedLevel, entries[0].Level)
			require.Equal(subtest, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestNewConsoleCommandEventLoggerToleratesNilLogger(testInstance *testing.T) {
	eventLogger := ui.NewConsoleCommandEventLogger(nil)
	require.NotNil(testInstance, eventLogger)
	eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
}
