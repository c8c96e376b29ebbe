package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesGitOperations(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}

	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		expectedStart   string
		expectedSuccess string
	}{
		{
			name:            "version_probe",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"--version"}}},
			result:          ExecutionResult{StandardOutput: "git version 2.43.0\n"},
			expectedStart:   "Probing git availability",
			expectedSuccess: "git is available (git version 2.43.0)",
		},
		{
			name:            "repository_initialization",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"init"}, WorkingDirectory: "/tmp/export"}},
			expectedStart:   "Initializing repository at /tmp/export",
			expectedSuccess: "Initialized repository at /tmp/export",
		},
		{
			name:            "configuration_update",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"config", "commit.gpgsign", "false"}, WorkingDirectory: "/tmp/export"}},
			expectedStart:   "Setting commit.gpgsign in /tmp/export",
			expectedSuccess: "Set commit.gpgsign in /tmp/export",
		},
		{
			name:            "commit_creation",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"commit", "--allow-empty", "-m", "[commit]: work"}, WorkingDirectory: "/tmp/export"}},
			expectedStart:   `Creating commit in /tmp/export with message "[commit]: work"`,
			expectedSuccess: `Created commit in /tmp/export with message "[commit]: work"`,
		},
		{
			name:            "commit_count",
			command:         ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-list", "--count", "HEAD"}, WorkingDirectory: "/tmp/export"}},
			result:          ExecutionResult{StandardOutput: "7\n"},
			expectedStart:   "Counting commits in /tmp/export",
			expectedSuccess: "Counted 7 commits in /tmp/export",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedStart, formatter.BuildStartedMessage(testCase.command))
			require.Equal(testInstance, testCase.expectedSuccess, formatter.BuildSuccessMessageWithResult(testCase.command, testCase.result))
		})
	}
}

func TestCommandMessageFormatterFailureMessages(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"commit", "-m", "message"}, WorkingDirectory: "/tmp/export"}}

	failureMessage := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "bad object\n"})
	require.Equal(testInstance, `Failed to create commit in /tmp/export with message "message" (exit code 128: bad object)`, failureMessage)

	executionFailureMessage := formatter.BuildExecutionFailureMessage(command, errors.New("executable not found"))
	require.Equal(testInstance, `Unable to create commit in /tmp/export with message "message": executable not found`, executionFailureMessage)
}

func TestCommandMessageFormatterGenericFallback(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"status"}, WorkingDirectory: "/tmp/export"}}

	require.Equal(testInstance, "Running git status (in /tmp/export)", formatter.BuildStartedMessage(command))
	require.Equal(testInstance, "Completed git status (in /tmp/export)", formatter.BuildSuccessMessage(command))
}
