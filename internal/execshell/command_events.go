package execshell

import "go.uber.org/zap"

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports unexpected failures prior to receiving an execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// zapCommandEventLogger renders lifecycle events as structured log entries.
type zapCommandEventLogger struct {
	logger    *zap.Logger
	formatter CommandMessageFormatter
}

func newZapCommandEventLogger(logger *zap.Logger) *zapCommandEventLogger {
	return &zapCommandEventLogger{logger: logger, formatter: CommandMessageFormatter{}}
}

// CommandStarted logs the start of a command at debug level.
func (eventLogger *zapCommandEventLogger) CommandStarted(command ShellCommand) {
	eventLogger.logger.Debug(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted logs command completion, downgrading to warn on non-zero exit codes.
func (eventLogger *zapCommandEventLogger) CommandCompleted(command ShellCommand, result ExecutionResult) {
	if result.ExitCode == 0 {
		eventLogger.logger.Debug(eventLogger.formatter.BuildSuccessMessageWithResult(command, result))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed logs failures that prevented the command from producing an exit code.
func (eventLogger *zapCommandEventLogger) CommandExecutionFailed(command ShellCommand, failure error) {
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
