// Package dependencies resolves optional command collaborators to defaults.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/contriblog/internal/execshell"
	"github.com/temirov/contriblog/internal/gitrepo"
	"github.com/temirov/contriblog/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
// Human-readable logging swaps the structured command event logger for a console one.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(ui.NewConsoleCommandEventLogger(logger), commandRunner)
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

// ResolveRepositoryManager returns the provided manager or constructs one rooted at repositoryPath.
func ResolveRepositoryManager(existing *gitrepo.RepositoryManager, executor gitrepo.GitExecutor, repositoryPath string) (*gitrepo.RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor, repositoryPath)
}
