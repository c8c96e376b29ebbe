package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/contriblog/internal/execshell"
)

const (
	gitExecutorMissingMessageConstant      = "git executor not configured"
	repositoryPathMissingMessageConstant   = "repository path must be provided"
	toolUnavailableMessageConstant         = "git is not available"
	directoryCreationErrorTemplateConstant = "unable to create repository directory %s: %w"
	initializationErrorTemplateConstant    = "unable to initialize repository at %s: %w"
	signingConfigErrorTemplateConstant     = "unable to disable commit signing at %s: %w"
	commitCreationErrorTemplateConstant    = "unable to create commit: %w"

	gitControlDirectoryNameConstant = ".git"
	repositoryDirectoryPermissions  = 0o755

	gitVersionFlagConstant          = "--version"
	gitInitSubcommandConstant       = "init"
	gitConfigSubcommandConstant     = "config"
	gitCommitSubcommandConstant     = "commit"
	gitRevListSubcommandConstant    = "rev-list"
	gitRevListCountFlagConstant     = "--count"
	gitHeadReferenceConstant        = "HEAD"
	gitAllowEmptyFlagConstant       = "--allow-empty"
	gitMessageFlagConstant          = "-m"
	gitAuthorFlagTemplateConstant   = "--author=%s <%s>"
	gitSigningConfigKeyConstant     = "commit.gpgsign"
	gitSigningDisabledValueConstant = "false"

	gitAuthorDateEnvironmentNameConstant     = "GIT_AUTHOR_DATE"
	gitCommitterDateEnvironmentNameConstant  = "GIT_COMMITTER_DATE"
	gitCommitterNameEnvironmentNameConstant  = "GIT_COMMITTER_NAME"
	gitCommitterEmailEnvironmentNameConstant = "GIT_COMMITTER_EMAIL"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryPathRequired indicates the manager was constructed without a location.
var ErrRepositoryPathRequired = errors.New(repositoryPathMissingMessageConstant)

// ErrToolUnavailable indicates the git executable could not be invoked.
var ErrToolUnavailable = errors.New(toolUnavailableMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommitRequest describes one synthetic commit to append to the repository.
type CommitRequest struct {
	Message     string
	AuthorName  string
	AuthorEmail string
	Date        time.Time
}

// RepositoryManager owns one on-disk repository location and translates
// logical commit requests into git CLI invocations.
//
// Commit metadata that git reads from the process environment (author and
// committer dates, committer identity) is attached as a per-invocation
// environment map on the single subprocess call that needs it. The host
// process environment is never mutated, so a failed commit cannot leak
// state into later operations.
type RepositoryManager struct {
	executor       GitExecutor
	fileSystem     FileSystem
	repositoryPath string
}

// NewRepositoryManager constructs a manager for the provided location.
func NewRepositoryManager(executor GitExecutor, repositoryPath string) (*RepositoryManager, error) {
	return NewRepositoryManagerWithFileSystem(executor, repositoryPath, OSFileSystem{})
}

// NewRepositoryManagerWithFileSystem constructs a manager with an explicit filesystem, primarily for tests.
func NewRepositoryManagerWithFileSystem(executor GitExecutor, repositoryPath string, fileSystem FileSystem) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return nil, ErrRepositoryPathRequired
	}
	return &RepositoryManager{executor: executor, fileSystem: fileSystem, repositoryPath: trimmedRepositoryPath}, nil
}

// RepositoryPath returns the managed on-disk location.
func (manager *RepositoryManager) RepositoryPath() string {
	return manager.repositoryPath
}

// InitializeRepository ensures the backing directory exists and holds an
// initialized repository. It reports true when the repository was newly
// created and false when one already existed.
//
// Presence is detected by the control directory at the exact target path.
// A tool-level "inside a work tree" query would false-positive when the
// target sits underneath an unrelated enclosing repository, so it is
// deliberately not used.
func (manager *RepositoryManager) InitializeRepository(executionContext context.Context) (bool, error) {
	if directoryError := manager.fileSystem.MkdirAll(manager.repositoryPath, repositoryDirectoryPermissions); directoryError != nil {
		return false, fmt.Errorf(directoryCreationErrorTemplateConstant, manager.repositoryPath, directoryError)
	}

	controlDirectoryPath := filepath.Join(manager.repositoryPath, gitControlDirectoryNameConstant)
	if _, statError := manager.fileSystem.Stat(controlDirectoryPath); statError == nil {
		return false, nil
	}

	if _, initializationError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitInitSubcommandConstant},
		WorkingDirectory: manager.repositoryPath,
	}); initializationError != nil {
		return false, fmt.Errorf(initializationErrorTemplateConstant, manager.repositoryPath, initializationError)
	}

	// Commit creation must never block on a signing setup the host may carry.
	if _, configurationError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitConfigSubcommandConstant, gitSigningConfigKeyConstant, gitSigningDisabledValueConstant},
		WorkingDirectory: manager.repositoryPath,
	}); configurationError != nil {
		return false, fmt.Errorf(signingConfigErrorTemplateConstant, manager.repositoryPath, configurationError)
	}

	return true, nil
}

// CreateCommit appends one empty, historically dated commit attributed to the
// requested identity as both author and committer.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, request CommitRequest) error {
	formattedDate := request.Date.Format(time.RFC3339)

	commitDetails := execshell.CommandDetails{
		Arguments: []string{
			gitCommitSubcommandConstant,
			gitAllowEmptyFlagConstant,
			gitMessageFlagConstant,
			request.Message,
			fmt.Sprintf(gitAuthorFlagTemplateConstant, request.AuthorName, request.AuthorEmail),
		},
		WorkingDirectory: manager.repositoryPath,
		EnvironmentVariables: map[string]string{
			gitAuthorDateEnvironmentNameConstant:     formattedDate,
			gitCommitterDateEnvironmentNameConstant:  formattedDate,
			gitCommitterNameEnvironmentNameConstant:  request.AuthorName,
			gitCommitterEmailEnvironmentNameConstant: request.AuthorEmail,
		},
	}

	if _, commitError := manager.executor.ExecuteGit(executionContext, commitDetails); commitError != nil {
		return fmt.Errorf(commitCreationErrorTemplateConstant, commitError)
	}
	return nil
}

// GetCommitCount returns the total number of commits in the repository
// history. Failures (including an empty or uninitialized history) read as
// zero rather than propagating.
func (manager *RepositoryManager) GetCommitCount(executionContext context.Context) int {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevListSubcommandConstant, gitRevListCountFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: manager.repositoryPath,
	})
	if executionError != nil {
		return 0
	}

	commitCount, parseError := strconv.Atoi(strings.TrimSpace(executionResult.StandardOutput))
	if parseError != nil {
		return 0
	}
	return commitCount
}

// CheckToolAvailable probes the git executable without requiring a manager instance.
func CheckToolAvailable(executionContext context.Context, executor GitExecutor) error {
	if executor == nil {
		return ErrGitExecutorNotConfigured
	}
	if _, probeError := executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitVersionFlagConstant},
	}); probeError != nil {
		return fmt.Errorf("%w: %v", ErrToolUnavailable, probeError)
	}
	return nil
}
