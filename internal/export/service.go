package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/contriblog/internal/anonymize"
	"github.com/temirov/contriblog/internal/contribution"
	"github.com/temirov/contriblog/internal/gitrepo"
)

const (
	// DefaultRepositoryDirectoryName is the fixed export location relative to
	// the invoking working directory.
	DefaultRepositoryDirectoryName = "contributions-export"

	// AuthorNameEnvironmentVariable configures the commit author name.
	AuthorNameEnvironmentVariable = "CONTRIBLOG_AUTHOR_NAME"
	// AuthorEmailEnvironmentVariable configures the commit author email.
	AuthorEmailEnvironmentVariable = "CONTRIBLOG_AUTHOR_EMAIL"

	// DefaultAuthorName is used when no author name is configured.
	DefaultAuthorName = "Contriblog Exporter"
	// DefaultAuthorEmail is used when no author email is configured.
	DefaultAuthorEmail = "contriblog@localhost"

	progressNotificationIntervalConstant = 100

	gitExecutorMissingMessageConstant       = "git executor not configured"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	toolProbeErrorTemplateConstant          = "export aborted: %w"
	initializationErrorTemplateConstant     = "export aborted: %w"

	messageSegmentSeparatorConstant = ": "
	typeSegmentTemplateConstant     = "[%s]"
	targetSegmentTemplateConstant   = "(%s)"
	projectSegmentTemplateConstant  = "{%s}"

	progressMessageConstant               = "export progress"
	skippedContributionMessageConstant    = "skipping contribution after commit failure"
	logFieldCommitsCreatedConstant        = "commits_created"
	logFieldContributionTypeConstant      = "contribution_type"
	logFieldContributionTimestampConstant = "contribution_timestamp"
	logFieldFailureConstant               = "failure"

	noContributionsSummaryConstant = "No contributions found to export."

	summaryBannerConstant             = "Export complete!"
	summaryRepositoryTemplateConstant = "Repository: %s"
	summaryTotalTemplateConstant      = "Total commits: %d"
	summaryNewTemplateConstant        = "New commits: %d"
	summaryExportedTemplateConstant   = "Contributions exported: %d"
	summaryAuthorTemplateConstant     = "Author: %s <%s>"
	summaryAnonymizedTemplateConstant = "Anonymized: %t"
	summaryPushInstructionsConstant   = `To publish the repository, add a remote and push:
  cd %s
  git remote add origin <remote-url>
  git push -u origin HEAD`
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// RepositoryManager exposes the repository operations the exporter drives.
type RepositoryManager interface {
	InitializeRepository(executionContext context.Context) (bool, error)
	CreateCommit(executionContext context.Context, request gitrepo.CommitRequest) error
	GetCommitCount(executionContext context.Context) int
	RepositoryPath() string
}

// EnvironmentLookup resolves configuration from the process environment.
type EnvironmentLookup func(name string) (string, bool)

// Dependencies enumerates external collaborators required by the exporter.
type Dependencies struct {
	GitExecutor       gitrepo.GitExecutor
	RepositoryManager RepositoryManager
	Logger            *zap.Logger
	EnvironmentLookup EnvironmentLookup
}

// SkippedContribution identifies a contribution whose commit attempt failed.
type SkippedContribution struct {
	Type      string
	Timestamp time.Time
	Reason    string
}

// Result captures the observable outcome of an export.
type Result struct {
	Summary                string
	RepositoryPath         string
	NothingToExport        bool
	RepositoryCreated      bool
	TotalCommits           int
	NewCommits             int
	SuccessfulCommits      int
	ContributionsProcessed int
	SkippedContributions   []SkippedContribution
	AuthorName             string
	AuthorEmail            string
	Anonymized             bool
}

// Service turns a contribution batch into a populated repository plus a
// human-readable summary.
type Service struct {
	executor          gitrepo.GitExecutor
	repositoryManager RepositoryManager
	logger            *zap.Logger
	environmentLookup EnvironmentLookup
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	environmentLookup := dependencies.EnvironmentLookup
	if environmentLookup == nil {
		environmentLookup = lookupProcessEnvironment
	}

	return &Service{
		executor:          dependencies.GitExecutor,
		repositoryManager: dependencies.RepositoryManager,
		logger:            logger,
		environmentLookup: environmentLookup,
	}, nil
}

// Export creates one historically dated empty commit per contribution.
//
// Commits are created strictly sequentially in ascending timestamp order:
// each commit's position in history depends on the head left by the previous
// one, so the loop must never run concurrently. Individual commit failures
// are tolerated; the batch continues and failures surface as warnings in the
// result. Only an unavailable tool or a failed repository initialization
// aborts the export.
func (service *Service) Export(executionContext context.Context, records []contribution.Record, options contribution.FormatOptions) (Result, error) {
	if probeError := gitrepo.CheckToolAvailable(executionContext, service.executor); probeError != nil {
		return Result{}, fmt.Errorf(toolProbeErrorTemplateConstant, probeError)
	}

	if len(records) == 0 {
		return Result{Summary: noContributionsSummaryConstant, NothingToExport: true}, nil
	}

	authorName, authorEmail := service.resolveAuthorIdentity()

	repositoryCreated, initializationError := service.repositoryManager.InitializeRepository(executionContext)
	if initializationError != nil {
		return Result{}, fmt.Errorf(initializationErrorTemplateConstant, initializationError)
	}

	// Baseline measured after initialization, before this batch adds history.
	baselineCommitCount := service.repositoryManager.GetCommitCount(executionContext)

	sortedRecords := contribution.SortChronologically(records)

	successfulCommits := 0
	var skippedContributions []SkippedContribution
	for _, record := range sortedRecords {
		commitRequest := gitrepo.CommitRequest{
			Message:     BuildCommitMessage(record, options),
			AuthorName:  authorName,
			AuthorEmail: authorEmail,
			Date:        record.Timestamp,
		}

		if commitError := service.repositoryManager.CreateCommit(executionContext, commitRequest); commitError != nil {
			skippedContributions = append(skippedContributions, SkippedContribution{
				Type:      record.Type,
				Timestamp: record.Timestamp,
				Reason:    commitError.Error(),
			})
			service.logger.Warn(
				skippedContributionMessageConstant,
				zap.String(logFieldContributionTypeConstant, record.Type),
				zap.Time(logFieldContributionTimestampConstant, record.Timestamp),
				zap.String(logFieldFailureConstant, commitError.Error()),
			)
			continue
		}

		successfulCommits++
		if successfulCommits%progressNotificationIntervalConstant == 0 {
			service.logger.Info(progressMessageConstant, zap.Int(logFieldCommitsCreatedConstant, successfulCommits))
		}
	}

	// Recount instead of trusting the running counter so concurrent external
	// mutation of the repository is reflected rather than silently ignored.
	totalCommits := service.repositoryManager.GetCommitCount(executionContext)
	newCommits := totalCommits - baselineCommitCount

	result := Result{
		RepositoryPath:         service.repositoryManager.RepositoryPath(),
		RepositoryCreated:      repositoryCreated,
		TotalCommits:           totalCommits,
		NewCommits:             newCommits,
		SuccessfulCommits:      successfulCommits,
		ContributionsProcessed: len(records),
		SkippedContributions:   skippedContributions,
		AuthorName:             authorName,
		AuthorEmail:            authorEmail,
		Anonymized:             options.Anonymize,
	}
	result.Summary = buildSummary(result)

	return result, nil
}

func (service *Service) resolveAuthorIdentity() (string, string) {
	authorName := DefaultAuthorName
	if configuredName, present := service.environmentLookup(AuthorNameEnvironmentVariable); present && len(strings.TrimSpace(configuredName)) > 0 {
		authorName = strings.TrimSpace(configuredName)
	}

	authorEmail := DefaultAuthorEmail
	if configuredEmail, present := service.environmentLookup(AuthorEmailEnvironmentVariable); present && len(strings.TrimSpace(configuredEmail)) > 0 {
		authorEmail = strings.TrimSpace(configuredEmail)
	}

	return authorName, authorEmail
}

// BuildCommitMessage assembles the commit message for one contribution.
// Omitted fields are dropped entirely; the remaining segments are joined
// with ": ". Anonymization applies independently to the repository and text
// segments only.
func BuildCommitMessage(record contribution.Record, options contribution.FormatOptions) string {
	messageSegments := []string{fmt.Sprintf(typeSegmentTemplateConstant, record.Type)}

	if len(record.Repository) > 0 {
		repositorySegment := record.Repository
		if options.Anonymize {
			repositorySegment = anonymize.Repository(record.Repository)
		}
		messageSegments = append(messageSegments, repositorySegment)
	}

	if len(record.Target) > 0 {
		messageSegments = append(messageSegments, fmt.Sprintf(targetSegmentTemplateConstant, record.Target))
	}

	if len(record.ProjectID) > 0 {
		messageSegments = append(messageSegments, fmt.Sprintf(projectSegmentTemplateConstant, record.ProjectID))
	}

	if len(record.Text) > 0 {
		textSegment := record.Text
		if options.Anonymize {
			textSegment = anonymize.Message(record.Text)
		}
		messageSegments = append(messageSegments, textSegment)
	}

	return strings.Join(messageSegments, messageSegmentSeparatorConstant)
}

func buildSummary(result Result) string {
	summaryLines := []string{
		summaryBannerConstant,
		fmt.Sprintf(summaryRepositoryTemplateConstant, result.RepositoryPath),
		fmt.Sprintf(summaryTotalTemplateConstant, result.TotalCommits),
		fmt.Sprintf(summaryNewTemplateConstant, result.NewCommits),
		fmt.Sprintf(summaryExportedTemplateConstant, result.ContributionsProcessed),
		fmt.Sprintf(summaryAuthorTemplateConstant, result.AuthorName, result.AuthorEmail),
		fmt.Sprintf(summaryAnonymizedTemplateConstant, result.Anonymized),
		"",
		fmt.Sprintf(summaryPushInstructionsConstant, result.RepositoryPath),
	}
	return strings.Join(summaryLines, "\n")
}

func lookupProcessEnvironment(name string) (string, bool) {
	return os.LookupEnv(name)
}
