package report_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/contriblog/internal/anonymize"
	"github.com/temirov/contriblog/internal/contribution"
	"github.com/temirov/contriblog/internal/report"
)

func sampleRecords() []contribution.Record {
	return []contribution.Record{
		{
			Type:       contribution.KindPullRequest,
			Timestamp:  time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC),
			Repository: "owner/repo",
			Target:     "main",
			Text:       "Fix bug",
			URL:        "https://example.com/pull/7",
		},
		{
			Type:       contribution.KindCommit,
			Timestamp:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
			Repository: "owner/repo",
			Text:       "feat: add feature",
			URL:        "https://example.com/commit/abc",
		},
	}
}

func TestParseFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		candidate      string
		expectedFormat report.Format
		expectError    bool
	}{
		{name: "text", candidate: "text", expectedFormat: report.FormatText},
		{name: "json_uppercase", candidate: "JSON", expectedFormat: report.FormatJSON},
		{name: "csv_padded", candidate: " csv ", expectedFormat: report.FormatCSV},
		{name: "yaml", candidate: "yaml", expectedFormat: report.FormatYAML},
		{name: "unknown", candidate: "xml", expectError: true},
		{name: "empty", candidate: "", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			parsedFormat, parseError := report.ParseFormat(testCase.candidate)
			if testCase.expectError {
				require.ErrorIs(subtest, parseError, report.ErrUnsupportedFormat)
				return
			}
			require.NoError(subtest, parseError)
			require.Equal(subtest, testCase.expectedFormat, parsedFormat)
		})
	}
}

func TestRenderTextOrdersChronologicallyAndFormatsFields(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatText, contribution.FormatOptions{})
	require.NoError(testInstance, renderError)

	reportLines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(testInstance, reportLines, 2)
	require.Equal(testInstance, "2026-01-01T12:00:00Z [commit]: owner/repo: feat: add feature", reportLines[0])
	require.Equal(testInstance, "2026-01-02T09:30:00Z [pr]: owner/repo: (main): Fix bug", reportLines[1])
}

func TestRenderTextIncludesLinksOnRequest(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatText, contribution.FormatOptions{WithLinks: true})
	require.NoError(testInstance, renderError)

	require.Contains(testInstance, rendered, "<https://example.com/commit/abc>")
	require.Contains(testInstance, rendered, "<https://example.com/pull/7>")
}

func TestRenderTextEmptyBatch(testInstance *testing.T) {
	rendered, renderError := report.Render(nil, report.FormatText, contribution.FormatOptions{})
	require.NoError(testInstance, renderError)
	require.Equal(testInstance, "No contributions to report.\n", rendered)
}

func TestRenderJSONRoundTrip(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatJSON, contribution.FormatOptions{WithLinks: true})
	require.NoError(testInstance, renderError)

	var decodedRows []map[string]any
	require.NoError(testInstance, json.Unmarshal([]byte(rendered), &decodedRows))
	require.Len(testInstance, decodedRows, 2)
	require.Equal(testInstance, "commit", decodedRows[0]["type"])
	require.Equal(testInstance, "https://example.com/commit/abc", decodedRows[0]["url"])
	require.Equal(testInstance, "pr", decodedRows[1]["type"])
	require.Equal(testInstance, "main", decodedRows[1]["target"])
}

func TestRenderJSONOmitsEmptyFields(testInstance *testing.T) {
	records := []contribution.Record{{Type: contribution.KindReview, Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}}
	rendered, renderError := report.Render(records, report.FormatJSON, contribution.FormatOptions{})
	require.NoError(testInstance, renderError)

	require.NotContains(testInstance, rendered, "repository")
	require.NotContains(testInstance, rendered, "url")
	require.Contains(testInstance, rendered, "\"type\": \"review\"")
}

func TestRenderCSVHasHeaderAndRows(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatCSV, contribution.FormatOptions{})
	require.NoError(testInstance, renderError)

	parsedRows, parseError := csv.NewReader(strings.NewReader(rendered)).ReadAll()
	require.NoError(testInstance, parseError)
	require.Len(testInstance, parsedRows, 3)
	require.Equal(testInstance, []string{"timestamp", "type", "repository", "target", "projectId", "text", "url"}, parsedRows[0])
	require.Equal(testInstance, "commit", parsedRows[1][1])
	require.Equal(testInstance, "feat: add feature", parsedRows[1][5])
	require.Empty(testInstance, parsedRows[1][6])
}

func TestRenderYAMLRoundTrip(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatYAML, contribution.FormatOptions{})
	require.NoError(testInstance, renderError)

	var decodedRows []map[string]any
	require.NoError(testInstance, yaml.Unmarshal([]byte(rendered), &decodedRows))
	require.Len(testInstance, decodedRows, 2)
	require.Equal(testInstance, "owner/repo", decodedRows[0]["repository"])
}

func TestRenderAnonymizationMatchesExportHashing(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatText, contribution.FormatOptions{Anonymize: true})
	require.NoError(testInstance, renderError)

	expectedRepository := anonymize.Repository("owner/repo")
	expectedCommitText := anonymize.Message("feat: add feature")
	expectedPullRequestText := anonymize.Text("Fix bug", contribution.KindPullRequest)

	require.Contains(testInstance, rendered, expectedRepository)
	require.Contains(testInstance, rendered, expectedCommitText)
	require.Contains(testInstance, rendered, expectedPullRequestText)
	require.NotContains(testInstance, rendered, "owner/repo")
	require.NotContains(testInstance, rendered, "Fix bug")
}

func TestRenderAnonymizationSuppressesLinks(testInstance *testing.T) {
	rendered, renderError := report.Render(sampleRecords(), report.FormatText, contribution.FormatOptions{Anonymize: true, WithLinks: true})
	require.NoError(testInstance, renderError)
	require.NotContains(testInstance, rendered, "https://example.com")
}

func TestRenderRejectsUnknownFormat(testInstance *testing.T) {
	_, renderError := report.Render(sampleRecords(), report.Format("xml"), contribution.FormatOptions{})
	require.ErrorIs(testInstance, renderError, report.ErrUnsupportedFormat)
}
