package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/temirov/contriblog/internal/anonymize"
	"github.com/temirov/contriblog/internal/contribution"
)

// Format identifies a supported report rendering.
type Format string

// Supported report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

const (
	unsupportedFormatMessageConstant  = "unsupported report format"
	unsupportedFormatTemplateConstant = "%w: %q"
	timestampLayoutConstant           = time.RFC3339
	textLineTemplateConstant          = "%s %s"
	textLinkSuffixTemplateConstant    = " <%s>"
	jsonIndentConstant                = "  "
	emptyReportTextConstant           = "No contributions to report."
)

// ErrUnsupportedFormat indicates the requested report format is not recognized.
var ErrUnsupportedFormat = errors.New(unsupportedFormatMessageConstant)

// ParseFormat validates a textual format name.
func ParseFormat(candidate string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(candidate)))
	switch normalized {
	case FormatText, FormatJSON, FormatCSV, FormatYAML:
		return normalized, nil
	}
	return "", fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, candidate)
}

// row is the flattened, render-ready view of one contribution.
type row struct {
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
	Type       string `json:"type" yaml:"type"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
	Target     string `json:"target,omitempty" yaml:"target,omitempty"`
	ProjectID  string `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Render produces a chronological report of the contribution batch in the
// requested format. Anonymization applies the same deterministic hashing the
// exporter uses, so a report and an anonymized export stay consistent.
func Render(records []contribution.Record, format Format, options contribution.FormatOptions) (string, error) {
	rows := buildRows(records, options)

	switch format {
	case FormatText:
		return renderText(rows), nil
	case FormatJSON:
		return renderJSON(rows)
	case FormatCSV:
		return renderCSV(rows)
	case FormatYAML:
		return renderYAML(rows)
	}
	return "", fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, string(format))
}

func buildRows(records []contribution.Record, options contribution.FormatOptions) []row {
	sortedRecords := contribution.SortChronologically(records)

	rows := make([]row, 0, len(sortedRecords))
	for _, record := range sortedRecords {
		reportRow := row{
			Timestamp:  record.Timestamp.Format(timestampLayoutConstant),
			Type:       record.Type,
			Repository: record.Repository,
			Target:     record.Target,
			ProjectID:  record.ProjectID,
			Text:       record.Text,
		}

		if options.Anonymize {
			if len(record.Repository) > 0 {
				reportRow.Repository = anonymize.Repository(record.Repository)
			}
			if len(record.Text) > 0 {
				reportRow.Text = anonymize.Text(record.Text, record.Type)
			}
		}

		// Links identify the author and the concrete change, so they are
		// dropped unless explicitly requested and never survive anonymization.
		if options.WithLinks && !options.Anonymize {
			reportRow.URL = record.URL
		}

		rows = append(rows, reportRow)
	}

	return rows
}

func renderText(rows []row) string {
	if len(rows) == 0 {
		return emptyReportTextConstant + "\n"
	}

	var builder strings.Builder
	for _, reportRow := range rows {
		lineSegments := []string{fmt.Sprintf("[%s]", reportRow.Type)}
		if len(reportRow.Repository) > 0 {
			lineSegments = append(lineSegments, reportRow.Repository)
		}
		if len(reportRow.Target) > 0 {
			lineSegments = append(lineSegments, fmt.Sprintf("(%s)", reportRow.Target))
		}
		if len(reportRow.ProjectID) > 0 {
			lineSegments = append(lineSegments, fmt.Sprintf("{%s}", reportRow.ProjectID))
		}
		if len(reportRow.Text) > 0 {
			lineSegments = append(lineSegments, reportRow.Text)
		}

		line := fmt.Sprintf(textLineTemplateConstant, reportRow.Timestamp, strings.Join(lineSegments, ": "))
		if len(reportRow.URL) > 0 {
			line += fmt.Sprintf(textLinkSuffixTemplateConstant, reportRow.URL)
		}

		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

func renderJSON(rows []row) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", jsonIndentConstant)
	if encodeError := encoder.Encode(rows); encodeError != nil {
		return "", encodeError
	}
	return buffer.String(), nil
}

func renderCSV(rows []row) (string, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	header := []string{"timestamp", "type", "repository", "target", "projectId", "text", "url"}
	if writeError := writer.Write(header); writeError != nil {
		return "", writeError
	}
	for _, reportRow := range rows {
		record := []string{
			reportRow.Timestamp,
			reportRow.Type,
			reportRow.Repository,
			reportRow.Target,
			reportRow.ProjectID,
			reportRow.Text,
			reportRow.URL,
		}
		if writeError := writer.Write(record); writeError != nil {
			return "", writeError
		}
	}
	writer.Flush()
	if flushError := writer.Error(); flushError != nil {
		return "", flushError
	}
	return buffer.String(), nil
}

func renderYAML(rows []row) (string, error) {
	encoded, encodeError := yaml.Marshal(rows)
	if encodeError != nil {
		return "", encodeError
	}
	return string(encoded), nil
}
