package contribution

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	jsonFileExtensionConstant             = ".json"
	yamlFileExtensionConstant             = ".yaml"
	yamlShortFileExtensionConstant        = ".yml"
	inputReadErrorTemplateConstant        = "unable to read contributions file: %w"
	jsonDecodeErrorTemplateConstant       = "unable to parse JSON contributions: %w"
	yamlDecodeErrorTemplateConstant       = "unable to parse YAML contributions: %w"
	unsupportedExtensionTemplateConstant  = "unsupported contributions file extension %q (expected .json, .yaml, or .yml)"
	missingTypeErrorTemplateConstant      = "contribution %d: type is required"
	missingTimestampErrorTemplateConstant = "contribution %d: timestamp is required"
	invalidTimestampErrorTemplateConstant = "contribution %d: unparseable timestamp %q"
	dateOnlyTimestampLayoutConstant       = "2006-01-02"
)

// recordDocument is the wire representation of a contribution record.
type recordDocument struct {
	Type       string `json:"type" yaml:"type"`
	Timestamp  string `json:"timestamp" yaml:"timestamp"`
	Repository string `json:"repository,omitempty" yaml:"repository,omitempty"`
	ProjectID  string `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	Target     string `json:"target,omitempty" yaml:"target,omitempty"`
	Text       string `json:"text,omitempty" yaml:"text,omitempty"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
}

// LoadRecords reads a caller-supplied contribution batch from a JSON or YAML
// file. Validation is limited to field presence: every record needs a type
// and a timestamp parseable to an absolute instant.
func LoadRecords(inputPath string) ([]Record, error) {
	fileContents, readError := os.ReadFile(inputPath)
	if readError != nil {
		return nil, fmt.Errorf(inputReadErrorTemplateConstant, readError)
	}

	var documents []recordDocument
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case jsonFileExtensionConstant:
		if decodeError := json.Unmarshal(fileContents, &documents); decodeError != nil {
			return nil, fmt.Errorf(jsonDecodeErrorTemplateConstant, decodeError)
		}
	case yamlFileExtensionConstant, yamlShortFileExtensionConstant:
		if decodeError := yaml.Unmarshal(fileContents, &documents); decodeError != nil {
			return nil, fmt.Errorf(yamlDecodeErrorTemplateConstant, decodeError)
		}
	default:
		return nil, fmt.Errorf(unsupportedExtensionTemplateConstant, filepath.Ext(inputPath))
	}

	return convertDocuments(documents)
}

func convertDocuments(documents []recordDocument) ([]Record, error) {
	records := make([]Record, 0, len(documents))
	for documentIndex, document := range documents {
		trimmedType := strings.TrimSpace(document.Type)
		if len(trimmedType) == 0 {
			return nil, fmt.Errorf(missingTypeErrorTemplateConstant, documentIndex)
		}

		trimmedTimestamp := strings.TrimSpace(document.Timestamp)
		if len(trimmedTimestamp) == 0 {
			return nil, fmt.Errorf(missingTimestampErrorTemplateConstant, documentIndex)
		}

		parsedTimestamp, parseError := parseTimestamp(trimmedTimestamp)
		if parseError != nil {
			return nil, fmt.Errorf(invalidTimestampErrorTemplateConstant, documentIndex, trimmedTimestamp)
		}

		records = append(records, Record{
			Type:       trimmedType,
			Timestamp:  parsedTimestamp,
			Repository: document.Repository,
			ProjectID:  document.ProjectID,
			Target:     document.Target,
			Text:       document.Text,
			URL:        document.URL,
		})
	}
	return records, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if parsedTimestamp, parseError := time.Parse(time.RFC3339, value); parseError == nil {
		return parsedTimestamp, nil
	}
	return time.Parse(dateOnlyTimestampLayoutConstant, value)
}
