package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"magnecruit-client/models"
)

// ExportFormat represents the export format
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatMarkdown ExportFormat = "markdown"
)

// jobExport wraps the artifact with export metadata.
type jobExport struct {
	Metadata map[string]string `json:"metadata"`
	Job      models.Jobs       `json:"job"`
}

// ExportJobToJSON writes the job artifact to a JSON file.
func ExportJobToJSON(job models.Jobs, path string) error {
	export := jobExport{
		Metadata: map[string]string{
			"export_version": "1.0",
			"export_date":    time.Now().Format(time.RFC3339),
			"app_name":       "Magnecruit Client",
		},
		Job: job,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ExportJobToMarkdown writes the job artifact as a readable Markdown document.
func ExportJobToMarkdown(job models.Jobs, path string) error {
	var sb strings.Builder

	title := job.Jobrole
	if title == "" {
		title = "Untitled Role"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	if job.Description != "" {
		sb.WriteString(job.Description)
		sb.WriteString("\n\n")
	}
	sb.WriteString("---\n\n")

	for i, section := range job.Sections {
		heading := section.Heading
		if heading == "" {
			heading = fmt.Sprintf("Section %d", section.SectionNumber)
		}
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", section.SectionNumber, heading))
		sb.WriteString(section.Body)
		sb.WriteString("\n\n")
		if i < len(job.Sections)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\n*Exported %s by Magnecruit Client*\n", time.Now().Format("2006-01-02 15:04:05")))

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// ResolveExportDir returns the configured export directory, creating it if
// needed, or falls back to the default location when none is configured.
func ResolveExportDir(configured string) (string, error) {
	if configured == "" {
		return GetDefaultExportPath()
	}
	dir := expandPath(configured)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return dir, nil
}

// GetDefaultExportPath returns the directory used for exports, creating it
// if needed.
func GetDefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	exportDir := filepath.Join(home, "Documents", "magnecruit-exports")
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	return exportDir, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\- ]+`)

// GenerateExportFilename builds a timestamped filename from the job role.
func GenerateExportFilename(jobrole string, format ExportFormat) string {
	name := unsafeFilenameChars.ReplaceAllString(jobrole, "")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "job_description"
	}
	if len(name) > 60 {
		name = name[:60]
	}

	ext := "json"
	if format == FormatMarkdown {
		ext = "md"
	}

	return fmt.Sprintf("%s_%s.%s", name, time.Now().Format("20060102_150405"), ext)
}
