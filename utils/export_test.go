package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"magnecruit-client/models"
)

func sampleJob() models.Jobs {
	return models.Jobs{
		ID:             4,
		ConversationID: 7,
		Jobrole:        "Backend Engineer",
		Description:    "Own our Go services.",
		Sections: []models.JobSection{
			{ID: 1, SectionNumber: 1, Heading: "Responsibilities", Body: "Ship features."},
			{ID: 2, SectionNumber: 2, Heading: "Qualifications", Body: "Go experience."},
		},
	}
}

func TestResolveExportDirPrefersConfiguredDirectory(t *testing.T) {
	configured := filepath.Join(t.TempDir(), "exports")

	dir, err := ResolveExportDir(configured)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if dir != configured {
		t.Errorf("expected %q, got %q", configured, dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("expected %q to be a directory", dir)
	}
}

func TestResolveExportDirFallsBackToDefault(t *testing.T) {
	dir, err := ResolveExportDir("")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !strings.Contains(dir, "magnecruit-exports") {
		t.Errorf("expected default export directory, got %q", dir)
	}
}

func TestExportJobToMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.md")
	if err := ExportJobToMarkdown(sampleJob(), path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	content := string(data)

	for _, want := range []string{"# Backend Engineer", "## 1. Responsibilities", "## 2. Qualifications", "Ship features."} {
		if !strings.Contains(content, want) {
			t.Errorf("markdown missing %q:\n%s", want, content)
		}
	}
}

func TestExportJobToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.json")
	if err := ExportJobToJSON(sampleJob(), path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var export jobExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("exported JSON is invalid: %v", err)
	}
	if export.Job.Jobrole != "Backend Engineer" {
		t.Errorf("job role mismatch: %q", export.Job.Jobrole)
	}
	if len(export.Job.Sections) != 2 {
		t.Errorf("expected 2 sections, got %d", len(export.Job.Sections))
	}
	if export.Metadata["app_name"] == "" {
		t.Error("export metadata missing app name")
	}
}

func TestGenerateExportFilename(t *testing.T) {
	name := GenerateExportFilename("Senior Gopher (Remote!)", FormatMarkdown)
	if !strings.HasSuffix(name, ".md") {
		t.Errorf("expected .md suffix: %s", name)
	}
	if strings.ContainsAny(name, "()!") {
		t.Errorf("unsafe characters survived: %s", name)
	}

	fallback := GenerateExportFilename("", FormatJSON)
	if !strings.HasPrefix(fallback, "job_description_") {
		t.Errorf("expected fallback name, got %s", fallback)
	}
}
