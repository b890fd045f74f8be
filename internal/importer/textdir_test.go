package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeImportFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestImportPlainFile(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "forwarding-letter.md", "# Forwarding Letter\n\nDear {{tenant_name}},\n\nRef: {{reference}}\n")

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.Import(ImportOptions{Path: dir, DocType: "lease-forwarding"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(result.Templates))
	}

	tmpl := result.Templates[0]
	if tmpl.ID != "forwarding-letter" {
		t.Errorf("expected ID 'forwarding-letter', got %q", tmpl.ID)
	}
	if tmpl.Name != "Forwarding Letter" {
		t.Errorf("expected title from heading, got %q", tmpl.Name)
	}
	if tmpl.DocType != "lease-forwarding" {
		t.Errorf("expected doc type 'lease-forwarding', got %q", tmpl.DocType)
	}
	if tmpl.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", tmpl.Version)
	}
	if len(tmpl.Variables) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(tmpl.Variables))
	}
	if tmpl.Variables[0].Name != "tenant_name" || tmpl.Variables[1].Name != "reference" {
		t.Errorf("variables in wrong order: %v", tmpl.Variables)
	}
	for _, v := range tmpl.Variables {
		if !v.Required {
			t.Errorf("imported variable %q should be required", v.Name)
		}
	}
	if tmpl.Metadata["source"] != "text-import" {
		t.Errorf("expected source metadata, got %v", tmpl.Metadata["source"])
	}
}

func TestImportFrontmatterOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `---
name: Licence Cover Letter
description: Covering letter for a licence to occupy
doc_type: licence-to-occupy
---
# Ignored Heading

Body text with {{landlord_name}}.
`
	writeImportFile(t, dir, "cover.md", content)

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.Import(ImportOptions{Path: dir})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(result.Templates))
	}

	tmpl := result.Templates[0]
	if tmpl.Name != "Licence Cover Letter" {
		t.Errorf("frontmatter name should win over heading, got %q", tmpl.Name)
	}
	if tmpl.Summary != "Covering letter for a licence to occupy" {
		t.Errorf("expected summary from frontmatter, got %q", tmpl.Summary)
	}
	if tmpl.DocType != "licence-to-occupy" {
		t.Errorf("expected doc type from frontmatter, got %q", tmpl.DocType)
	}
	if strings.HasPrefix(tmpl.Content, "---") {
		t.Error("frontmatter should be stripped from content")
	}
}

func TestImportOptionDocTypeWinsOverFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "letter.txt", "---\ndoc_type: licence-to-occupy\n---\nBody\n")

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.Import(ImportOptions{Path: dir, DocType: "lease-forwarding"})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(result.Templates))
	}
	if result.Templates[0].DocType != "lease-forwarding" {
		t.Errorf("explicit doc type should win, got %q", result.Templates[0].DocType)
	}
}

func TestImportDirectoryTagsAndIDs(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, filepath.Join("commercial", "retail", "Shop Lease.md"), "Premises at {{property_address}}.\n")

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.Import(ImportOptions{Path: dir, Tags: []string{"legacy"}})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(result.Templates))
	}

	tmpl := result.Templates[0]
	if tmpl.ID != "commercial-retail-shop-lease" {
		t.Errorf("expected path-derived ID, got %q", tmpl.ID)
	}
	if tmpl.Name != "Shop Lease" {
		t.Errorf("expected title from filename, got %q", tmpl.Name)
	}

	want := map[string]bool{"imported": false, "commercial": false, "retail": false, "legacy": false}
	for _, tag := range tmpl.Tags {
		if _, ok := want[tag]; ok {
			want[tag] = true
		}
	}
	for tag, found := range want {
		if !found {
			t.Errorf("missing tag %q in %v", tag, tmpl.Tags)
		}
	}
}

func TestImportSkipsUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "lease.md", "Body {{reference}}\n")
	writeImportFile(t, dir, "lease.docx", "binary-ish")
	writeImportFile(t, dir, "notes.json", "{}")

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.Import(ImportOptions{Path: dir})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 1 {
		t.Errorf("expected only the markdown file imported, got %d templates", len(result.Templates))
	}
}

func TestImportDeduplicatesTags(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "plain.txt", "Body\n")

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.Import(ImportOptions{Path: dir, Tags: []string{"imported", "  ", "legacy", "legacy"}})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(result.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(result.Templates))
	}

	counts := make(map[string]int)
	for _, tag := range result.Templates[0].Tags {
		if tag == "" || strings.TrimSpace(tag) != tag {
			t.Errorf("tag not trimmed: %q", tag)
		}
		counts[tag]++
	}
	if counts["imported"] != 1 || counts["legacy"] != 1 {
		t.Errorf("tags not deduplicated: %v", result.Templates[0].Tags)
	}
}

func TestImportMissingPath(t *testing.T) {
	importer := NewTextDirImporter(t.TempDir())
	if _, err := importer.Import(ImportOptions{Path: filepath.Join(t.TempDir(), "does-not-exist")}); err == nil {
		t.Error("expected error for missing import path")
	}
}

func TestPreviewImportSetsDryRun(t *testing.T) {
	dir := t.TempDir()
	writeImportFile(t, dir, "lease.md", "Body {{reference}}\n")

	importer := NewTextDirImporter(t.TempDir())
	result, err := importer.PreviewImport(ImportOptions{Path: dir})
	if err != nil {
		t.Fatalf("PreviewImport failed: %v", err)
	}
	if len(result.Templates) != 1 {
		t.Errorf("preview should still report templates, got %d", len(result.Templates))
	}
}
