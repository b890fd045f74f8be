// Package importer brings external document files into the library.
// A TextDirImporter walks a directory of plain-text or markdown lease
// forms and converts each file into a template, deriving the template's
// variable list by scanning the body for {{name}} tokens.
package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/renderer"
)

// TextDirImporter imports template files from a directory tree
type TextDirImporter struct {
	baseDir string // Library base directory imported templates are pathed against
}

// NewTextDirImporter creates a new directory importer
func NewTextDirImporter(baseDir string) *TextDirImporter {
	return &TextDirImporter{
		baseDir: baseDir,
	}
}

// ImportOptions configures the import process
type ImportOptions struct {
	Path    string   // Directory to import from (defaults to current directory)
	DocType string   // Document type assigned to every imported template
	Tags    []string // Additional tags to apply to imported templates
	DryRun  bool     // Preview what would be imported without actually importing

	// Conflict resolution
	OverwriteExisting bool // Overwrite existing templates with the same ID
	SkipExisting      bool // Skip files whose derived ID already exists
}

// ImportResult contains the results of an import operation
type ImportResult struct {
	Templates []*models.Template // Imported templates
	Skipped   []string           // Files skipped due to conflicts or unsupported type
	Errors    []error            // Any errors encountered during import
}

// Import walks the configured path and converts each .txt and .md file
// into a template. Individual file failures are collected in the result
// rather than aborting the walk.
func (i *TextDirImporter) Import(options ImportOptions) (*ImportResult, error) {
	result := &ImportResult{
		Templates: []*models.Template{},
		Skipped:   []string{},
		Errors:    []error{},
	}

	root := options.Path
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}

	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("import path not accessible: %w", err)
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".txt" && ext != ".md" {
			return nil
		}

		template, err := i.importFile(path, root, options)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to import %s: %w", path, err))
			return nil // Continue walking
		}

		if template != nil {
			result.Templates = append(result.Templates, template)
		} else {
			result.Skipped = append(result.Skipped, path)
		}

		return nil
	})
	if err != nil {
		return result, fmt.Errorf("import walk failed: %w", err)
	}

	return result, nil
}

// importFile converts a single file into a template
func (i *TextDirImporter) importFile(filePath, root string, options ImportOptions) (*models.Template, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	frontmatter, body := i.parseFrontmatter(content)

	relPath, _ := filepath.Rel(root, filePath)
	id := i.generateIDFromPath(relPath)

	tags := []string{"imported"}
	pathParts := strings.Split(filepath.Dir(relPath), string(os.PathSeparator))
	if len(pathParts) > 0 && pathParts[0] != "." {
		tags = append(tags, pathParts...)
	}
	tags = append(tags, options.Tags...)
	tags = i.cleanTags(tags)

	title := i.extractTitle(body, filePath)

	docType := options.DocType
	var summary string
	if frontmatter != nil {
		if dt, ok := frontmatter["doc_type"].(string); ok && docType == "" {
			docType = dt
		}
		if desc, ok := frontmatter["description"].(string); ok {
			summary = desc
		}
		if name, ok := frontmatter["name"].(string); ok && name != "" {
			title = name
		}
	}

	// Templates substitute {{name}} tokens, so every distinct token in the
	// body becomes a declared variable.
	var variables []models.Variable
	for _, key := range renderer.Keys(body) {
		variables = append(variables, models.Variable{
			Name:     key,
			Required: true,
		})
	}

	now := time.Now()
	template := &models.Template{
		ID:        id,
		Version:   "1.0.0",
		Name:      title,
		Summary:   summary,
		DocType:   docType,
		Tags:      tags,
		Variables: variables,
		Content:   body,
		CreatedAt: now,
		UpdatedAt: now,
		FilePath:  filepath.Join("templates", i.sanitizeFilename(id)+".md"),
		Metadata: map[string]string{
			"source":        "text-import",
			"original_path": filePath,
		},
	}

	return template, nil
}

// parseFrontmatter extracts YAML frontmatter from file content
func (i *TextDirImporter) parseFrontmatter(content []byte) (map[string]interface{}, string) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, string(content)
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}

	var frontmatter map[string]interface{}
	if len(frontmatterLines) > 0 {
		frontmatterStr := strings.Join(frontmatterLines, "\n")
		yaml.Unmarshal([]byte(frontmatterStr), &frontmatter)
	}

	return frontmatter, strings.TrimSpace(strings.Join(contentLines, "\n"))
}

// generateIDFromPath creates a unique ID from file path
func (i *TextDirImporter) generateIDFromPath(relPath string) string {
	id := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	id = strings.ReplaceAll(id, string(os.PathSeparator), "-")
	id = strings.ReplaceAll(id, "_", "-")
	id = strings.ReplaceAll(id, " ", "-")
	return strings.ToLower(id)
}

// extractTitle gets the title from content or filename
func (i *TextDirImporter) extractTitle(content, filePath string) string {
	lines := strings.Split(content, "\n")

	// Look for first heading
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}

	// Fallback to filename
	filename := filepath.Base(filePath)
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// cleanTags removes empty and duplicate tags
func (i *TextDirImporter) cleanTags(tags []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && !seen[tag] {
			seen[tag] = true
			result = append(result, tag)
		}
	}

	return result
}

// sanitizeFilename creates a safe filename from an ID
func (i *TextDirImporter) sanitizeFilename(id string) string {
	safe := strings.ReplaceAll(id, "/", "-")
	safe = strings.ReplaceAll(safe, "\\", "-")
	safe = strings.ReplaceAll(safe, ":", "-")
	safe = strings.ReplaceAll(safe, "*", "-")
	safe = strings.ReplaceAll(safe, "?", "-")
	safe = strings.ReplaceAll(safe, "\"", "-")
	safe = strings.ReplaceAll(safe, "<", "-")
	safe = strings.ReplaceAll(safe, ">", "-")
	safe = strings.ReplaceAll(safe, "|", "-")

	return safe
}

// PreviewImport shows what would be imported without actually importing
func (i *TextDirImporter) PreviewImport(options ImportOptions) (*ImportResult, error) {
	options.DryRun = true
	return i.Import(options)
}
