// migrate-library upgrades legacy flat template files to the frontmatter
// format. Early libraries stored bare .txt and .md files under templates/
// with no YAML header; this walks that directory, rewrites each legacy file
// as a frontmatter template, and removes the original.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/renderer"
	"github.com/grovemead/leasecraft/internal/service"
)

func main() {
	svc, err := service.NewService()
	if err != nil {
		fmt.Printf("Error initializing service: %v\n", err)
		return
	}

	templatesDir := filepath.Join(svc.BaseDir(), "templates")
	entries, err := os.ReadDir(templatesDir)
	if err != nil {
		fmt.Printf("Error reading templates directory: %v\n", err)
		return
	}

	type legacyFile struct {
		path string
		name string
		body string
	}

	var needMigration []legacyFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".md" && ext != ".txt" {
			continue
		}

		path := filepath.Join(templatesDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Warning: cannot read %s: %v\n", path, err)
			continue
		}

		body := string(data)
		if strings.HasPrefix(body, "---\n") {
			continue // already in frontmatter format
		}

		needMigration = append(needMigration, legacyFile{
			path: path,
			name: entry.Name(),
			body: body,
		})
	}

	if len(needMigration) == 0 {
		fmt.Println("No legacy template files found - migration not needed")
		return
	}

	fmt.Printf("Found %d legacy template files that need migration:\n", len(needMigration))
	for _, f := range needMigration {
		fmt.Printf("  - %s\n", f.name)
	}

	fmt.Print("\nProceed with migration? (y/N): ")
	var response string
	fmt.Scanln(&response)

	if strings.ToLower(response) != "y" {
		fmt.Println("Migration cancelled")
		return
	}

	migrated := 0
	for _, f := range needMigration {
		id := legacyID(f.name)
		name := extractTitle(f.body, id)

		var variables []models.Variable
		for _, key := range renderer.Keys(f.body) {
			variables = append(variables, models.Variable{
				Name:     key,
				Required: true,
			})
		}

		template := &models.Template{
			ID:        id,
			Name:      name,
			Summary:   fmt.Sprintf("Migrated from %s", f.name),
			Tags:      []string{"migrated"},
			Variables: variables,
			Content:   f.body,
			Metadata: map[string]string{
				"source":        "legacy-migration",
				"original_file": f.name,
			},
		}

		fmt.Printf("Migrating %s to %s.md\n", f.name, id)

		if err := svc.CreateTemplate(template); err != nil {
			fmt.Printf("Error saving migrated template: %v\n", err)
			continue
		}

		// The rewritten file lands at templates/<id>.md; remove the legacy
		// file unless it was overwritten in place.
		newPath := filepath.Join(templatesDir, id+".md")
		if f.path != newPath {
			if err := os.Remove(f.path); err != nil {
				fmt.Printf("Warning: could not remove old file %s: %v\n", f.path, err)
				continue
			}
		}
		migrated++
	}

	fmt.Printf("Migration completed! Successfully migrated %d templates\n", migrated)
}

// legacyID derives a kebab-case template ID from a legacy filename.
func legacyID(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.ToLower(base)

	var b strings.Builder
	lastHyphen := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	id := strings.TrimSuffix(b.String(), "-")
	if id == "" {
		return "migrated-template"
	}
	return id
}

// extractTitle uses the first markdown heading as the template name.
func extractTitle(body, fallback string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
