package models

import (
	"strings"
	"time"
)

// Document represents a working copy of a template being filled. Its
// Content holds the annotated markup with blank-space markers embedded; the
// markup string is the single source of truth for fill state.
type Document struct {
	// Frontmatter fields
	ID          string            `yaml:"id"`
	Version     string            `yaml:"version"`
	Name        string            `yaml:"name"`
	Summary     string            `yaml:"description"`
	DocType     string            `yaml:"doc_type,omitempty"`
	TemplateRef string            `yaml:"template,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
	CreatedAt   time.Time         `yaml:"created_at"`
	UpdatedAt   time.Time         `yaml:"updated_at"`

	// Content fields
	Content     string `yaml:"-"` // Annotated markup after frontmatter
	FilePath    string `yaml:"-"` // Path to the file
	ContentHash string `yaml:"-"` // SHA256 hash of the content
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (d Document) FilterValue() string {
	return cleanString(d.Name)
}

// Title satisfies the list.Item interface
func (d Document) Title() string {
	if d.Name != "" {
		return cleanString(d.Name)
	}
	return cleanString(d.ID)
}

// Description satisfies the list.Item interface
func (d Document) Description() string {
	var parts []string

	if d.Summary != "" {
		summary := cleanString(d.Summary)
		maxSummaryLength := 60
		if len(summary) > maxSummaryLength {
			summary = summary[:maxSummaryLength-3] + "..."
		}
		if summary != "" {
			parts = append(parts, summary)
		}
	}

	if d.TemplateRef != "" {
		parts = append(parts, "From: "+cleanString(d.TemplateRef))
	}

	if !d.UpdatedAt.IsZero() {
		parts = append(parts, "Last edited: "+d.UpdatedAt.Format("2006-01-02 15:04"))
	}

	if len(d.Tags) > 0 {
		tagsStr := joinTags(d.Tags)
		if tagsStr != "" {
			parts = append(parts, "Tags: "+tagsStr)
		}
	}

	result := ""
	for i, part := range parts {
		cleanPart := cleanString(part)
		if cleanPart != "" {
			if i > 0 {
				result += " • "
			}
			result += cleanPart
		}
	}

	// Final truncation to ensure it doesn't exceed terminal width
	maxTotalLength := 100
	if len(result) > maxTotalLength {
		result = result[:maxTotalLength-3] + "..."
	}

	return cleanString(result)
}

// cleanString removes problematic characters that might cause rendering issues
func cleanString(s string) string {
	if s == "" {
		return ""
	}

	// Remove any control characters, newlines, tabs that could break rendering
	cleaned := ""
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			cleaned += " "
		} else if r >= 32 && r != 127 { // Keep printable ASCII + unicode
			cleaned += string(r)
		}
	}

	// Collapse multiple spaces
	for cleaned != strings.ReplaceAll(cleaned, "  ", " ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	return strings.TrimSpace(cleaned)
}

func joinTags(tags []string) string {
	result := ""
	for i, tag := range tags {
		if i > 0 {
			result += ", "
		}
		result += tag
	}
	return result
}
