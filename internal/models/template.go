package models

import "time"

// Template represents an uploaded document template with YAML frontmatter
// and free-form body text. The body may contain {{variable}} tokens and
// punctuation-run blanks; neither is resolved until a document is created
// from the template.
type Template struct {
	// Frontmatter fields
	ID          string            `yaml:"id"`
	Version     string            `yaml:"version"`
	Name        string            `yaml:"name"`
	Summary     string            `yaml:"description"`
	DocType     string            `yaml:"doc_type,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
	Variables   []Variable        `yaml:"variables,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
	CreatedAt   time.Time         `yaml:"created_at"`
	UpdatedAt   time.Time         `yaml:"updated_at"`

	// Content fields
	Content  string `yaml:"-"` // The template body after frontmatter
	FilePath string `yaml:"-"` // Path to the file
}

// Variable declares a {{name}} token a template expects. A declared default
// is used when the caller supplies no value; undeclared tokens fall back to
// the bracketed [name] convention at render time.
type Variable struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default,omitempty"`
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Name)
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	if t.Name != "" {
		return cleanString(t.Name)
	}
	return cleanString(t.ID)
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	var parts []string
	if t.DocType != "" {
		parts = append(parts, "Type: "+t.DocType)
	}
	if t.Summary != "" {
		summary := cleanString(t.Summary)
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		parts = append(parts, summary)
	}
	if len(t.Tags) > 0 {
		parts = append(parts, "Tags: "+joinTags(t.Tags))
	}
	if !t.UpdatedAt.IsZero() {
		parts = append(parts, "Last edited: "+t.UpdatedAt.Format("2006-01-02 15:04"))
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
	if len(result) > 100 {
		result = result[:97] + "..."
	}
	return cleanString(result)
}
