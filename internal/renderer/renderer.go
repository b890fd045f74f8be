// Package renderer handles the {{name}} token style used by free-form
// templates. Substitution is independent of the blank-space path: curly
// tokens are never converted into blank-space entities.
package renderer

import (
	"regexp"
	"strings"

	"github.com/grovemead/leasecraft/internal/models"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z][A-Za-z0-9_.-]*)\s*\}\}`)

// Renderer renders a template's body with a caller-supplied variable set.
type Renderer struct {
	template *models.Template
}

// NewRenderer creates a renderer for the given template.
func NewRenderer(tmpl *models.Template) *Renderer {
	return &Renderer{template: tmpl}
}

// RenderText substitutes every {{name}} token in the template body.
// Declared variable defaults back any key the caller leaves out; a key with
// neither a value nor a default resolves to the visible [name] fallback.
func (r *Renderer) RenderText(vars map[string]string) string {
	merged := make(map[string]string, len(vars)+len(r.template.Variables))
	for _, v := range r.template.Variables {
		if v.Default != "" {
			merged[v.Name] = v.Default
		}
	}
	for k, v := range vars {
		merged[k] = v
	}
	return Substitute(r.template.Content, merged)
}

// Substitute replaces every {{key}} token in text with the matching value.
// Replacement is literal, global, and case-sensitive on the key. A missing
// or empty value substitutes the bracketed key name so a human reviewer can
// spot unresolved fields by visual scan.
//
// Substitution is a single pass: a value that itself contains {{...}}
// syntax is not substituted again. That is a documented limitation, not a
// bug to silently fix.
func Substitute(text string, vars map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(text, func(token string) string {
		key := strings.TrimSpace(token[2 : len(token)-2])
		if value, ok := vars[key]; ok && value != "" {
			return value
		}
		return "[" + key + "]"
	})
}

// Keys returns the distinct token names in text, in first-appearance order.
func Keys(text string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			keys = append(keys, m[1])
		}
	}
	return keys
}
