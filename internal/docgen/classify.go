// Package docgen reconstructs a paragraph-structured output document from
// final filled text. It does not parse or preserve the cursor-level binary
// layout of an existing document; input is plain or lightly-marked-up text
// and output is a simplified paragraph-level representation.
package docgen

import (
	"regexp"
	"strings"
)

// LineKind classifies a line of output text.
type LineKind int

const (
	LineBody LineKind = iota
	LineHeading
	LineSectionHeader
	LineSignature
	LineSpacer
)

const (
	maxHeadingLength = 100
	maxSectionLength = 60
)

var (
	headingRe       = regexp.MustCompile(`^[A-Za-z][A-Za-z\s]*$`)
	signatureRunRe  = regexp.MustCompile(`_{5,}`)
	signatureLabels = []string{"Signature:", "Date:", "Landlord:", "Tenant:"}
)

// Paragraph is one classified line ready for emission.
type Paragraph struct {
	Text     string
	Kind     LineKind
	Centered bool
}

// ClassifyLine applies the heading/section/signature heuristics top to
// bottom; the first match wins.
func ClassifyLine(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineSpacer
	}

	if isHeading(trimmed) {
		return LineHeading
	}

	if strings.HasSuffix(trimmed, ":") && len(trimmed) < maxSectionLength && !hasVariableToken(trimmed) {
		return LineSectionHeader
	}

	if signatureRunRe.MatchString(trimmed) {
		return LineSignature
	}
	for _, label := range signatureLabels {
		if strings.Contains(trimmed, label) {
			return LineSignature
		}
	}

	return LineBody
}

// isHeading recognizes fully upper-case title lines: short, letters and
// whitespace only, no colon, underscore, or unresolved variable token.
func isHeading(line string) bool {
	if len(line) >= maxHeadingLength {
		return false
	}
	if strings.ContainsAny(line, ":_") || hasVariableToken(line) {
		return false
	}
	if !headingRe.MatchString(line) {
		return false
	}
	return line == strings.ToUpper(line)
}

func hasVariableToken(line string) bool {
	open := strings.Index(line, "{{")
	return open >= 0 && strings.Contains(line[open:], "}}")
}

// BuildParagraphs splits text into lines and classifies each one. A line
// beginning with the literal word DATED is center-aligned as a special case
// of deed boilerplate.
func BuildParagraphs(text string) []Paragraph {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	paras := make([]Paragraph, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		p := Paragraph{Text: trimmed, Kind: ClassifyLine(line)}
		if p.Kind == LineSpacer {
			p.Text = ""
		}
		if trimmed == "DATED" || strings.HasPrefix(trimmed, "DATED ") {
			p.Centered = true
		}
		paras = append(paras, p)
	}
	return paras
}
