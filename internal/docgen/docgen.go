package docgen

import (
	"strings"

	"github.com/grovemead/leasecraft/internal/errors"
)

// OutputMode selects the representation Generate returns.
type OutputMode string

const (
	OutputDocx OutputMode = "docx"
	OutputText OutputMode = "text"
)

// Generate converts final filled text into the requested output. Empty
// content is recovered by emitting a minimal valid empty document. Any
// internal encoding failure surfaces as a single generic generation error
// with no partial output.
func Generate(text string, mode OutputMode) ([]byte, error) {
	paras := BuildParagraphs(text)

	switch mode {
	case OutputText, "":
		return []byte(PlainText(paras)), nil
	case OutputDocx:
		data, err := writeDocx(paras)
		if err != nil {
			return nil, errors.GenerationError(err)
		}
		return data, nil
	default:
		return nil, errors.ValidationError("unknown output mode: " + string(mode))
	}
}

// PlainText re-emits classified paragraphs as plain text, one line per
// paragraph.
func PlainText(paras []Paragraph) string {
	lines := make([]string, len(paras))
	for i, p := range paras {
		lines[i] = p.Text
	}
	return strings.Join(lines, "\n")
}
