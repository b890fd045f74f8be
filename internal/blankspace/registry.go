// Package blankspace converts scanner spans into addressable, stateful
// markers embedded in document markup.
//
// The markup string is the only store: every listing re-derives the entity
// set from a fresh parse, so positions always reflect the latest edits,
// including ones made outside this package. Entities are addressed by ID,
// never by position.
package blankspace

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/scanner"
)

// maxDisplayWidth caps the dot run shown for an unfilled blank. The
// underlying length is preserved in the marker attribute even when the
// display is shorter.
const maxDisplayWidth = 12

var markerRe = regexp.MustCompile(
	`<span class="blank-space" id="([^"]+)" data-length="(\d+)" data-filled="(true|false)">((?s).*?)</span>`)

// Detect scans markup for placeholder spans, wraps each newly found span in
// an addressable marker with a fresh ID, and returns the annotated markup
// together with the full entity list in document order. Text already inside
// markers is never re-scanned.
func Detect(markup string) (string, []models.BlankSpace) {
	var sb strings.Builder
	last := 0
	for _, loc := range markerRe.FindAllStringIndex(markup, -1) {
		sb.WriteString(annotateSegment(markup[last:loc[0]]))
		sb.WriteString(markup[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(annotateSegment(markup[last:]))

	annotated := sb.String()
	return annotated, List(annotated)
}

// annotateSegment wraps every scanner span in a marker. Curly variable
// tokens belong to the substitution engine and are left untouched.
func annotateSegment(segment string) string {
	spans := scanner.Scan(segment)
	if len(spans) == 0 {
		return segment
	}

	var sb strings.Builder
	last := 0
	for _, span := range spans {
		if span.Kind == scanner.KindVariable {
			continue
		}
		sb.WriteString(segment[last:span.Offset])
		sb.WriteString(newMarker(span))
		last = span.End()
	}
	sb.WriteString(segment[last:])
	return sb.String()
}

func newMarker(span scanner.Span) string {
	width := len(span.Text)
	if width > maxDisplayWidth {
		width = maxDisplayWidth
	}
	return fmt.Sprintf(
		`<span class="blank-space" id="%s" data-length="%d" data-filled="false">%s</span>`,
		uuid.NewString(), len(span.Text), strings.Repeat(".", width))
}

// List re-derives the current entity set directly from the markup. Entities
// come back in document order; the filled and unfilled partitions each keep
// that relative order.
func List(markup string) []models.BlankSpace {
	var spaces []models.BlankSpace
	matches := markerRe.FindAllStringSubmatchIndex(markup, -1)
	for _, m := range matches {
		length := 0
		fmt.Sscanf(markup[m[4]:m[5]], "%d", &length)
		filled := markup[m[6]:m[7]] == "true"
		bs := models.BlankSpace{
			ID:       markup[m[2]:m[3]],
			Position: m[0],
			Length:   length,
			Filled:   filled,
		}
		if filled {
			bs.Content = html.UnescapeString(markup[m[8]:m[9]])
		}
		spaces = append(spaces, bs)
	}
	return spaces
}

// Flatten replaces every marker with its displayed content, yielding the
// plain text a reader sees. The returned entity list is re-based to offsets
// in that plain text, with Length holding the display width.
func Flatten(markup string) (string, []models.BlankSpace) {
	var sb strings.Builder
	var spaces []models.BlankSpace
	last := 0
	for _, m := range markerRe.FindAllStringSubmatchIndex(markup, -1) {
		sb.WriteString(markup[last:m[0]])

		display := html.UnescapeString(markup[m[8]:m[9]])
		bs := models.BlankSpace{
			ID:       markup[m[2]:m[3]],
			Position: sb.Len(),
			Length:   len(display),
			Filled:   markup[m[6]:m[7]] == "true",
		}
		if bs.Filled {
			bs.Content = display
		}
		spaces = append(spaces, bs)

		sb.WriteString(display)
		last = m[1]
	}
	sb.WriteString(markup[last:])
	return sb.String(), spaces
}

// Unfilled returns the unfilled partition of spaces in document order.
func Unfilled(spaces []models.BlankSpace) []models.BlankSpace {
	var out []models.BlankSpace
	for _, bs := range spaces {
		if !bs.Filled {
			out = append(out, bs)
		}
	}
	return out
}

// Filled returns the filled partition of spaces in document order.
func Filled(spaces []models.BlankSpace) []models.BlankSpace {
	var out []models.BlankSpace
	for _, bs := range spaces {
		if bs.Filled {
			out = append(out, bs)
		}
	}
	return out
}

// Fill locates the marker with the given ID and replaces its displayed
// content, flipping it to the filled state. Re-filling an already filled
// entity overwrites the prior value in place. An unknown ID is a recoverable
// condition: the markup is returned unchanged and changed reports false.
func Fill(markup, id, content string) (string, bool) {
	re, err := markerForID(id)
	if err != nil {
		return markup, false
	}

	loc := re.FindStringSubmatchIndex(markup)
	if loc == nil {
		return markup, false
	}

	length := 0
	fmt.Sscanf(markup[loc[2]:loc[3]], "%d", &length)
	replacement := fmt.Sprintf(
		`<span class="blank-space" id="%s" data-length="%d" data-filled="true">%s</span>`,
		id, length, html.EscapeString(content))

	return markup[:loc[0]] + replacement + markup[loc[1]:], true
}

// Insert places a brand-new unfilled blank of the given length at a
// caller-supplied offset and returns the updated markup with the new
// entity. The offset is clamped into range and snapped off any existing
// marker it would split, so attribute text is never corrupted.
func Insert(markup string, pos, length int) (string, models.BlankSpace) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(markup) {
		pos = len(markup)
	}
	pos = snapToMarkerBoundary(markup, pos)
	if length < 3 {
		length = 3
	}

	span := scanner.Span{Text: strings.Repeat(".", length), Offset: pos, Kind: scanner.KindDotRun}
	marker := newMarker(span)
	updated := markup[:pos] + marker + markup[pos:]

	for _, bs := range List(updated) {
		if bs.Position == pos {
			return updated, bs
		}
	}
	// unreachable: the marker was just inserted at pos
	return updated, models.BlankSpace{}
}

// snapToMarkerBoundary moves an offset that falls inside an existing marker
// to the nearer end of that marker.
func snapToMarkerBoundary(markup string, pos int) int {
	for _, loc := range markerRe.FindAllStringIndex(markup, -1) {
		if pos <= loc[0] {
			break
		}
		if pos < loc[1] {
			if pos-loc[0] < loc[1]-pos {
				return loc[0]
			}
			return loc[1]
		}
	}
	return pos
}

func markerForID(id string) (*regexp.Regexp, error) {
	return regexp.Compile(
		`<span class="blank-space" id="` + regexp.QuoteMeta(id) +
			`" data-length="(\d+)" data-filled="(?:true|false)">((?s).*?)</span>`)
}
