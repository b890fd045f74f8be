// Package scanner locates candidate placeholder spans in document text.
//
// The recognizers form a small closed set of tagged pattern variants. Each
// one is an independent matcher returning uniform (text, offset) results;
// new patterns are added by extending the matcher table, never by ad hoc
// type checks. Scanning never mutates its input: re-scanning unmodified
// text yields identical spans in identical order.
package scanner

import (
	"regexp"
	"strings"
)

// PatternKind identifies which recognizer produced a span.
type PatternKind string

const (
	KindDotRun         PatternKind = "dot-run"
	KindUnderscoreRun  PatternKind = "underscore-run"
	KindDashRun        PatternKind = "dash-run"
	KindBracket        PatternKind = "bracket"
	KindParen          PatternKind = "paren"
	KindLoneUnderscore PatternKind = "lone-underscore"
	KindVariable       PatternKind = "variable"
)

// Span is a single placeholder candidate: the matched text and its byte
// offset in the scanned string.
type Span struct {
	Text   string
	Offset int
	Kind   PatternKind
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Offset + len(s.Text)
}

// IsRun reports whether the span came from a punctuation-run recognizer.
func (s Span) IsRun() bool {
	return s.Kind == KindDotRun || s.Kind == KindUnderscoreRun || s.Kind == KindDashRun
}

// matcher pairs a recognizer's pattern with its kind. Order in the table is
// priority order: when two candidates cover the same text, the earlier
// entry wins.
type matcher struct {
	kind  PatternKind
	re    *regexp.Regexp
	group int // submatch index holding the span, 0 for the whole match
}

var matchers = []matcher{
	{KindDotRun, regexp.MustCompile(`\.{3,}`), 0},
	{KindUnderscoreRun, regexp.MustCompile(`_{3,}`), 0},
	{KindDashRun, regexp.MustCompile(`-{3,}`), 0},
	{KindBracket, regexp.MustCompile(`\[[^\[\]\n]+\]`), 0},
	{KindParen, regexp.MustCompile(`\([^()\n]+\)`), 0},
	// A single underscore bounded by non-word characters is a weaker
	// fallback; underscore itself is a word character, hence the explicit
	// boundary classes.
	{KindLoneUnderscore, regexp.MustCompile(`(?:^|[^\w])(_)(?:$|[^\w])`), 1},
	{KindVariable, regexp.MustCompile(`\{\{\s*([A-Za-z][A-Za-z0-9_.-]*)\s*\}\}`), 0},
}

// runGapLimit is the widest stretch of same-line text allowed between two
// punctuation runs of the same kind before they stop being one blank. Legal
// boilerplate writes phrases like "This ... day of ... 20...." that a human
// reads as a single fillable region.
const runGapLimit = 10

// Scan finds all placeholder spans in text, left to right, non-overlapping.
// Overlapping candidates resolve to the longest, earliest match. Zero-length
// and whitespace-only spans are never emitted.
func Scan(text string) []Span {
	var candidates []Span
	for _, m := range matchers {
		locs := m.re.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range locs {
			start, end := loc[2*m.group], loc[2*m.group+1]
			span := Span{Text: text[start:end], Offset: start, Kind: m.kind}
			if !viable(span) {
				continue
			}
			candidates = append(candidates, span)
		}
	}

	resolved := resolveOverlaps(candidates)
	return coalesceRuns(text, resolved)
}

// viable filters spans the scanner must never emit.
func viable(s Span) bool {
	if len(s.Text) == 0 {
		return false
	}
	switch s.Kind {
	case KindBracket, KindParen:
		inner := s.Text[1 : len(s.Text)-1]
		return strings.TrimSpace(inner) != ""
	}
	return strings.TrimSpace(s.Text) != ""
}

// resolveOverlaps keeps the longest, earliest candidate wherever candidates
// overlap; ties on position and length fall to recognizer priority.
func resolveOverlaps(candidates []Span) []Span {
	if len(candidates) == 0 {
		return nil
	}

	priority := make(map[PatternKind]int, len(matchers))
	for i, m := range matchers {
		priority[m.kind] = i
	}

	sorted := make([]Span, len(candidates))
	copy(sorted, candidates)
	sortSpans(sorted, priority)

	var out []Span
	lastEnd := -1
	for _, s := range sorted {
		if s.Offset < lastEnd {
			continue
		}
		out = append(out, s)
		lastEnd = s.End()
	}
	return out
}

func sortSpans(spans []Span, priority map[PatternKind]int) {
	// insertion sort: candidate lists are short and mostly ordered already
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spanLess(spans[j], spans[j-1], priority); j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
}

func spanLess(a, b Span, priority map[PatternKind]int) bool {
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	if len(a.Text) != len(b.Text) {
		return len(a.Text) > len(b.Text) // longest wins at equal offset
	}
	return priority[a.Kind] < priority[b.Kind]
}

// coalesceRuns merges consecutive punctuation runs of the same kind when
// they sit on one line separated by a short gap, so "... day of ... 20...."
// becomes a single blank rather than three.
func coalesceRuns(text string, spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}

	var out []Span
	current := spans[0]
	for _, next := range spans[1:] {
		if current.IsRun() && next.Kind == current.Kind {
			gap := text[current.End():next.Offset]
			if len(gap) <= runGapLimit && !strings.ContainsAny(gap, "\n\r") {
				current.Text = text[current.Offset:next.End()]
				continue
			}
		}
		out = append(out, current)
		current = next
	}
	return append(out, current)
}
