// Package autofill fills a document's blank spaces from a structured record.
//
// The primary strategy is ordinal: blanks map onto schedule values purely by
// position. The underlying templates are boilerplate legal text whose blank
// order is fixed and known in advance, so positional mapping is cheap and
// deterministic. It is brittle to template edits that reorder or insert
// blanks; that is a known limitation of the strategy, not of this package.
package autofill

import (
	"github.com/grovemead/leasecraft/internal/blankspace"
	"github.com/grovemead/leasecraft/internal/models"
)

// Report summarises an ordinal fill pass.
type Report struct {
	Filled       int `json:"filled"`        // blanks that received a value
	Unmatched    int `json:"unmatched"`     // blanks beyond the schedule, left unfilled
	UnusedValues int `json:"unused_values"` // schedule values with no blank to consume them
}

// Ordinal zips the document's unfilled blanks, in document order, against
// the schedule values by index. With N blanks and M values exactly
// min(N, M) blanks are filled; blanks past index M stay unfilled and excess
// values are silently unused.
func Ordinal(markup string, values []string) (string, Report) {
	var report Report

	unfilled := blankspace.Unfilled(blankspace.List(markup))
	for i, bs := range unfilled {
		if i >= len(values) {
			report.Unmatched = len(unfilled) - i
			break
		}
		if updated, changed := blankspace.Fill(markup, bs.ID, values[i]); changed {
			markup = updated
			report.Filled++
		}
	}

	if len(values) > len(unfilled) {
		report.UnusedValues = len(values) - len(unfilled)
	}
	return markup, report
}

// Values resolves an ordered list of schedule field keys against a record.
// A key the record does not know is dropped from the resolved list; the
// remaining values keep the schedule's relative order.
func Values(fields []string, record *models.InstructionRecord) []string {
	if record == nil {
		return nil
	}
	var values []string
	for _, key := range fields {
		if v, ok := record.Field(key); ok {
			values = append(values, v)
		}
	}
	return values
}
