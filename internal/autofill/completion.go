package autofill

import (
	"github.com/grovemead/leasecraft/internal/blankspace"
)

// Completion counts filled versus total blank spaces in a document.
type Completion struct {
	Total  int `json:"total"`
	Filled int `json:"filled"`
}

// Progress derives the completion state from the markup.
func Progress(markup string) Completion {
	spaces := blankspace.List(markup)
	c := Completion{Total: len(spaces)}
	for _, bs := range spaces {
		if bs.Filled {
			c.Filled++
		}
	}
	return c
}

// Percent reports completion as 0-100. A document with no blanks counts as
// fully complete.
func (c Completion) Percent() float64 {
	if c.Total == 0 {
		return 100
	}
	return float64(c.Filled) / float64(c.Total) * 100
}

// Complete reports whether every detected blank has been filled. The gated
// generation path refuses to finalize a document until this holds.
func (c Completion) Complete() bool {
	return c.Filled == c.Total
}
