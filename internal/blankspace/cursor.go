package blankspace

import "github.com/grovemead/leasecraft/internal/models"

// Cursor is a wrap-around index over the unfilled subset of a document's
// blank spaces. The caller re-derives the entity list from the markup before
// each navigation step, so the cursor never holds stale positions; it only
// remembers where in the unfilled partition it last was.
type Cursor struct {
	index int
}

// Current returns the unfilled entity the cursor points at. When the
// unfilled subset is empty the cursor resets to zero and reports ok=false;
// navigation is inert until a new unfilled entity exists.
func (c *Cursor) Current(spaces []models.BlankSpace) (models.BlankSpace, bool) {
	unfilled := Unfilled(spaces)
	if len(unfilled) == 0 {
		c.index = 0
		return models.BlankSpace{}, false
	}
	if c.index >= len(unfilled) {
		c.index = 0
	}
	return unfilled[c.index], true
}

// Next advances to the following unfilled entity, wrapping past the last
// back to the first.
func (c *Cursor) Next(spaces []models.BlankSpace) (models.BlankSpace, bool) {
	unfilled := Unfilled(spaces)
	if len(unfilled) == 0 {
		c.index = 0
		return models.BlankSpace{}, false
	}
	c.index = (c.index + 1) % len(unfilled)
	return unfilled[c.index], true
}

// Prev steps back to the preceding unfilled entity, wrapping before the
// first to the last.
func (c *Cursor) Prev(spaces []models.BlankSpace) (models.BlankSpace, bool) {
	unfilled := Unfilled(spaces)
	if len(unfilled) == 0 {
		c.index = 0
		return models.BlankSpace{}, false
	}
	c.index = (c.index - 1 + len(unfilled)) % len(unfilled)
	return unfilled[c.index], true
}

// Reset returns the cursor to the first unfilled entity.
func (c *Cursor) Reset() {
	c.index = 0
}
