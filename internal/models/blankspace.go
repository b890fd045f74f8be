package models

// BlankSpace is a detected, addressable fillable region in document markup.
// The markup itself is the source of truth: instances are re-derived from a
// fresh scan on every listing, so Position is only valid for the markup
// string it was derived from. Addressing across edits is done by ID.
type BlankSpace struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
	Length   int    `json:"length"`
	Filled   bool   `json:"filled"`
	Content  string `json:"content,omitempty"`
}

// PlaceholderCategory is the closed set of semantic categories the
// context classifier can assign to a detected placeholder.
type PlaceholderCategory string

const (
	CategoryDate      PlaceholderCategory = "date"
	CategoryName      PlaceholderCategory = "name"
	CategoryAddress   PlaceholderCategory = "address"
	CategoryAmount    PlaceholderCategory = "amount"
	CategoryReference PlaceholderCategory = "reference"
	CategoryOther     PlaceholderCategory = "other"
)

// DetectedPlaceholder is the preview-flow view of a fillable region. Order
// is 1-based in document reading order, assigned once at detection time and
// never reassigned when entries are filled.
type DetectedPlaceholder struct {
	ID          string              `json:"id"`
	Order       int                 `json:"order"`
	Description string              `json:"description"`
	Filled      bool                `json:"filled"`
	Value       string              `json:"value,omitempty"`
	Category    PlaceholderCategory `json:"category"`
}
