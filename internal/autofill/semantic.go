package autofill

import (
	"strings"

	"github.com/grovemead/leasecraft/internal/blankspace"
	"github.com/grovemead/leasecraft/internal/models"
)

// contextWindow is how many characters of surrounding text the classifier
// inspects on each side of a placeholder.
const contextWindow = 40

// categoryRule maps context keywords to a category and a suggested field
// label. Rules are checked in order; the first keyword hit wins. This is
// heuristic and best-effort, not guaranteed correct.
type categoryRule struct {
	category models.PlaceholderCategory
	label    string
	keywords []string
}

var categoryRules = []categoryRule{
	{models.CategoryDate, "Commencement Date", []string{"commencement", "commencing"}},
	{models.CategoryDate, "Expiry Date", []string{"expiry", "expiring", "expiration"}},
	{models.CategoryDate, "Date", []string{"date", "day of", "dated", " 20"}},
	{models.CategoryAmount, "Rent Amount", []string{"rent", "rental"}},
	{models.CategoryAmount, "Deposit Amount", []string{"deposit"}},
	{models.CategoryAmount, "Amount", []string{"£", "$", "amount", "sum of", "payable"}},
	{models.CategoryName, "Landlord Name", []string{"landlord", "lessor"}},
	{models.CategoryName, "Tenant Name", []string{"tenant", "lessee"}},
	{models.CategoryName, "Name", []string{"name", "signed by", "known as"}},
	{models.CategoryAddress, "Property Address", []string{"address", "situated", "premises", "property at", "postcode"}},
	{models.CategoryReference, "Reference", []string{"reference", "ref.", "ref:", "number", "no."}},
}

// Classify infers a likely category and field label for the placeholder at
// [offset, offset+length) by keyword-matching a bounded window of the
// surrounding text.
func Classify(text string, offset, length int) (models.PlaceholderCategory, string) {
	start := offset - contextWindow
	if start < 0 {
		start = 0
	}
	end := offset + length + contextWindow
	if end > len(text) {
		end = len(text)
	}
	window := strings.ToLower(text[start:offset] + text[offset+length:end])

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(window, kw) {
				return rule.category, rule.label
			}
		}
	}
	return models.CategoryOther, "Field"
}

// DescribePlaceholders builds the preview-flow view of a document's blanks:
// a 1-based order in reading order, a derived label, and the fill state.
// Order is assigned once per listing pass and does not change when entries
// are filled, because the underlying document order is stable.
//
// Classification runs against the flattened text so the context window sees
// what a reader sees, not marker attributes.
func DescribePlaceholders(markup string) []models.DetectedPlaceholder {
	text, spaces := blankspace.Flatten(markup)

	var out []models.DetectedPlaceholder
	for i, bs := range spaces {
		category, label := Classify(text, bs.Position, bs.Length)
		out = append(out, models.DetectedPlaceholder{
			ID:          bs.ID,
			Order:       i + 1,
			Description: label,
			Filled:      bs.Filled,
			Value:       bs.Content,
			Category:    category,
		})
	}
	return out
}
