package autofill

import (
	"strings"
	"testing"

	"github.com/grovemead/leasecraft/internal/blankspace"
	"github.com/grovemead/leasecraft/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		blank    string
		category models.PlaceholderCategory
		label    string
	}{
		{
			name:     "commencement date",
			text:     "commencing on BLANK for a term",
			blank:    "BLANK",
			category: models.CategoryDate,
			label:    "Commencement Date",
		},
		{
			name:     "rent amount",
			text:     "paying rent of BLANK per month",
			blank:    "BLANK",
			category: models.CategoryAmount,
			label:    "Rent Amount",
		},
		{
			name:     "landlord name",
			text:     "between the Landlord BLANK and",
			blank:    "BLANK",
			category: models.CategoryName,
			label:    "Landlord Name",
		},
		{
			name:     "property address",
			text:     "the premises situated at BLANK in the county",
			blank:    "BLANK",
			category: models.CategoryAddress,
			label:    "Property Address",
		},
		{
			name:     "reference",
			text:     "under reference BLANK issued by",
			blank:    "BLANK",
			category: models.CategoryReference,
			label:    "Reference",
		},
		{
			name:     "no keyword context",
			text:     "qqq BLANK zzz",
			blank:    "BLANK",
			category: models.CategoryOther,
			label:    "Field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := strings.Index(tt.text, tt.blank)
			category, label := Classify(tt.text, offset, len(tt.blank))
			if category != tt.category {
				t.Errorf("category = %v, want %v", category, tt.category)
			}
			if label != tt.label {
				t.Errorf("label = %q, want %q", label, tt.label)
			}
		})
	}
}

func TestClassifyWindowIsBounded(t *testing.T) {
	// The keyword sits well outside the 40-character window and must not
	// influence classification.
	padding := strings.Repeat("x", 60)
	text := "landlord " + padding + " BLANK " + padding

	offset := strings.Index(text, "BLANK")
	category, _ := Classify(text, offset, len("BLANK"))
	if category == models.CategoryName {
		t.Error("keyword outside the context window must not match")
	}
}

func TestDescribePlaceholders(t *testing.T) {
	// Enough neutral text between the blanks that neither context window
	// sees the other line's keywords.
	text := "Landlord: ..... qqqq wwww eeee rrrr tttt yyyy uuuu iiii\nRent: ..... payable"
	annotated, spaces := blankspace.Detect(text)
	if len(spaces) != 2 {
		t.Fatalf("fixture produced %d blanks, want 2", len(spaces))
	}

	placeholders := DescribePlaceholders(annotated)
	if len(placeholders) != 2 {
		t.Fatalf("expected 2 placeholders, got %d", len(placeholders))
	}

	if placeholders[0].Order != 1 || placeholders[1].Order != 2 {
		t.Errorf("orders = %d, %d; want 1, 2", placeholders[0].Order, placeholders[1].Order)
	}
	if placeholders[0].Category != models.CategoryName {
		t.Errorf("first placeholder category = %v, want name", placeholders[0].Category)
	}
	if placeholders[1].Category != models.CategoryAmount {
		t.Errorf("second placeholder category = %v, want amount", placeholders[1].Category)
	}
}

func TestDescribePlaceholdersOrderStableAfterFill(t *testing.T) {
	annotated, spaces := blankspace.Detect("Landlord: .....\nTenant: .....")

	filled, _ := blankspace.Fill(annotated, spaces[0].ID, "Grove Mead Ltd")
	placeholders := DescribePlaceholders(filled)

	if placeholders[0].Order != 1 {
		t.Errorf("filled placeholder kept order %d, want 1", placeholders[0].Order)
	}
	if !placeholders[0].Filled || placeholders[0].Value != "Grove Mead Ltd" {
		t.Errorf("filled placeholder = %+v", placeholders[0])
	}
	if placeholders[1].Order != 2 || placeholders[1].Filled {
		t.Errorf("second placeholder = %+v", placeholders[1])
	}
}
