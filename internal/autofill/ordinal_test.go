package autofill

import (
	"testing"
	"time"

	"github.com/grovemead/leasecraft/internal/blankspace"
	"github.com/grovemead/leasecraft/internal/models"
)

func annotate(t *testing.T, text string, wantBlanks int) string {
	t.Helper()
	annotated, spaces := blankspace.Detect(text)
	if len(spaces) != wantBlanks {
		t.Fatalf("test fixture produced %d blanks, want %d", len(spaces), wantBlanks)
	}
	return annotated
}

func TestOrdinalFillsByPosition(t *testing.T) {
	markup := annotate(t, "Landlord: .....\nTenant: .....\nRent: .....", 3)

	updated, report := Ordinal(markup, []string{"Grove Mead Ltd", "J Smith", "£1,200"})

	if report.Filled != 3 || report.Unmatched != 0 || report.UnusedValues != 0 {
		t.Errorf("report = %+v", report)
	}

	spaces := blankspace.List(updated)
	wantContents := []string{"Grove Mead Ltd", "J Smith", "£1,200"}
	for i, bs := range spaces {
		if !bs.Filled {
			t.Errorf("blank %d left unfilled", i)
		}
		if bs.Content != wantContents[i] {
			t.Errorf("blank %d = %q, want %q", i, bs.Content, wantContents[i])
		}
	}
}

func TestOrdinalMoreBlanksThanValues(t *testing.T) {
	markup := annotate(t, "a: .....\nb: .....\nc: .....", 3)

	updated, report := Ordinal(markup, []string{"one", "two"})

	if report.Filled != 2 {
		t.Errorf("Filled = %d, want 2", report.Filled)
	}
	if report.Unmatched != 1 {
		t.Errorf("Unmatched = %d, want 1", report.Unmatched)
	}

	spaces := blankspace.List(updated)
	if spaces[2].Filled {
		t.Error("blank beyond the schedule must stay unfilled")
	}
}

func TestOrdinalMoreValuesThanBlanks(t *testing.T) {
	markup := annotate(t, "only: .....", 1)

	_, report := Ordinal(markup, []string{"used", "unused", "also unused"})

	if report.Filled != 1 {
		t.Errorf("Filled = %d, want 1", report.Filled)
	}
	if report.UnusedValues != 2 {
		t.Errorf("UnusedValues = %d, want 2", report.UnusedValues)
	}
}

func TestOrdinalSkipsAlreadyFilled(t *testing.T) {
	markup := annotate(t, "a: .....\nb: .....", 2)
	spaces := blankspace.List(markup)

	prefilled, _ := blankspace.Fill(markup, spaces[0].ID, "manual")

	updated, report := Ordinal(prefilled, []string{"auto"})
	if report.Filled != 1 {
		t.Fatalf("Filled = %d, want 1", report.Filled)
	}

	result := blankspace.List(updated)
	if result[0].Content != "manual" {
		t.Errorf("manually filled blank overwritten: %q", result[0].Content)
	}
	if result[1].Content != "auto" {
		t.Errorf("ordinal value went to %q, want the first unfilled blank", result[1].Content)
	}
}

func TestValuesResolvesScheduleKeys(t *testing.T) {
	record := &models.InstructionRecord{
		LandlordName:     "Grove Mead Ltd",
		TenantName:       "J Smith",
		CommencementDate: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC),
		TermYears:        5,
	}

	values := Values([]string{
		"landlord_name",
		"commencement_phrase",
		"term_years",
		"term_years",
		"not_a_field",
	}, record)

	want := []string{
		"Grove Mead Ltd",
		"This 3rd day of April 2024",
		"5",
		"5",
	}
	if len(values) != len(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("values[%d] = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestValuesNilRecord(t *testing.T) {
	if values := Values([]string{"landlord_name"}, nil); values != nil {
		t.Errorf("nil record must yield nil values, got %v", values)
	}
}

func TestProgress(t *testing.T) {
	markup := annotate(t, "a: .....\nb: .....", 2)
	spaces := blankspace.List(markup)

	c := Progress(markup)
	if c.Total != 2 || c.Filled != 0 {
		t.Errorf("initial progress = %+v", c)
	}
	if c.Complete() {
		t.Error("unfilled document must not report complete")
	}
	if c.Percent() != 0 {
		t.Errorf("Percent() = %v, want 0", c.Percent())
	}

	half, _ := blankspace.Fill(markup, spaces[0].ID, "x")
	c = Progress(half)
	if c.Filled != 1 || c.Percent() != 50 {
		t.Errorf("half progress = %+v, percent %v", c, c.Percent())
	}

	full, _ := blankspace.Fill(half, spaces[1].ID, "y")
	c = Progress(full)
	if !c.Complete() || c.Percent() != 100 {
		t.Errorf("full progress = %+v", c)
	}
}

func TestProgressNoBlanksIsComplete(t *testing.T) {
	c := Progress("plain text without any markers")
	if !c.Complete() {
		t.Error("document with no blanks counts as complete")
	}
	if c.Percent() != 100 {
		t.Errorf("Percent() = %v, want 100", c.Percent())
	}
}
