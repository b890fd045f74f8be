package blankspace

import (
	"strings"
	"testing"
)

func TestDetectWrapsSpansInMarkers(t *testing.T) {
	annotated, spaces := Detect("Landlord: ..... Tenant: _____")

	if len(spaces) != 2 {
		t.Fatalf("expected 2 blank spaces, got %d", len(spaces))
	}
	if strings.Contains(annotated, ".....") && !strings.Contains(annotated, "blank-space") {
		t.Error("expected dot run to be wrapped in a marker")
	}
	if spaces[0].Filled || spaces[1].Filled {
		t.Error("newly detected blanks must start unfilled")
	}
	if spaces[0].Length != 5 || spaces[1].Length != 5 {
		t.Errorf("expected lengths 5 and 5, got %d and %d", spaces[0].Length, spaces[1].Length)
	}
	if spaces[0].ID == spaces[1].ID {
		t.Error("blank spaces must get distinct IDs")
	}
}

func TestDetectIsIdempotent(t *testing.T) {
	annotated, spaces := Detect("Rent: ..... per month")
	again, spacesAgain := Detect(annotated)

	if again != annotated {
		t.Error("re-detecting annotated markup must not change it")
	}
	if len(spacesAgain) != len(spaces) {
		t.Errorf("entity count changed on re-detect: %d then %d", len(spaces), len(spacesAgain))
	}
	if spacesAgain[0].ID != spaces[0].ID {
		t.Error("re-detect must preserve existing marker IDs")
	}
}

func TestDetectLeavesVariableTokensAlone(t *testing.T) {
	annotated, spaces := Detect("Dear {{tenant_name}}, ref .....")

	if !strings.Contains(annotated, "{{tenant_name}}") {
		t.Error("variable tokens must survive detection untouched")
	}
	if len(spaces) != 1 {
		t.Fatalf("expected only the dot run to become a blank, got %d", len(spaces))
	}
}

func TestDetectCapsDisplayWidth(t *testing.T) {
	long := strings.Repeat(".", 30)
	annotated, spaces := Detect("Sign here: " + long)

	if len(spaces) != 1 {
		t.Fatalf("expected 1 blank, got %d", len(spaces))
	}
	if spaces[0].Length != 30 {
		t.Errorf("underlying length = %d, want 30", spaces[0].Length)
	}
	if strings.Contains(annotated, strings.Repeat(".", maxDisplayWidth+1)) {
		t.Errorf("display run must be capped at %d dots", maxDisplayWidth)
	}
}

func TestFillByID(t *testing.T) {
	annotated, spaces := Detect("Landlord: .....")
	id := spaces[0].ID

	updated, changed := Fill(annotated, id, "Grove Mead Ltd")
	if !changed {
		t.Fatal("expected fill to report changed")
	}

	listed := List(updated)
	if len(listed) != 1 {
		t.Fatalf("expected 1 blank after fill, got %d", len(listed))
	}
	if !listed[0].Filled {
		t.Error("blank must be marked filled")
	}
	if listed[0].Content != "Grove Mead Ltd" {
		t.Errorf("content = %q, want %q", listed[0].Content, "Grove Mead Ltd")
	}
	if listed[0].Length != 5 {
		t.Errorf("original length must be preserved, got %d", listed[0].Length)
	}
}

func TestFillUnknownIDLeavesMarkupUnchanged(t *testing.T) {
	annotated, _ := Detect("Landlord: .....")

	updated, changed := Fill(annotated, "no-such-id", "value")
	if changed {
		t.Error("unknown ID must report changed=false")
	}
	if updated != annotated {
		t.Error("unknown ID must leave the markup byte-identical")
	}
}

func TestRefillOverwrites(t *testing.T) {
	annotated, spaces := Detect("Tenant: .....")
	id := spaces[0].ID

	first, _ := Fill(annotated, id, "J Smith")
	second, changed := Fill(first, id, "A Jones")
	if !changed {
		t.Fatal("re-fill must succeed")
	}

	listed := List(second)
	if listed[0].Content != "A Jones" {
		t.Errorf("re-fill content = %q, want %q", listed[0].Content, "A Jones")
	}
}

func TestFillEscapesMarkupCharacters(t *testing.T) {
	annotated, spaces := Detect("Note: .....")

	updated, _ := Fill(annotated, spaces[0].ID, `Smith & Sons <Ltd>`)

	listed := List(updated)
	if listed[0].Content != `Smith & Sons <Ltd>` {
		t.Errorf("roundtripped content = %q", listed[0].Content)
	}

	text, _ := Flatten(updated)
	if !strings.Contains(text, "Smith & Sons <Ltd>") {
		t.Errorf("flattened text = %q", text)
	}
}

func TestFillDateAndNameScenario(t *testing.T) {
	markup, spaces := Detect("Landlord: ......... \nThis ... day of ... 20....")
	if len(spaces) != 2 {
		t.Fatalf("expected 2 blank spaces, got %d", len(spaces))
	}
	if spaces[0].Position > spaces[1].Position {
		t.Error("blank spaces not in document order")
	}

	markup, ok := Fill(markup, spaces[0].ID, "Jane Doe")
	if !ok {
		t.Fatal("failed to fill first blank")
	}
	markup, ok = Fill(markup, spaces[1].ID, "This 3rd day of April 2024")
	if !ok {
		t.Fatal("failed to fill second blank")
	}

	listed := List(markup)
	if len(listed) != 2 {
		t.Fatalf("expected 2 blank spaces after filling, got %d", len(listed))
	}
	if !listed[0].Filled || listed[0].Content != "Jane Doe" {
		t.Errorf("first blank: filled=%v content=%q", listed[0].Filled, listed[0].Content)
	}
	if !listed[1].Filled || listed[1].Content != "This 3rd day of April 2024" {
		t.Errorf("second blank: filled=%v content=%q", listed[1].Filled, listed[1].Content)
	}
}

func TestListOrderStableAcrossCalls(t *testing.T) {
	markup, _ := Detect("Name: .....\nAddress: [address]\nAmount: (.....)")
	first := List(markup)
	second := List(markup)
	if len(first) != len(second) {
		t.Fatalf("list lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("entry %d changed identity between calls", i)
		}
		if i > 0 && first[i].Position <= first[i-1].Position {
			t.Errorf("positions not strictly increasing at entry %d", i)
		}
	}
}

func TestFlattenRebasesPositions(t *testing.T) {
	annotated, spaces := Detect("Rent of ..... payable")
	filled, _ := Fill(annotated, spaces[0].ID, "£1,200")

	text, flat := Flatten(filled)

	want := "Rent of £1,200 payable"
	if text != want {
		t.Errorf("flattened text = %q, want %q", text, want)
	}
	if len(flat) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(flat))
	}
	if flat[0].Position != len("Rent of ") {
		t.Errorf("position = %d, want %d", flat[0].Position, len("Rent of "))
	}
	if flat[0].Length != len("£1,200") {
		t.Errorf("length = %d, want display width %d", flat[0].Length, len("£1,200"))
	}
}

func TestInsertClampsPositionAndLength(t *testing.T) {
	markup := "short text"

	updated, bs := Insert(markup, 9999, 1)
	if bs.ID == "" {
		t.Fatal("insert must return the new entity")
	}
	if bs.Length != 3 {
		t.Errorf("length below minimum must clamp to 3, got %d", bs.Length)
	}
	if !strings.HasPrefix(updated, markup) {
		t.Error("out-of-range position must clamp to the end")
	}

	listed := List(updated)
	if len(listed) != 1 {
		t.Fatalf("expected 1 entity after insert, got %d", len(listed))
	}
}

func TestInsertSnapsOffMarkerInterior(t *testing.T) {
	markup, spaces := Detect("Landlord: .....")
	if len(spaces) != 1 {
		t.Fatalf("expected 1 blank space, got %d", len(spaces))
	}
	original := spaces[0]

	// An offset in the middle of the existing marker's attribute text.
	inside := original.Position + 5

	updated, inserted := Insert(markup, inside, 4)
	listed := List(updated)
	if len(listed) != 2 {
		t.Fatalf("expected 2 blank spaces after insert, got %d", len(listed))
	}
	if inserted.ID == "" {
		t.Fatal("inserted blank has no ID")
	}

	var kept bool
	for _, bs := range listed {
		if bs.ID == original.ID {
			kept = true
			if bs.Length != original.Length {
				t.Errorf("original blank length changed: %d -> %d", original.Length, bs.Length)
			}
		}
	}
	if !kept {
		t.Error("original blank no longer parseable after insert")
	}

	filled, ok := Fill(updated, original.ID, "Grove Mead Ltd")
	if !ok {
		t.Error("original blank not fillable after insert")
	}
	if text, _ := Flatten(filled); !strings.Contains(text, "Grove Mead Ltd") {
		t.Errorf("filled content missing from flattened text: %q", text)
	}
}

func TestPartitionHelpers(t *testing.T) {
	annotated, spaces := Detect("a .....\nb .....\nc .....")
	if len(spaces) != 3 {
		t.Fatalf("expected 3 blanks, got %d", len(spaces))
	}

	filled, _ := Fill(annotated, spaces[1].ID, "middle")
	all := List(filled)

	if got := len(Unfilled(all)); got != 2 {
		t.Errorf("unfilled = %d, want 2", got)
	}
	if got := len(Filled(all)); got != 1 {
		t.Errorf("filled = %d, want 1", got)
	}
	if Filled(all)[0].ID != spaces[1].ID {
		t.Error("filled partition must hold the middle entity")
	}
}
