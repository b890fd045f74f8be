package blankspace

import "testing"

func TestCursorWrapsAround(t *testing.T) {
	_, spaces := Detect("one .....\ntwo .....\nthree .....")
	if len(spaces) != 3 {
		t.Fatalf("expected 3 blanks, got %d", len(spaces))
	}

	var c Cursor

	first, ok := c.Current(spaces)
	if !ok || first.ID != spaces[0].ID {
		t.Fatalf("cursor must start at the first unfilled blank")
	}

	c.Next(spaces)
	c.Next(spaces)
	last, _ := c.Current(spaces)
	if last.ID != spaces[2].ID {
		t.Errorf("after two steps cursor should be at the third blank")
	}

	wrapped, ok := c.Next(spaces)
	if !ok || wrapped.ID != spaces[0].ID {
		t.Errorf("stepping past the last blank must wrap to the first, got %+v", wrapped)
	}

	back, ok := c.Prev(spaces)
	if !ok || back.ID != spaces[2].ID {
		t.Errorf("stepping before the first blank must wrap to the last, got %+v", back)
	}
}

func TestCursorSkipsFilledEntities(t *testing.T) {
	annotated, spaces := Detect("one .....\ntwo .....\nthree .....")

	filled, _ := Fill(annotated, spaces[1].ID, "done")
	current := List(filled)

	var c Cursor
	seen := map[string]bool{}
	for i := 0; i < len(current); i++ {
		bs, ok := c.Current(current)
		if !ok {
			break
		}
		seen[bs.ID] = true
		c.Next(current)
	}

	if seen[spaces[1].ID] {
		t.Error("cursor must never land on a filled entity")
	}
	if !seen[spaces[0].ID] || !seen[spaces[2].ID] {
		t.Error("cursor must visit every unfilled entity")
	}
}

func TestCursorEmptySetIsInert(t *testing.T) {
	annotated, spaces := Detect("only .....")
	filled, _ := Fill(annotated, spaces[0].ID, "value")
	current := List(filled)

	var c Cursor
	if _, ok := c.Current(current); ok {
		t.Error("cursor over fully filled document must report ok=false")
	}
	if _, ok := c.Next(current); ok {
		t.Error("Next over fully filled document must report ok=false")
	}
	if _, ok := c.Prev(current); ok {
		t.Error("Prev over fully filled document must report ok=false")
	}
}

func TestCursorRecoversWhenIndexOutOfRange(t *testing.T) {
	annotated, spaces := Detect("a .....\nb .....")

	var c Cursor
	c.Next(spaces) // index 1

	// Fill the second blank; the unfilled subset shrinks under the cursor.
	filled, _ := Fill(annotated, spaces[1].ID, "value")
	current := List(filled)

	bs, ok := c.Current(current)
	if !ok {
		t.Fatal("one unfilled blank remains; cursor must find it")
	}
	if bs.ID != spaces[0].ID {
		t.Errorf("cursor should reset to the first unfilled blank, got %s", bs.ID)
	}
}
