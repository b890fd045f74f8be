package scanner

import (
	"reflect"
	"testing"
)

func TestScanPatternKinds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "dot run",
			text: "Name: .....",
			want: []Span{{Text: ".....", Offset: 6, Kind: KindDotRun}},
		},
		{
			name: "underscore run",
			text: "Signed ____ here",
			want: []Span{{Text: "____", Offset: 7, Kind: KindUnderscoreRun}},
		},
		{
			name: "dash run",
			text: "Ref ---",
			want: []Span{{Text: "---", Offset: 4, Kind: KindDashRun}},
		},
		{
			name: "bracket placeholder",
			text: "between [landlord name] and",
			want: []Span{{Text: "[landlord name]", Offset: 8, Kind: KindBracket}},
		},
		{
			name: "paren placeholder",
			text: "the sum of (amount)",
			want: []Span{{Text: "(amount)", Offset: 11, Kind: KindParen}},
		},
		{
			name: "variable token",
			text: "Dear {{tenant_name}},",
			want: []Span{{Text: "{{tenant_name}}", Offset: 5, Kind: KindVariable}},
		},
		{
			name: "two-character run is not a blank",
			text: "item .. end",
			want: nil,
		},
		{
			name: "empty brackets are not viable",
			text: "see [ ] for details",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestScanLoneUnderscore(t *testing.T) {
	spans := Scan("Initials: _ (tenant)")

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Kind != KindLoneUnderscore || spans[0].Text != "_" {
		t.Errorf("expected lone underscore first, got %+v", spans[0])
	}
	if spans[1].Kind != KindParen {
		t.Errorf("expected paren span second, got %+v", spans[1])
	}
}

func TestScanOverlapLongestWins(t *testing.T) {
	// The dot run inside the parens overlaps the paren match; the paren
	// candidate starts earlier and covers more text, so it wins.
	spans := Scan("amount (...) payable")

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Kind != KindParen || spans[0].Text != "(...)" {
		t.Errorf("expected paren span, got %+v", spans[0])
	}
}

func TestScanCoalescesRuns(t *testing.T) {
	// Deed boilerplate reads as one fillable region even though the dots
	// are interrupted by short words.
	spans := Scan("This ... day of ... 20....")

	if len(spans) != 1 {
		t.Fatalf("expected 1 coalesced span, got %d: %+v", len(spans), spans)
	}
	want := "... day of ... 20...."
	if spans[0].Text != want {
		t.Errorf("coalesced text = %q, want %q", spans[0].Text, want)
	}
	if spans[0].Offset != 5 {
		t.Errorf("coalesced offset = %d, want 5", spans[0].Offset)
	}
}

func TestScanDoesNotCoalesceAcrossLines(t *testing.T) {
	spans := Scan("Date: ...\nName: ...")

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans across lines, got %d: %+v", len(spans), spans)
	}
}

func TestScanDoesNotCoalesceWideGaps(t *testing.T) {
	spans := Scan("... a gap wider than ten ...")

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
}

func TestScanDoesNotCoalesceMixedKinds(t *testing.T) {
	spans := Scan("... and ___")

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Kind != KindDotRun || spans[1].Kind != KindUnderscoreRun {
		t.Errorf("kinds = %v, %v", spans[0].Kind, spans[1].Kind)
	}
}

func TestScanIsDeterministic(t *testing.T) {
	text := "LEASE dated ..... between [landlord] and {{tenant_name}} of ______"

	first := Scan(text)
	second := Scan(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scans differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	if len(first) == 0 {
		t.Fatal("expected spans in mixed text")
	}
	for i := 1; i < len(first); i++ {
		if first[i].Offset < first[i-1].End() {
			t.Errorf("spans overlap or out of order: %+v then %+v", first[i-1], first[i])
		}
	}
}

func TestSpanEnd(t *testing.T) {
	s := Span{Text: "....", Offset: 10}
	if s.End() != 14 {
		t.Errorf("End() = %d, want 14", s.End())
	}
}
