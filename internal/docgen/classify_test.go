package docgen

import (
	"strings"
	"testing"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"empty line", "", LineSpacer},
		{"whitespace only", "   \t", LineSpacer},
		{"upper case heading", "LEASE AGREEMENT", LineHeading},
		{"heading with spaces", "TERMS AND CONDITIONS", LineHeading},
		{"mixed case is body", "Lease Agreement", LineBody},
		{"section header", "Definitions:", LineSectionHeader},
		{"signature label", "Signature: J Smith", LineSignature},
		{"signature rule", "_____________", LineSignature},
		{"date label", "Date: 3 April 2024", LineSignature},
		{"plain body", "The tenant shall pay rent monthly.", LineBody},
		{"heading with colon is section", "NOTICES:", LineSectionHeader},
		{"unresolved variable is not a heading", "{{TITLE}}", LineBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLine(tt.line); got != tt.want {
				t.Errorf("ClassifyLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyLineLongUpperCaseIsBody(t *testing.T) {
	long := strings.Repeat("VERY LONG HEADING ", 7)
	if got := ClassifyLine(long); got != LineBody {
		t.Errorf("over-length upper case line = %v, want body", got)
	}
}

func TestBuildParagraphs(t *testing.T) {
	text := "LEASE AGREEMENT\n\nThe parties agree as follows.\nSignature: _____________"

	paras := BuildParagraphs(text)
	if len(paras) != 4 {
		t.Fatalf("expected 4 paragraphs, got %d", len(paras))
	}

	if paras[0].Kind != LineHeading {
		t.Errorf("first paragraph kind = %v, want heading", paras[0].Kind)
	}
	if paras[1].Kind != LineSpacer || paras[1].Text != "" {
		t.Errorf("blank line = %+v, want empty spacer", paras[1])
	}
	if paras[2].Kind != LineBody {
		t.Errorf("body paragraph kind = %v", paras[2].Kind)
	}
	if paras[3].Kind != LineSignature {
		t.Errorf("signature paragraph kind = %v", paras[3].Kind)
	}
}

func TestBuildParagraphsCentersDatedLine(t *testing.T) {
	paras := BuildParagraphs("DATED 3 April 2024\nBETWEEN")

	if !paras[0].Centered {
		t.Error("DATED line must be center-aligned")
	}
	if paras[1].Centered {
		t.Error("other lines must not be centered")
	}
}

func TestBuildParagraphsNormalizesCRLF(t *testing.T) {
	paras := BuildParagraphs("first\r\nsecond")
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(paras))
	}
	if paras[0].Text != "first" || paras[1].Text != "second" {
		t.Errorf("paragraphs = %+v", paras)
	}
}
