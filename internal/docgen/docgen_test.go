package docgen

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestGenerateText(t *testing.T) {
	text := "LEASE AGREEMENT\n\nThe tenant shall pay rent."

	out, err := Generate(text, OutputText)
	if err != nil {
		t.Fatalf("Generate(text) error: %v", err)
	}

	if string(out) != text {
		t.Errorf("text output = %q, want input preserved", string(out))
	}
}

func TestGenerateDefaultsToText(t *testing.T) {
	out, err := Generate("body line", "")
	if err != nil {
		t.Fatalf("Generate with empty mode error: %v", err)
	}
	if string(out) != "body line" {
		t.Errorf("output = %q", string(out))
	}
}

func TestGenerateUnknownMode(t *testing.T) {
	if _, err := Generate("text", OutputMode("pdf")); err == nil {
		t.Error("unknown output mode must be rejected")
	}
}

func TestGenerateDocxIsReadableArchive(t *testing.T) {
	data, err := Generate("LEASE AGREEMENT\n\nDATED 3 April 2024\nThe parties agree.", OutputDocx)
	if err != nil {
		t.Fatalf("Generate(docx) error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a readable zip archive: %v", err)
	}

	parts := map[string]bool{}
	for _, f := range zr.File {
		parts[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !parts[want] {
			t.Errorf("archive missing part %s", want)
		}
	}

	doc := readPart(t, zr, "word/document.xml")
	if !strings.Contains(doc, "LEASE AGREEMENT") {
		t.Error("document part missing heading text")
	}
	if !strings.Contains(doc, `w:val="center"`) {
		t.Error("DATED line must carry center justification")
	}
	if !strings.Contains(doc, "<w:b>") {
		t.Error("heading run must be bold")
	}
}

func TestGenerateDocxEmptyContent(t *testing.T) {
	data, err := Generate("", OutputDocx)
	if err != nil {
		t.Fatalf("empty content must still produce a document: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("empty document is not a readable archive: %v", err)
	}

	doc := readPart(t, zr, "word/document.xml")
	if !strings.Contains(doc, "<w:body>") {
		t.Error("empty document must contain a body")
	}
}

func TestGenerateDocxEscapesXML(t *testing.T) {
	data, err := Generate("Smith & Sons <Ltd>", OutputDocx)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("archive unreadable: %v", err)
	}

	doc := readPart(t, zr, "word/document.xml")
	if strings.Contains(doc, "Smith & Sons <Ltd>") {
		t.Error("raw markup characters leaked into the document part")
	}
	if !strings.Contains(doc, "Smith &amp; Sons") {
		t.Error("ampersand must be XML-escaped")
	}
}

func TestPlainTextPreservesSpacers(t *testing.T) {
	paras := BuildParagraphs("one\n\ntwo")
	if got := PlainText(paras); got != "one\n\ntwo" {
		t.Errorf("PlainText = %q", got)
	}
}

func readPart(t *testing.T, zr *zip.Reader, name string) string {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(data)
	}
	t.Fatalf("part %s not found", name)
	return ""
}
