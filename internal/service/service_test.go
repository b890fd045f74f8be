package service

import (
	"strings"
	"testing"
	"time"

	"github.com/grovemead/leasecraft/internal/docgen"
	"github.com/grovemead/leasecraft/internal/errors"
	"github.com/grovemead/leasecraft/internal/models"
)

// newTestService builds a service over a fresh temporary library.
func newTestService(t *testing.T) *Service {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("LEASECRAFT_DIR", tmpDir)

	svc, err := NewService()
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if err := svc.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary: %v", err)
	}
	return svc
}

func createTestTemplate(t *testing.T, svc *Service, id, docType, content string) {
	t.Helper()
	err := svc.CreateTemplate(&models.Template{
		ID:      id,
		Name:    strings.ReplaceAll(id, "-", " "),
		DocType: docType,
		Content: content,
	})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
}

func TestTemplateLifecycle(t *testing.T) {
	svc := newTestService(t)

	createTestTemplate(t, svc, "lease-standard", "lease-forwarding", "Landlord: .....")

	got, err := svc.GetTemplate("lease-standard")
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.Version != "1.0.0" {
		t.Errorf("new template version = %q, want 1.0.0", got.Version)
	}
	if got.Content != "Landlord: ....." {
		t.Errorf("roundtripped content = %q", got.Content)
	}

	got.Summary = "updated summary"
	if err := svc.UpdateTemplate(got); err != nil {
		t.Fatalf("UpdateTemplate: %v", err)
	}

	updated, _ := svc.GetTemplate("lease-standard")
	if updated.Version != "1.0.1" {
		t.Errorf("updated version = %q, want 1.0.1", updated.Version)
	}

	if err := svc.DeleteTemplate("lease-standard"); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if _, err := svc.GetTemplate("lease-standard"); err == nil {
		t.Error("deleted template must not resolve")
	}
}

func TestGetTemplateNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetTemplate("missing")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if appErr := errors.GetAppError(err); appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("error code = %v, want NOT_FOUND", appErr.Code)
	}
}

func TestCreateDocumentDetectsBlanks(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "lease-standard", "lease-forwarding",
		"Landlord: .....\nTenant: .....")

	doc, err := svc.CreateDocument("lease-standard", "Unit 4B")
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}

	if doc.ID != "unit-4b" {
		t.Errorf("document ID = %q, want unit-4b", doc.ID)
	}
	if doc.DocType != "lease-forwarding" {
		t.Errorf("document DocType = %q", doc.DocType)
	}
	if doc.TemplateRef != "lease-standard" {
		t.Errorf("TemplateRef = %q", doc.TemplateRef)
	}

	spaces, err := svc.ListBlankSpaces(doc.ID)
	if err != nil {
		t.Fatalf("ListBlankSpaces: %v", err)
	}
	if len(spaces) != 2 {
		t.Errorf("expected 2 detected blanks, got %d", len(spaces))
	}
}

func TestFillBlankSpace(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "lease-standard", "lease-forwarding", "Landlord: .....")
	doc, _ := svc.CreateDocument("lease-standard", "test doc")

	spaces, _ := svc.ListBlankSpaces(doc.ID)

	changed, err := svc.FillBlankSpace(doc.ID, spaces[0].ID, "Grove Mead Ltd")
	if err != nil {
		t.Fatalf("FillBlankSpace: %v", err)
	}
	if !changed {
		t.Fatal("fill must report changed")
	}

	// Fill state must survive a reload from disk.
	after, _ := svc.ListBlankSpaces(doc.ID)
	if !after[0].Filled || after[0].Content != "Grove Mead Ltd" {
		t.Errorf("persisted blank = %+v", after[0])
	}

	changed, err = svc.FillBlankSpace(doc.ID, "unknown-id", "x")
	if err != nil {
		t.Fatalf("unknown blank ID must not be an error: %v", err)
	}
	if changed {
		t.Error("unknown blank ID must report changed=false")
	}
}

func TestAutoFillUsesDocTypeSchedule(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "instruction-form", "property-instruction",
		"Landlord: .............\nTenant: .............\nReference: .............")
	doc, _ := svc.CreateDocument("instruction-form", "autofill test")

	record := &models.InstructionRecord{
		LandlordName:      "Grove Mead Ltd",
		TenantName:        "J Smith",
		PropertyReference: "GM-1042",
		PropertyAddress:   "4 Mill Lane",
		CommencementDate:  time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC),
		TermYears:         5,
		RentAmount:        "£1,200",
	}

	report, err := svc.AutoFill(doc.ID, record)
	if err != nil {
		t.Fatalf("AutoFill: %v", err)
	}
	if report.Filled != 3 {
		t.Errorf("Filled = %d, want 3", report.Filled)
	}
	if report.UnusedValues != 4 {
		t.Errorf("UnusedValues = %d, want 4", report.UnusedValues)
	}

	spaces, _ := svc.ListBlankSpaces(doc.ID)
	if spaces[0].Content != "Grove Mead Ltd" || spaces[1].Content != "J Smith" || spaces[2].Content != "GM-1042" {
		t.Errorf("schedule order not respected: %+v", spaces)
	}
}

func TestAutoFillUnknownDocType(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "odd-template", "unscheduled-type", "Blank: .....")
	doc, _ := svc.CreateDocument("odd-template", "odd doc")

	if _, err := svc.AutoFill(doc.ID, &models.InstructionRecord{}); err == nil {
		t.Error("autofill without a schedule for the doc type must fail")
	}
}

func TestGenerateDocumentGatedOnCompletion(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "lease-standard", "lease-forwarding",
		"Landlord: .....\nTenant: .....")
	doc, _ := svc.CreateDocument("lease-standard", "gated doc")

	_, err := svc.GenerateDocument(doc.ID, docgen.OutputText, true)
	if err == nil {
		t.Fatal("generation must be refused while blanks remain")
	}
	if appErr := errors.GetAppError(err); appErr.Code != errors.ErrCodeIncompleteFill {
		t.Errorf("error code = %v, want INCOMPLETE_FILL", appErr.Code)
	}

	// Force path bypasses the gate.
	forced, err := svc.GenerateDocument(doc.ID, docgen.OutputText, false)
	if err != nil {
		t.Fatalf("ungated generation failed: %v", err)
	}
	if !strings.Contains(string(forced), "Landlord: .....") {
		t.Errorf("forced output = %q", string(forced))
	}

	spaces, _ := svc.ListBlankSpaces(doc.ID)
	for _, bs := range spaces {
		if _, err := svc.FillBlankSpace(doc.ID, bs.ID, "value"); err != nil {
			t.Fatal(err)
		}
	}

	out, err := svc.GenerateDocument(doc.ID, docgen.OutputText, true)
	if err != nil {
		t.Fatalf("generation after completion failed: %v", err)
	}
	if !strings.Contains(string(out), "Landlord: value") {
		t.Errorf("final output = %q", string(out))
	}
}

func TestPreviewTextFlattensMarkers(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "lease-standard", "lease-forwarding", "Rent of ..... payable")
	doc, _ := svc.CreateDocument("lease-standard", "preview doc")

	spaces, _ := svc.ListBlankSpaces(doc.ID)
	svc.FillBlankSpace(doc.ID, spaces[0].ID, "£1,200")

	text, err := svc.PreviewText(doc.ID)
	if err != nil {
		t.Fatalf("PreviewText: %v", err)
	}
	if text != "Rent of £1,200 payable" {
		t.Errorf("preview = %q", text)
	}
	if strings.Contains(text, "blank-space") {
		t.Error("markers must never leak into preview text")
	}
}

func TestArchiveDocument(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "lease-standard", "lease-forwarding", "body")
	doc, _ := svc.CreateDocument("lease-standard", "to archive")

	if err := svc.ArchiveDocument(doc.ID); err != nil {
		t.Fatalf("ArchiveDocument: %v", err)
	}

	working, _ := svc.ListDocuments()
	for _, d := range working {
		if d.ID == doc.ID {
			t.Error("archived document still in working set")
		}
	}

	archived, err := svc.ListArchivedDocuments()
	if err != nil {
		t.Fatalf("ListArchivedDocuments: %v", err)
	}
	found := false
	for _, d := range archived {
		if d.ID == doc.ID {
			found = true
		}
	}
	if !found {
		t.Error("document missing from archive")
	}
}

func TestRenderTemplate(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "letter", "", "Dear {{tenant_name}},\nRef: {{reference}}")

	out, err := svc.RenderTemplate("letter", map[string]string{"tenant_name": "J Smith"})
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out != "Dear J Smith,\nRef: [reference]" {
		t.Errorf("rendered = %q", out)
	}
}

func TestSearchTemplates(t *testing.T) {
	svc := newTestService(t)
	createTestTemplate(t, svc, "lease-forwarding-letter", "lease-forwarding", "a")
	createTestTemplate(t, svc, "instruction-form", "property-instruction", "b")

	all, err := svc.SearchTemplates("")
	if err != nil {
		t.Fatalf("SearchTemplates: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("empty query must return everything, got %d", len(all))
	}

	results, err := svc.SearchTemplates("forwarding")
	if err != nil {
		t.Fatalf("SearchTemplates: %v", err)
	}
	if len(results) == 0 || results[0].ID != "lease-forwarding-letter" {
		t.Errorf("search results = %+v", results)
	}
}
