package commands

import (
	"context"
	"testing"

	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/service"
)

func newTestExecutor(t *testing.T) (*CommandExecutor, *service.Service) {
	t.Helper()
	t.Setenv("LEASECRAFT_DIR", t.TempDir())

	svc, err := service.NewService()
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err := svc.InitLibrary(); err != nil {
		t.Fatalf("failed to init library: %v", err)
	}
	return NewCommandExecutor(svc), svc
}

func TestCreateTemplateCommand(t *testing.T) {
	executor, svc := newTestExecutor(t)

	result, err := executor.Execute(context.Background(), "create-template", map[string]interface{}{
		"id":       "forwarding-letter",
		"name":     "Forwarding Letter",
		"summary":  "Covering letter for a signed lease",
		"doc_type": "lease-forwarding",
		"content":  "Dear {{tenant_name}},\n\nRef: {{reference}}\n",
		"tags":     []string{"letter"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("create-template failed: %+v", result.Error)
	}

	tmpl, err := svc.GetTemplate("forwarding-letter")
	if err != nil {
		t.Fatalf("created template not retrievable: %v", err)
	}
	if tmpl.Name != "Forwarding Letter" {
		t.Errorf("expected name 'Forwarding Letter', got %q", tmpl.Name)
	}
	if tmpl.DocType != "lease-forwarding" {
		t.Errorf("expected doc type 'lease-forwarding', got %q", tmpl.DocType)
	}
	if tmpl.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", tmpl.Version)
	}
	if len(tmpl.Variables) != 2 {
		t.Fatalf("expected 2 derived variables, got %d", len(tmpl.Variables))
	}
	if tmpl.Variables[0].Name != "tenant_name" || tmpl.Variables[1].Name != "reference" {
		t.Errorf("variables not derived from content: %v", tmpl.Variables)
	}

	returned, ok := result.Data.(*models.Template)
	if !ok {
		t.Fatalf("expected *models.Template in result data, got %T", result.Data)
	}
	if returned.ID != "forwarding-letter" {
		t.Errorf("result data has wrong ID: %q", returned.ID)
	}
}

func TestCreateTemplateCommandRejectsMissingContent(t *testing.T) {
	executor, _ := newTestExecutor(t)

	result, err := executor.Execute(context.Background(), "create-template", map[string]interface{}{
		"id":   "empty-template",
		"name": "Empty",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Success {
		t.Error("create-template without content should fail validation")
	}
	if result.Error == nil {
		t.Error("failed result should carry error info")
	}
}

func TestDeleteTemplateCommand(t *testing.T) {
	executor, svc := newTestExecutor(t)

	result, err := executor.Execute(context.Background(), "create-template", map[string]interface{}{
		"id":      "short-lived",
		"name":    "Short Lived",
		"content": "Body\n",
	})
	if err != nil || !result.Success {
		t.Fatalf("failed to create template: err=%v result=%+v", err, result)
	}

	result, err = executor.Execute(context.Background(), "delete-template", map[string]interface{}{
		"id": "short-lived",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Success {
		t.Fatalf("delete-template failed: %+v", result.Error)
	}

	if _, err := svc.GetTemplate("short-lived"); err == nil {
		t.Error("deleted template should not be retrievable")
	}
}

func TestDeleteTemplateCommandUnknownID(t *testing.T) {
	executor, _ := newTestExecutor(t)

	result, err := executor.Execute(context.Background(), "delete-template", map[string]interface{}{
		"id": "no-such-template",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Success {
		t.Error("deleting an unknown template should fail")
	}
}
