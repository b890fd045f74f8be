// System commands for metadata and health: document types, fill progress,
// and a basic service health probe.
package commands

import (
	"context"
	"fmt"

	"github.com/grovemead/leasecraft/internal/importer"
	"github.com/grovemead/leasecraft/internal/service"
)

// ListDocTypesCommand lists known document types
type ListDocTypesCommand struct {
	service *service.Service
}

func (c *ListDocTypesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ListDocTypesCommand) SetParameters(params map[string]interface{}) error {
	// No parameters needed for listing document types
	return nil
}

func (c *ListDocTypesCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	return nil
}

func (c *ListDocTypesCommand) GetName() string {
	return "doc-types"
}

func (c *ListDocTypesCommand) GetDescription() string {
	return "List document types with configured field schedules"
}

func (c *ListDocTypesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	docTypes := c.service.DocTypes()

	return &CommandResult{
		Success: true,
		Data:    docTypes,
		Message: fmt.Sprintf("Found %d document types", len(docTypes)),
	}, nil
}

// CompletionCommand reports a document's fill progress
type CompletionCommand struct {
	service *service.Service
	ID      string
}

func (c *CompletionCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *CompletionCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *CompletionCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *CompletionCommand) GetName() string {
	return "completion"
}

func (c *CompletionCommand) GetDescription() string {
	return "Report how many of a document's blanks are filled"
}

func (c *CompletionCommand) Execute(ctx context.Context) (*CommandResult, error) {
	progress, err := c.service.Completion(c.ID)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "COMPLETION_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    progress,
		Message: fmt.Sprintf("%d of %d blanks filled (%.0f%%)", progress.Filled, progress.Total, progress.Percent()),
	}, nil
}

// ImportTemplatesCommand imports template files from a directory
type ImportTemplatesCommand struct {
	service *service.Service
	Path    string
	DocType string
	DryRun  bool
}

func (c *ImportTemplatesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ImportTemplatesCommand) SetParameters(params map[string]interface{}) error {
	if path, ok := params["path"].(string); ok {
		c.Path = path
	}
	if docType, ok := params["doc_type"].(string); ok {
		c.DocType = docType
	}
	if dryRun, ok := params["dry_run"].(bool); ok {
		c.DryRun = dryRun
	}
	return nil
}

func (c *ImportTemplatesCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.Path == "" {
		return fmt.Errorf("import path is required")
	}
	return nil
}

func (c *ImportTemplatesCommand) GetName() string {
	return "import"
}

func (c *ImportTemplatesCommand) GetDescription() string {
	return "Import .txt and .md files from a directory as templates"
}

func (c *ImportTemplatesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	result, err := c.service.ImportTemplates(importer.ImportOptions{
		Path:    c.Path,
		DocType: c.DocType,
		DryRun:  c.DryRun,
	})
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "IMPORT_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    result,
		Message: fmt.Sprintf("Imported %d templates, skipped %d, %d errors",
			len(result.Templates), len(result.Skipped), len(result.Errors)),
	}, nil
}

// HealthCheckCommand provides system health information
type HealthCheckCommand struct {
	service *service.Service
}

func (c *HealthCheckCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *HealthCheckCommand) SetParameters(params map[string]interface{}) error {
	// No parameters needed for health check
	return nil
}

func (c *HealthCheckCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	return nil
}

func (c *HealthCheckCommand) GetName() string {
	return "health"
}

func (c *HealthCheckCommand) GetDescription() string {
	return "Check system health and service status"
}

func (c *HealthCheckCommand) Execute(ctx context.Context) (*CommandResult, error) {
	// Basic health check - try to list templates to ensure the library is readable
	_, err := c.service.ListTemplates()
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "HEALTH_CHECK_FAILED",
				Message: fmt.Sprintf("Service health check failed: %v", err),
			},
		}, nil
	}

	healthData := map[string]interface{}{
		"status":  "healthy",
		"service": "leasecraft",
		"library": c.service.BaseDir(),
	}

	return &CommandResult{
		Success: true,
		Data:    healthData,
		Message: "Service is healthy",
	}, nil
}
