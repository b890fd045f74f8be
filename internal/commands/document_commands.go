// Command implementations for template and document operations. Commands
// stay thin: parameters come in pre-validated from the executor, business
// logic is delegated to the service layer, and results are formatted into
// the shared CommandResult shape.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/grovemead/leasecraft/internal/docgen"
	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/renderer"
	"github.com/grovemead/leasecraft/internal/service"
)

// ListTemplatesCommand lists templates with optional fuzzy filtering
type ListTemplatesCommand struct {
	service *service.Service
	Query   string
	Tag     string
	DocType string
	Format  string
}

func (c *ListTemplatesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ListTemplatesCommand) SetParameters(params map[string]interface{}) error {
	if query, ok := params["query"].(string); ok {
		c.Query = query
	}
	if tag, ok := params["tag"].(string); ok {
		c.Tag = tag
	}
	if docType, ok := params["doc_type"].(string); ok {
		c.DocType = docType
	}
	if format, ok := params["format"].(string); ok {
		c.Format = format
	}
	return nil
}

func (c *ListTemplatesCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	return nil
}

func (c *ListTemplatesCommand) GetName() string {
	return "list-templates"
}

func (c *ListTemplatesCommand) GetDescription() string {
	return "List templates with optional filtering by query, tag, or document type"
}

func (c *ListTemplatesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	templates, err := c.service.SearchTemplates(c.Query)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "LIST_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	if c.Tag != "" {
		var filtered []*models.Template
		for _, t := range templates {
			for _, tag := range t.Tags {
				if tag == c.Tag {
					filtered = append(filtered, t)
					break
				}
			}
		}
		templates = filtered
	}

	if c.DocType != "" {
		var filtered []*models.Template
		for _, t := range templates {
			if t.DocType == c.DocType {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	return &CommandResult{
		Success: true,
		Data:    templates,
		Message: fmt.Sprintf("Found %d templates", len(templates)),
	}, nil
}

// GetTemplateCommand retrieves a specific template by ID
type GetTemplateCommand struct {
	service *service.Service
	ID      string
}

func (c *GetTemplateCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *GetTemplateCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *GetTemplateCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("template ID is required")
	}
	return nil
}

func (c *GetTemplateCommand) GetName() string {
	return "get-template"
}

func (c *GetTemplateCommand) GetDescription() string {
	return "Retrieve a specific template by ID"
}

func (c *GetTemplateCommand) Execute(ctx context.Context) (*CommandResult, error) {
	template, err := c.service.GetTemplate(c.ID)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "TEMPLATE_NOT_FOUND",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    template,
		Message: fmt.Sprintf("Retrieved template: %s", template.Name),
	}, nil
}

// CreateTemplateCommand creates a new template from request parameters.
// Variables are derived from the {{name}} tokens in the content.
type CreateTemplateCommand struct {
	service *service.Service
	ID      string
	Name    string
	Summary string
	DocType string
	Content string
	Tags    []string
}

func (c *CreateTemplateCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *CreateTemplateCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	if name, ok := params["name"].(string); ok {
		c.Name = name
	}
	if summary, ok := params["summary"].(string); ok {
		c.Summary = summary
	}
	if docType, ok := params["doc_type"].(string); ok {
		c.DocType = docType
	}
	if content, ok := params["content"].(string); ok {
		c.Content = content
	}
	if tags, ok := params["tags"].([]interface{}); ok {
		for _, tag := range tags {
			if str, ok := tag.(string); ok && str != "" {
				c.Tags = append(c.Tags, str)
			}
		}
	}
	return nil
}

func (c *CreateTemplateCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("template ID is required")
	}
	if c.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if c.Content == "" {
		return fmt.Errorf("template content is required")
	}
	return nil
}

func (c *CreateTemplateCommand) GetName() string {
	return "create-template"
}

func (c *CreateTemplateCommand) GetDescription() string {
	return "Create a new template"
}

func (c *CreateTemplateCommand) Execute(ctx context.Context) (*CommandResult, error) {
	var variables []models.Variable
	for _, key := range renderer.Keys(c.Content) {
		variables = append(variables, models.Variable{
			Name:     key,
			Required: true,
		})
	}

	template := &models.Template{
		ID:        c.ID,
		Name:      c.Name,
		Summary:   c.Summary,
		DocType:   c.DocType,
		Tags:      c.Tags,
		Variables: variables,
		Content:   c.Content,
	}

	if err := c.service.CreateTemplate(template); err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "CREATE_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    template,
		Message: fmt.Sprintf("Created template: %s", template.ID),
	}, nil
}

// DeleteTemplateCommand deletes a template by ID
type DeleteTemplateCommand struct {
	service *service.Service
	ID      string
}

func (c *DeleteTemplateCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *DeleteTemplateCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *DeleteTemplateCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("template ID is required")
	}
	return nil
}

func (c *DeleteTemplateCommand) GetName() string {
	return "delete-template"
}

func (c *DeleteTemplateCommand) GetDescription() string {
	return "Delete a template by ID"
}

func (c *DeleteTemplateCommand) Execute(ctx context.Context) (*CommandResult, error) {
	if err := c.service.DeleteTemplate(c.ID); err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "DELETE_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Message: fmt.Sprintf("Deleted template: %s", c.ID),
	}, nil
}

// ListDocumentsCommand lists working or archived documents
type ListDocumentsCommand struct {
	service  *service.Service
	Archived bool
	Format   string
}

func (c *ListDocumentsCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ListDocumentsCommand) SetParameters(params map[string]interface{}) error {
	if archived, ok := params["archived"].(bool); ok {
		c.Archived = archived
	}
	if format, ok := params["format"].(string); ok {
		c.Format = format
	}
	return nil
}

func (c *ListDocumentsCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	return nil
}

func (c *ListDocumentsCommand) GetName() string {
	return "list-documents"
}

func (c *ListDocumentsCommand) GetDescription() string {
	return "List working documents, or archived documents with --archived"
}

func (c *ListDocumentsCommand) Execute(ctx context.Context) (*CommandResult, error) {
	var docs []*models.Document
	var err error

	if c.Archived {
		docs, err = c.service.ListArchivedDocuments()
	} else {
		docs, err = c.service.ListDocuments()
	}

	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "LIST_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    docs,
		Message: fmt.Sprintf("Found %d documents", len(docs)),
	}, nil
}

// GetDocumentCommand retrieves a specific document by ID
type GetDocumentCommand struct {
	service *service.Service
	ID      string
}

func (c *GetDocumentCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *GetDocumentCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *GetDocumentCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *GetDocumentCommand) GetName() string {
	return "get-document"
}

func (c *GetDocumentCommand) GetDescription() string {
	return "Retrieve a specific document by ID"
}

func (c *GetDocumentCommand) Execute(ctx context.Context) (*CommandResult, error) {
	doc, err := c.service.GetDocument(c.ID)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "DOCUMENT_NOT_FOUND",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    doc,
		Message: fmt.Sprintf("Retrieved document: %s", doc.Name),
	}, nil
}

// CreateDocumentCommand creates a working document from a template
type CreateDocumentCommand struct {
	service    *service.Service
	TemplateID string
	Name       string
}

func (c *CreateDocumentCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *CreateDocumentCommand) SetParameters(params map[string]interface{}) error {
	if templateID, ok := params["template_id"].(string); ok {
		c.TemplateID = templateID
	}
	if name, ok := params["name"].(string); ok {
		c.Name = name
	}
	return nil
}

func (c *CreateDocumentCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.TemplateID == "" {
		return fmt.Errorf("template ID is required")
	}
	if c.Name == "" {
		return fmt.Errorf("document name is required")
	}
	return nil
}

func (c *CreateDocumentCommand) GetName() string {
	return "create-document"
}

func (c *CreateDocumentCommand) GetDescription() string {
	return "Create a working document from a template, detecting its blank spaces"
}

func (c *CreateDocumentCommand) Execute(ctx context.Context) (*CommandResult, error) {
	doc, err := c.service.CreateDocument(c.TemplateID, c.Name)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "CREATE_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    doc,
		Message: fmt.Sprintf("Created document %s from template %s", doc.ID, c.TemplateID),
	}, nil
}

// DeleteDocumentCommand deletes a document by ID
type DeleteDocumentCommand struct {
	service *service.Service
	ID      string
}

func (c *DeleteDocumentCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *DeleteDocumentCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *DeleteDocumentCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *DeleteDocumentCommand) GetName() string {
	return "delete-document"
}

func (c *DeleteDocumentCommand) GetDescription() string {
	return "Delete a document by ID"
}

func (c *DeleteDocumentCommand) Execute(ctx context.Context) (*CommandResult, error) {
	if err := c.service.DeleteDocument(c.ID); err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "DELETE_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Message: fmt.Sprintf("Deleted document: %s", c.ID),
	}, nil
}

// ArchiveDocumentCommand moves a document into the archive
type ArchiveDocumentCommand struct {
	service *service.Service
	ID      string
}

func (c *ArchiveDocumentCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ArchiveDocumentCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *ArchiveDocumentCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *ArchiveDocumentCommand) GetName() string {
	return "archive"
}

func (c *ArchiveDocumentCommand) GetDescription() string {
	return "Move a document out of the working set into the archive"
}

func (c *ArchiveDocumentCommand) Execute(ctx context.Context) (*CommandResult, error) {
	if err := c.service.ArchiveDocument(c.ID); err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "ARCHIVE_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Message: fmt.Sprintf("Archived document: %s", c.ID),
	}, nil
}

// DetectBlankSpacesCommand re-runs blank-space detection on a document
type DetectBlankSpacesCommand struct {
	service *service.Service
	ID      string
}

func (c *DetectBlankSpacesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *DetectBlankSpacesCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *DetectBlankSpacesCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *DetectBlankSpacesCommand) GetName() string {
	return "detect"
}

func (c *DetectBlankSpacesCommand) GetDescription() string {
	return "Detect blank spaces in a document and list them in document order"
}

func (c *DetectBlankSpacesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	spaces, err := c.service.DetectBlankSpaces(c.ID)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "DETECT_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    spaces,
		Message: fmt.Sprintf("Found %d blank spaces", len(spaces)),
	}, nil
}

// FillBlankCommand fills one blank space by ID
type FillBlankCommand struct {
	service *service.Service
	ID      string
	BlankID string
	Content string
}

func (c *FillBlankCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *FillBlankCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	if blankID, ok := params["blank_id"].(string); ok {
		c.BlankID = blankID
	}
	if content, ok := params["content"].(string); ok {
		c.Content = content
	}
	return nil
}

func (c *FillBlankCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if c.BlankID == "" {
		return fmt.Errorf("blank ID is required")
	}
	if c.Content == "" {
		return fmt.Errorf("fill content is required")
	}
	return nil
}

func (c *FillBlankCommand) GetName() string {
	return "fill"
}

func (c *FillBlankCommand) GetDescription() string {
	return "Fill one blank space in a document by its ID"
}

func (c *FillBlankCommand) Execute(ctx context.Context) (*CommandResult, error) {
	changed, err := c.service.FillBlankSpace(c.ID, c.BlankID, c.Content)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "FILL_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	if !changed {
		return &CommandResult{
			Success: true,
			Data:    map[string]bool{"changed": false},
			Message: fmt.Sprintf("No blank space with ID %s; document unchanged", c.BlankID),
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    map[string]bool{"changed": true},
		Message: fmt.Sprintf("Filled blank %s", c.BlankID),
	}, nil
}

// InsertBlankCommand places a new blank space at a document offset
type InsertBlankCommand struct {
	service  *service.Service
	ID       string
	Position int
	Length   int
}

func (c *InsertBlankCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *InsertBlankCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	if pos, ok := params["position"].(int); ok {
		c.Position = pos
	}
	if length, ok := params["length"].(int); ok {
		c.Length = length
	} else {
		c.Length = 10
	}
	return nil
}

func (c *InsertBlankCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if c.Position < 0 {
		return fmt.Errorf("position must not be negative")
	}
	if c.Length < 1 {
		return fmt.Errorf("length must be at least 1")
	}
	return nil
}

func (c *InsertBlankCommand) GetName() string {
	return "insert-blank"
}

func (c *InsertBlankCommand) GetDescription() string {
	return "Insert a new unfilled blank space at a document offset"
}

func (c *InsertBlankCommand) Execute(ctx context.Context) (*CommandResult, error) {
	bs, err := c.service.InsertBlankSpace(c.ID, c.Position, c.Length)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "INSERT_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    bs,
		Message: fmt.Sprintf("Inserted blank %s at position %d", bs.ID, c.Position),
	}, nil
}

// AutoFillCommand fills a document's blanks from an instruction record
type AutoFillCommand struct {
	service *service.Service
	ID      string
	Record  *models.InstructionRecord
}

func (c *AutoFillCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *AutoFillCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}

	record := &models.InstructionRecord{}
	if v, ok := params["landlord_name"].(string); ok {
		record.LandlordName = v
	}
	if v, ok := params["tenant_name"].(string); ok {
		record.TenantName = v
	}
	if v, ok := params["property_reference"].(string); ok {
		record.PropertyReference = v
	}
	if v, ok := params["property_address"].(string); ok {
		record.PropertyAddress = v
	}
	if v, ok := params["postal_address"].(string); ok {
		record.PostalAddress = v
	}
	if v, ok := params["site_description"].(string); ok {
		record.SiteDescription = v
	}
	if v, ok := params["commencement_date"].(string); ok && v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("invalid commencement_date: %w", err)
		}
		record.CommencementDate = t
	}
	if v, ok := params["term_years"].(int); ok {
		record.TermYears = v
	}
	if v, ok := params["rent_amount"].(string); ok {
		record.RentAmount = v
	}
	c.Record = record

	return nil
}

func (c *AutoFillCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if c.Record == nil {
		return fmt.Errorf("instruction record is required")
	}
	return nil
}

func (c *AutoFillCommand) GetName() string {
	return "autofill"
}

func (c *AutoFillCommand) GetDescription() string {
	return "Fill a document's blanks in order from an instruction record"
}

func (c *AutoFillCommand) Execute(ctx context.Context) (*CommandResult, error) {
	report, err := c.service.AutoFill(c.ID, c.Record)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "AUTOFILL_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    report,
		Message: fmt.Sprintf("Filled %d blanks, %d left unfilled", report.Filled, report.Unmatched),
	}, nil
}

// PlaceholdersCommand lists a document's blanks with derived labels
type PlaceholdersCommand struct {
	service *service.Service
	ID      string
}

func (c *PlaceholdersCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *PlaceholdersCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *PlaceholdersCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *PlaceholdersCommand) GetName() string {
	return "placeholders"
}

func (c *PlaceholdersCommand) GetDescription() string {
	return "List a document's blank spaces with ordinals and semantic categories"
}

func (c *PlaceholdersCommand) Execute(ctx context.Context) (*CommandResult, error) {
	placeholders, err := c.service.Placeholders(c.ID)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "PLACEHOLDERS_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    placeholders,
		Message: fmt.Sprintf("Found %d placeholders", len(placeholders)),
	}, nil
}

// RenderTemplateCommand substitutes variables into a template body
type RenderTemplateCommand struct {
	service   *service.Service
	ID        string
	Variables map[string]string
}

func (c *RenderTemplateCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *RenderTemplateCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	if raw, ok := params["variables"].(map[string]interface{}); ok {
		vars := make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				vars[k] = s
			} else {
				vars[k] = fmt.Sprintf("%v", v)
			}
		}
		c.Variables = vars
	}
	return nil
}

func (c *RenderTemplateCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("template ID is required")
	}
	return nil
}

func (c *RenderTemplateCommand) GetName() string {
	return "render"
}

func (c *RenderTemplateCommand) GetDescription() string {
	return "Render a template with variable substitution"
}

func (c *RenderTemplateCommand) Execute(ctx context.Context) (*CommandResult, error) {
	rendered, err := c.service.RenderTemplate(c.ID, c.Variables)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "RENDER_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    rendered,
		Message: fmt.Sprintf("Rendered template: %s", c.ID),
	}, nil
}

// GeneratedFile is the payload returned by the generate command
type GeneratedFile struct {
	Filename string `json:"filename"`
	Bytes    []byte `json:"bytes"`
}

// GenerateDocumentCommand produces final output from a document
type GenerateDocumentCommand struct {
	service *service.Service
	ID      string
	Output  string
	Force   bool
}

func (c *GenerateDocumentCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *GenerateDocumentCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	if output, ok := params["output"].(string); ok {
		c.Output = output
	} else {
		c.Output = "docx"
	}
	if force, ok := params["force"].(bool); ok {
		c.Force = force
	}
	return nil
}

func (c *GenerateDocumentCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	if c.Output != "docx" && c.Output != "text" {
		return fmt.Errorf("output must be 'docx' or 'text'")
	}
	return nil
}

func (c *GenerateDocumentCommand) GetName() string {
	return "generate"
}

func (c *GenerateDocumentCommand) GetDescription() string {
	return "Generate final DOCX or plain-text output from a document"
}

func (c *GenerateDocumentCommand) Execute(ctx context.Context) (*CommandResult, error) {
	mode := docgen.OutputDocx
	ext := "docx"
	if c.Output == "text" {
		mode = docgen.OutputText
		ext = "txt"
	}

	data, err := c.service.GenerateDocument(c.ID, mode, !c.Force)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "GENERATE_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data: &GeneratedFile{
			Filename: fmt.Sprintf("%s.%s", c.ID, ext),
			Bytes:    data,
		},
		Message: fmt.Sprintf("Generated %d bytes of %s output", len(data), c.Output),
	}, nil
}

// PreviewDocumentCommand returns a document's flattened plain text
type PreviewDocumentCommand struct {
	service *service.Service
	ID      string
}

func (c *PreviewDocumentCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *PreviewDocumentCommand) SetParameters(params map[string]interface{}) error {
	if id, ok := params["id"].(string); ok {
		c.ID = id
	}
	return nil
}

func (c *PreviewDocumentCommand) Validate() error {
	if c.service == nil {
		return fmt.Errorf("service not set")
	}
	if c.ID == "" {
		return fmt.Errorf("document ID is required")
	}
	return nil
}

func (c *PreviewDocumentCommand) GetName() string {
	return "preview"
}

func (c *PreviewDocumentCommand) GetDescription() string {
	return "Show a document's current text with blanks rendered as dotted gaps"
}

func (c *PreviewDocumentCommand) Execute(ctx context.Context) (*CommandResult, error) {
	text, err := c.service.PreviewText(c.ID)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error: &ErrorInfo{
				Code:    "PREVIEW_FAILED",
				Message: err.Error(),
			},
		}, nil
	}

	return &CommandResult{
		Success: true,
		Data:    text,
		Message: fmt.Sprintf("Preview of document: %s", c.ID),
	}, nil
}
