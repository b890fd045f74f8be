// Package commands implements the unified command execution system.
//
// It is the coordination layer between user interfaces (CLI, HTTP, TUI)
// and the service layer. Every interface converts its input into a
// parameter map, the executor validates the map against the command's
// schema, and the command delegates to the service. Results come back in
// one CommandResult shape regardless of which interface asked.
//
// To add a command: implement the Command interface in
// document_commands.go or utility_commands.go, register it in
// registerCommands(), and map its schema in getValidationSchema().
package commands

import (
	"context"

	"github.com/grovemead/leasecraft/internal/errors"
	"github.com/grovemead/leasecraft/internal/service"
	"github.com/grovemead/leasecraft/internal/validation"
)

// CommandResult represents the result of executing a command
type CommandResult struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Success bool        `json:"success"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo provides structured error information
type ErrorInfo struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Command represents a unified command interface
type Command interface {
	Execute(ctx context.Context) (*CommandResult, error)
	Validate() error
	GetName() string
	GetDescription() string
}

// ParameterizedCommand interface for commands that accept parameters
type ParameterizedCommand interface {
	SetParameters(params map[string]interface{}) error
}

// ServiceAwareCommand interface for commands that need service access
type ServiceAwareCommand interface {
	SetService(svc *service.Service)
}

// CommandRegistry manages available commands
type CommandRegistry struct {
	commands map[string]func() Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]func() Command),
	}
}

// Register adds a command factory to the registry
func (r *CommandRegistry) Register(name string, factory func() Command) {
	r.commands[name] = factory
}

// Get retrieves a command factory by name
func (r *CommandRegistry) Get(name string) (func() Command, bool) {
	factory, exists := r.commands[name]
	return factory, exists
}

// List returns all available command names
func (r *CommandRegistry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// CommandExecutor provides a unified way to execute commands
type CommandExecutor struct {
	service   *service.Service
	registry  *CommandRegistry
	validator *validation.Validator
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(svc *service.Service) *CommandExecutor {
	executor := &CommandExecutor{
		service:   svc,
		registry:  NewCommandRegistry(),
		validator: validation.NewValidator(),
	}

	executor.registerCommands()

	return executor
}

// Execute runs a command by name with the given parameters
func (e *CommandExecutor) Execute(ctx context.Context, commandName string, params map[string]interface{}) (*CommandResult, error) {
	factory, exists := e.registry.Get(commandName)
	if !exists {
		appErr := errors.CommandNotFoundError(commandName)
		return &CommandResult{
			Success: false,
			Error:   errorInfoFrom(appErr),
		}, nil
	}

	// Validate parameters against schema
	if validationSchema := e.getValidationSchema(commandName); validationSchema != "" {
		if params == nil {
			params = make(map[string]interface{})
		}

		validationResult := e.validator.Validate(validationSchema, params)
		if !validationResult.Valid {
			return &CommandResult{
				Success: false,
				Error:   errorInfoFrom(validationResult.ToAppError()),
			}, nil
		}

		// Use validated and converted parameters
		params = validationResult.GetValidatedData()
	}

	cmd := factory()

	if parameterized, ok := cmd.(ParameterizedCommand); ok {
		if err := parameterized.SetParameters(params); err != nil {
			return &CommandResult{
				Success: false,
				Error:   errorInfoFrom(errors.ValidationError(err.Error())),
			}, nil
		}
	}

	if err := cmd.Validate(); err != nil {
		return &CommandResult{
			Success: false,
			Error:   errorInfoFrom(errors.ValidationError(err.Error())),
		}, nil
	}

	result, err := cmd.Execute(ctx)
	if err != nil {
		return &CommandResult{
			Success: false,
			Error:   errorInfoFrom(errors.GetAppError(err)),
		}, nil
	}

	return result, nil
}

// errorInfoFrom converts an AppError to the wire-friendly ErrorInfo shape
func errorInfoFrom(appErr *errors.AppError) *ErrorInfo {
	return &ErrorInfo{
		Code:     string(appErr.Code),
		Message:  appErr.Message,
		Details:  appErr.Details,
		Category: string(appErr.Category),
		Severity: string(appErr.Severity),
	}
}

// getValidationSchema returns the validation schema name for a command
func (e *CommandExecutor) getValidationSchema(commandName string) string {
	switch commandName {
	case "list-templates":
		return "list_templates"
	case "get-template", "delete-template":
		return "get_template"
	case "create-template":
		return "create_template"
	case "list-documents":
		return "list_documents"
	case "get-document", "detect", "placeholders", "completion", "archive", "delete-document", "preview":
		return "get_document"
	case "create-document":
		return "create_document"
	case "fill":
		return "fill_blank"
	case "insert-blank":
		return "insert_blank"
	case "autofill":
		return "autofill_document"
	case "render":
		return "render_template"
	case "generate":
		return "generate_document"
	case "import":
		return "import_templates"
	default:
		return "" // No validation schema defined
	}
}

// registerCommands registers all available commands
func (e *CommandExecutor) registerCommands() {
	register := func(name string, factory func() Command) {
		e.registry.Register(name, func() Command {
			cmd := factory()
			if serviceAware, ok := cmd.(ServiceAwareCommand); ok {
				serviceAware.SetService(e.service)
			}
			return cmd
		})
	}

	register("list-templates", func() Command { return &ListTemplatesCommand{} })
	register("get-template", func() Command { return &GetTemplateCommand{} })
	register("create-template", func() Command { return &CreateTemplateCommand{} })
	register("delete-template", func() Command { return &DeleteTemplateCommand{} })
	register("list-documents", func() Command { return &ListDocumentsCommand{} })
	register("get-document", func() Command { return &GetDocumentCommand{} })
	register("create-document", func() Command { return &CreateDocumentCommand{} })
	register("delete-document", func() Command { return &DeleteDocumentCommand{} })
	register("archive", func() Command { return &ArchiveDocumentCommand{} })
	register("detect", func() Command { return &DetectBlankSpacesCommand{} })
	register("fill", func() Command { return &FillBlankCommand{} })
	register("insert-blank", func() Command { return &InsertBlankCommand{} })
	register("autofill", func() Command { return &AutoFillCommand{} })
	register("placeholders", func() Command { return &PlaceholdersCommand{} })
	register("render", func() Command { return &RenderTemplateCommand{} })
	register("generate", func() Command { return &GenerateDocumentCommand{} })
	register("preview", func() Command { return &PreviewDocumentCommand{} })
	register("completion", func() Command { return &CompletionCommand{} })
	register("doc-types", func() Command { return &ListDocTypesCommand{} })
	register("import", func() Command { return &ImportTemplatesCommand{} })
	register("health", func() Command { return &HealthCheckCommand{} })
}
