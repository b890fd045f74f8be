// Package cli provides headless command-line access to the document
// engine: listing templates, creating and filling documents, and
// generating final output without the interactive TUI.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grovemead/leasecraft/internal/clipboard"
	"github.com/grovemead/leasecraft/internal/docgen"
	"github.com/grovemead/leasecraft/internal/importer"
	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service *service.Service
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service) *CLI {
	return &CLI{service: svc}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "templates":
		return c.listTemplates(commandArgs)
	case "template":
		return c.handleTemplate(commandArgs)
	case "list", "ls":
		return c.listDocuments(commandArgs)
	case "new", "create":
		return c.createDocument(commandArgs)
	case "get", "show":
		return c.showDocument(commandArgs)
	case "detect":
		return c.detectBlanks(commandArgs)
	case "fill":
		return c.fillBlank(commandArgs)
	case "autofill":
		return c.autoFill(commandArgs)
	case "placeholders":
		return c.listPlaceholders(commandArgs)
	case "completion":
		return c.showCompletion(commandArgs)
	case "render":
		return c.renderTemplate(commandArgs)
	case "preview":
		return c.previewDocument(commandArgs)
	case "copy":
		return c.copyDocument(commandArgs)
	case "generate":
		return c.generateDocument(commandArgs)
	case "archive":
		return c.archiveDocument(commandArgs)
	case "delete", "rm":
		return c.deleteDocument(commandArgs)
	case "import":
		return c.importTemplates(commandArgs)
	case "doctypes":
		return c.listDocTypes()
	case "help":
		return c.printHelp(commandArgs)
	default:
		return fmt.Errorf("unknown command: %s. Use 'help' for usage information", command)
	}
}

// listTemplates lists templates with optional filtering
func (c *CLI) listTemplates(args []string) error {
	var format, tag, docType, query string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--tag", "-t":
			if i+1 < len(args) {
				tag = args[i+1]
				i++
			}
		case "--doc-type":
			if i+1 < len(args) {
				docType = args[i+1]
				i++
			}
		default:
			if !strings.HasPrefix(args[i], "-") {
				query = args[i]
			}
		}
	}

	templates, err := c.service.SearchTemplates(query)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	var filtered []*models.Template
	for _, t := range templates {
		if docType != "" && t.DocType != docType {
			continue
		}
		if tag != "" && !hasTag(t.Tags, tag) {
			continue
		}
		filtered = append(filtered, t)
	}

	return c.formatTemplates(filtered, format)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// handleTemplate handles individual template operations
func (c *CLI) handleTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("template command requires a subcommand (show, delete)")
	}

	subcommand := args[0]
	switch subcommand {
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("template show requires a template ID")
		}
		template, err := c.service.GetTemplate(args[1])
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		return c.formatSingleTemplate(template, parseFormat(args[2:]))
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("template delete requires a template ID")
		}
		if !confirmed(args[2:], fmt.Sprintf("Are you sure you want to delete template '%s'? (y/N): ", args[1])) {
			fmt.Println("Cancelled")
			return nil
		}
		if err := c.service.DeleteTemplate(args[1]); err != nil {
			return fmt.Errorf("failed to delete template: %w", err)
		}
		fmt.Printf("Deleted template: %s\n", args[1])
		return nil
	default:
		return fmt.Errorf("unknown template subcommand: %s", subcommand)
	}
}

// listDocuments lists working or archived documents
func (c *CLI) listDocuments(args []string) error {
	var format string
	var showArchived bool

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--archived", "-a":
			showArchived = true
		}
	}

	var docs []*models.Document
	var err error

	if showArchived {
		docs, err = c.service.ListArchivedDocuments()
	} else {
		docs, err = c.service.ListDocuments()
	}

	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	return c.formatDocuments(docs, format)
}

// createDocument creates a working document from a template
func (c *CLI) createDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("create requires a template ID")
	}

	templateID := args[0]
	var name string

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--name", "-n":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		}
	}

	if name == "" {
		name = templateID
	}

	doc, err := c.service.CreateDocument(templateID, name)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	spaces, err := c.service.ListBlankSpaces(doc.ID)
	if err != nil {
		return fmt.Errorf("failed to list blank spaces: %w", err)
	}

	fmt.Printf("Created document: %s (%d blank spaces)\n", doc.ID, len(spaces))
	return nil
}

// showDocument displays a specific document
func (c *CLI) showDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("show requires a document ID")
	}

	doc, err := c.service.GetDocument(args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	format := parseFormat(args[1:])
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(doc)
	default:
		fmt.Printf("ID: %s\n", doc.ID)
		fmt.Printf("Name: %s\n", doc.Name)
		fmt.Printf("Version: %s\n", doc.Version)
		if doc.DocType != "" {
			fmt.Printf("Type: %s\n", doc.DocType)
		}
		if doc.TemplateRef != "" {
			fmt.Printf("Template: %s\n", doc.TemplateRef)
		}
		if len(doc.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(doc.Tags, ", "))
		}
		fmt.Printf("Created: %s\n", doc.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("Updated: %s\n", doc.UpdatedAt.Format("2006-01-02 15:04"))

		text, err := c.service.PreviewText(doc.ID)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", text)
	}
	return nil
}

// detectBlanks detects and lists blank spaces in a document
func (c *CLI) detectBlanks(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("detect requires a document ID")
	}

	spaces, err := c.service.DetectBlankSpaces(args[0])
	if err != nil {
		return fmt.Errorf("failed to detect blank spaces: %w", err)
	}

	if parseFormat(args[1:]) == "json" {
		return json.NewEncoder(os.Stdout).Encode(spaces)
	}

	for i, bs := range spaces {
		status := "unfilled"
		if bs.Filled {
			status = fmt.Sprintf("filled: %s", bs.Content)
		}
		fmt.Printf("%2d. %s (length %d, %s)\n", i+1, bs.ID, bs.Length, status)
	}
	fmt.Printf("\n%d blank spaces\n", len(spaces))
	return nil
}

// fillBlank fills one blank space by ID
func (c *CLI) fillBlank(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("fill requires a document ID, a blank ID, and content")
	}

	docID := args[0]
	blankID := args[1]
	content := strings.Join(args[2:], " ")

	changed, err := c.service.FillBlankSpace(docID, blankID, content)
	if err != nil {
		return fmt.Errorf("failed to fill blank space: %w", err)
	}

	if !changed {
		fmt.Printf("No blank space with ID %s; document unchanged\n", blankID)
		return nil
	}

	fmt.Printf("Filled blank %s\n", blankID)
	return nil
}

// autoFill fills a document's blanks from instruction record flags
func (c *CLI) autoFill(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("autofill requires a document ID")
	}

	docID := args[0]
	record := &models.InstructionRecord{}

	for i := 1; i < len(args); i++ {
		flag := args[i]
		if i+1 >= len(args) {
			break
		}
		value := args[i+1]

		switch flag {
		case "--landlord":
			record.LandlordName = value
		case "--tenant":
			record.TenantName = value
		case "--ref":
			record.PropertyReference = value
		case "--address":
			record.PropertyAddress = value
		case "--postal":
			record.PostalAddress = value
		case "--site":
			record.SiteDescription = value
		case "--date":
			t, err := time.Parse("2006-01-02", value)
			if err != nil {
				return fmt.Errorf("invalid --date (expected YYYY-MM-DD): %w", err)
			}
			record.CommencementDate = t
		case "--years":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid --years: %w", err)
			}
			record.TermYears = n
		case "--rent":
			record.RentAmount = value
		default:
			continue
		}
		i++
	}

	report, err := c.service.AutoFill(docID, record)
	if err != nil {
		return fmt.Errorf("autofill failed: %w", err)
	}

	fmt.Printf("Filled %d blanks", report.Filled)
	if report.Unmatched > 0 {
		fmt.Printf(", %d left unfilled", report.Unmatched)
	}
	if report.UnusedValues > 0 {
		fmt.Printf(", %d values unused", report.UnusedValues)
	}
	fmt.Println()
	return nil
}

// listPlaceholders lists a document's blanks with derived labels
func (c *CLI) listPlaceholders(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("placeholders requires a document ID")
	}

	placeholders, err := c.service.Placeholders(args[0])
	if err != nil {
		return fmt.Errorf("failed to list placeholders: %w", err)
	}

	if parseFormat(args[1:]) == "json" {
		return json.NewEncoder(os.Stdout).Encode(placeholders)
	}

	for _, p := range placeholders {
		status := " "
		if p.Filled {
			status = "x"
		}
		fmt.Printf("[%s] %2d. %-40s %s\n", status, p.Order, p.Description, p.Category)
	}
	return nil
}

// showCompletion reports a document's fill progress
func (c *CLI) showCompletion(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("completion requires a document ID")
	}

	progress, err := c.service.Completion(args[0])
	if err != nil {
		return fmt.Errorf("failed to get completion: %w", err)
	}

	fmt.Printf("%d of %d blanks filled (%.0f%%)\n", progress.Filled, progress.Total, progress.Percent())
	return nil
}

// renderTemplate renders a template with --var key=value substitutions
func (c *CLI) renderTemplate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("render requires a template ID")
	}

	id := args[0]
	vars := make(map[string]string)

	for i := 1; i < len(args); i++ {
		if args[i] == "--var" && i+1 < len(args) {
			kv := strings.SplitN(args[i+1], "=", 2)
			if len(kv) != 2 {
				return fmt.Errorf("invalid --var (expected key=value): %s", args[i+1])
			}
			vars[kv[0]] = kv[1]
			i++
		}
	}

	rendered, err := c.service.RenderTemplate(id, vars)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	fmt.Println(rendered)
	return nil
}

// previewDocument prints a document's flattened text
func (c *CLI) previewDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("preview requires a document ID")
	}

	text, err := c.service.PreviewText(args[0])
	if err != nil {
		return fmt.Errorf("failed to preview document: %w", err)
	}

	fmt.Println(text)
	return nil
}

// copyDocument copies a document's text to the clipboard
func (c *CLI) copyDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("copy requires a document ID")
	}

	text, err := c.service.PreviewText(args[0])
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}

	msg, err := clipboard.CopyWithFallback(text)
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}

// generateDocument produces final output and writes it to a file
func (c *CLI) generateDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("generate requires a document ID")
	}

	id := args[0]
	output := "docx"
	var outFile string
	var force bool

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--output":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--out", "-o":
			if i+1 < len(args) {
				outFile = args[i+1]
				i++
			}
		case "--force":
			force = true
		}
	}

	mode := docgen.OutputDocx
	ext := "docx"
	switch output {
	case "docx":
	case "text":
		mode = docgen.OutputText
		ext = "txt"
	default:
		return fmt.Errorf("output must be 'docx' or 'text', got %q", output)
	}

	data, err := c.service.GenerateDocument(id, mode, !force)
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	if outFile == "" {
		outFile = fmt.Sprintf("%s.%s", id, ext)
	}

	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", outFile, len(data))
	return nil
}

// archiveDocument moves a document into the archive
func (c *CLI) archiveDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("archive requires a document ID")
	}

	if err := c.service.ArchiveDocument(args[0]); err != nil {
		return fmt.Errorf("failed to archive document: %w", err)
	}

	fmt.Printf("Archived document: %s\n", args[0])
	return nil
}

// deleteDocument deletes a document
func (c *CLI) deleteDocument(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("delete requires a document ID")
	}

	id := args[0]
	if !confirmed(args[1:], fmt.Sprintf("Are you sure you want to delete document '%s'? (y/N): ", id)) {
		fmt.Println("Cancelled")
		return nil
	}

	if err := c.service.DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	fmt.Printf("Deleted document: %s\n", id)
	return nil
}

// importTemplates imports template files from a directory
func (c *CLI) importTemplates(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("import requires a directory path")
	}

	opts := importer.ImportOptions{Path: args[0]}

	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--doc-type":
			if i+1 < len(args) {
				opts.DocType = args[i+1]
				i++
			}
		case "--dry-run":
			opts.DryRun = true
		case "--overwrite":
			opts.OverwriteExisting = true
		}
	}

	result, err := c.service.ImportTemplates(opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if opts.DryRun {
		fmt.Printf("Would import %d templates:\n", len(result.Templates))
	} else {
		fmt.Printf("Imported %d templates:\n", len(result.Templates))
	}
	for _, t := range result.Templates {
		fmt.Printf("  %s - %s\n", t.ID, t.Name)
	}
	if len(result.Skipped) > 0 {
		fmt.Printf("Skipped %d existing\n", len(result.Skipped))
	}
	for _, err := range result.Errors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

// listDocTypes lists known document types
func (c *CLI) listDocTypes() error {
	for _, dt := range c.service.DocTypes() {
		fmt.Println(dt)
	}
	return nil
}

// formatTemplates formats a template list for output
func (c *CLI) formatTemplates(templates []*models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(templates)
	case "ids":
		for _, t := range templates {
			fmt.Println(t.ID)
		}
	case "table":
		fmt.Printf("%-25s %-30s %-20s %s\n", "ID", "Name", "Type", "Updated")
		fmt.Println(strings.Repeat("-", 90))
		for _, t := range templates {
			name := t.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-25s %-30s %-20s %s\n",
				t.ID, name, t.DocType, t.UpdatedAt.Format("2006-01-02"))
		}
	default:
		for _, t := range templates {
			fmt.Printf("%s - %s\n", t.ID, t.Name)
			if t.Summary != "" {
				fmt.Printf("  %s\n", t.Summary)
			}
			if t.DocType != "" {
				fmt.Printf("  Type: %s\n", t.DocType)
			}
			fmt.Println()
		}
	}
	return nil
}

// formatDocuments formats a document list for output
func (c *CLI) formatDocuments(docs []*models.Document, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(docs)
	case "ids":
		for _, d := range docs {
			fmt.Println(d.ID)
		}
	case "table":
		fmt.Printf("%-25s %-30s %-20s %s\n", "ID", "Name", "Type", "Updated")
		fmt.Println(strings.Repeat("-", 90))
		for _, d := range docs {
			name := d.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Printf("%-25s %-30s %-20s %s\n",
				d.ID, name, d.DocType, d.UpdatedAt.Format("2006-01-02"))
		}
	default:
		for _, d := range docs {
			fmt.Printf("%s - %s\n", d.ID, d.Name)
			if d.TemplateRef != "" {
				fmt.Printf("  From: %s\n", d.TemplateRef)
			}
			fmt.Println()
		}
	}
	return nil
}

// formatSingleTemplate formats a single template for output
func (c *CLI) formatSingleTemplate(template *models.Template, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(template)
	default:
		fmt.Printf("ID: %s\n", template.ID)
		fmt.Printf("Name: %s\n", template.Name)
		fmt.Printf("Version: %s\n", template.Version)
		if template.Summary != "" {
			fmt.Printf("Description: %s\n", template.Summary)
		}
		if template.DocType != "" {
			fmt.Printf("Type: %s\n", template.DocType)
		}
		if len(template.Tags) > 0 {
			fmt.Printf("Tags: %s\n", strings.Join(template.Tags, ", "))
		}
		if len(template.Variables) > 0 {
			var names []string
			for _, v := range template.Variables {
				names = append(names, v.Name)
			}
			fmt.Printf("Variables: %s\n", strings.Join(names, ", "))
		}
		fmt.Printf("\nContent:\n%s\n", template.Content)
	}
	return nil
}

// parseFormat finds a --format/-f flag in trailing args
func parseFormat(args []string) string {
	for i := 0; i < len(args); i++ {
		if (args[i] == "--format" || args[i] == "-f") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// confirmed returns true if --force/-f was passed or the user answers yes
func confirmed(args []string, prompt string) bool {
	for _, arg := range args {
		if arg == "--force" || arg == "-f" {
			return true
		}
	}

	fmt.Print(prompt)
	var response string
	fmt.Scanln(&response)
	response = strings.ToLower(response)
	return response == "y" || response == "yes"
}

func (c *CLI) printUsage() error {
	fmt.Println(`leasecraft - Headless CLI mode

Usage: leasecraft <command> [options]

Commands:
  templates             List templates
  template              Template management (show, delete)
  list, ls              List working documents
  new, create <tpl-id>  Create a document from a template
  get, show <id>        Show a document
  detect <id>           Detect and list blank spaces
  fill <id> <blank> <content>
                        Fill one blank space
  autofill <id>         Fill blanks from instruction record flags
  placeholders <id>     List blanks with labels and categories
  completion <id>       Show fill progress
  render <tpl-id>       Render a template with --var key=value
  preview <id>          Print a document's current text
  copy <id>             Copy document text to clipboard
  generate <id>         Generate DOCX or plain-text output
  archive <id>          Move a document to the archive
  delete, rm <id>       Delete a document
  import <path>         Import .txt/.md files as templates
  doctypes              List document types
  help                  Show help

Use 'leasecraft help <command>' for detailed help on a specific command.`)
	return nil
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	switch command {
	case "templates":
		fmt.Println(`templates - List templates

Usage: leasecraft templates [query] [options]

Options:
  --format, -f <format>  Output format (table, json, ids, default)
  --tag, -t <tag>        Filter by tag
  --doc-type <type>      Filter by document type`)

	case "new", "create":
		fmt.Println(`new - Create a document from a template

Usage: leasecraft new <template-id> [options]

Options:
  --name, -n <name>      Document name (defaults to the template ID)

Blank spaces are detected when the document is created; use 'detect'
to list them and 'fill' or 'autofill' to complete them.`)

	case "fill":
		fmt.Println(`fill - Fill one blank space

Usage: leasecraft fill <doc-id> <blank-id> <content...>

Content may span multiple arguments; they are joined with spaces.
Filling an unknown blank ID leaves the document unchanged.`)

	case "autofill":
		fmt.Println(`autofill - Fill blanks in order from an instruction record

Usage: leasecraft autofill <doc-id> [options]

Options:
  --landlord <name>      Landlord name
  --tenant <name>        Tenant name
  --ref <reference>      Property reference
  --address <address>    Property address
  --postal <address>     Postal address
  --site <description>   Site description
  --date <YYYY-MM-DD>    Commencement date
  --years <n>            Term in years
  --rent <amount>        Rent amount

Values are matched against the document type's field schedule in
order; blanks beyond the schedule are left unfilled.

Example:
  leasecraft autofill lease-42 --landlord "Grove Mead Ltd" --date 2024-04-03`)

	case "render":
		fmt.Println(`render - Render a template with variable substitution

Usage: leasecraft render <template-id> [--var key=value ...]

Each {{key}} token in the template body is replaced with its value;
missing keys render as [key].

Example:
  leasecraft render lease-forwarding --var tenant_name="J Smith"`)

	case "generate":
		fmt.Println(`generate - Generate final output from a document

Usage: leasecraft generate <doc-id> [options]

Options:
  --output <format>      Output format: docx (default) or text
  --out, -o <file>       Output file (default: <doc-id>.<ext>)
  --force                Generate even when blanks remain unfilled`)

	case "import":
		fmt.Println(`import - Import template files from a directory

Usage: leasecraft import <path> [options]

Options:
  --doc-type <type>      Document type assigned to imported templates
  --dry-run              Preview without saving
  --overwrite            Replace existing templates with the same ID

Each .txt and .md file under the path becomes a template; {{name}}
tokens in the body are recorded as template variables.`)

	default:
		return c.printUsage()
	}
	return nil
}
