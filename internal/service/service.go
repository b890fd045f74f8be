// Package service provides business logic for template and document
// management. It is the single facade the CLI, HTTP API, and TUI talk to;
// the engine packages underneath it stay pure functions over strings.
package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/grovemead/leasecraft/internal/autofill"
	"github.com/grovemead/leasecraft/internal/blankspace"
	"github.com/grovemead/leasecraft/internal/config"
	"github.com/grovemead/leasecraft/internal/docgen"
	"github.com/grovemead/leasecraft/internal/errors"
	"github.com/grovemead/leasecraft/internal/importer"
	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/renderer"
	"github.com/grovemead/leasecraft/internal/storage"
)

// Service provides business logic for document management
type Service struct {
	storage   *storage.Storage
	schedules *config.ScheduleSet
	documents []*models.Document // Cached documents for fast access
}

// NewService creates a new service instance
func NewService() (*Service, error) {
	// Check for custom directory from environment
	rootPath := os.Getenv("LEASECRAFT_DIR")
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	schedules, err := config.LoadSchedules(store.GetBaseDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}

	return &Service{
		storage:   store,
		schedules: schedules,
	}, nil
}

// InitLibrary initializes a new document library
func (s *Service) InitLibrary() error {
	return s.storage.InitLibrary()
}

// BaseDir returns the library root directory
func (s *Service) BaseDir() string {
	return s.storage.GetBaseDir()
}

// DocTypes returns the known document types in stable order
func (s *Service) DocTypes() []string {
	return s.schedules.DocTypes()
}

// --- Templates ---

// ListTemplates returns all templates in the library
func (s *Service) ListTemplates() ([]*models.Template, error) {
	return s.storage.ListTemplates()
}

// SearchTemplates searches templates by query string
func (s *Service) SearchTemplates(query string) ([]*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}

	if query == "" {
		return templates, nil
	}

	var searchStrings []string
	for _, t := range templates {
		searchStrings = append(searchStrings, fmt.Sprintf("%s %s %s %s %s",
			t.Name, t.Summary, t.ID, t.DocType, strings.Join(t.Tags, " ")))
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.Template
	for _, match := range matches {
		results = append(results, templates[match.Index])
	}

	return results, nil
}

// GetTemplate returns a template by ID
func (s *Service) GetTemplate(id string) (*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}

	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}

	return nil, errors.NotFoundError(fmt.Sprintf("template '%s'", id))
}

// CreateTemplate creates a new template
func (s *Service) CreateTemplate(template *models.Template) error {
	now := time.Now()
	template.CreatedAt = now
	template.UpdatedAt = now
	if template.Version == "" {
		template.Version = "1.0.0"
	}

	if template.FilePath == "" {
		template.FilePath = filepath.Join("templates", fmt.Sprintf("%s.md", template.ID))
	}

	return s.storage.SaveTemplate(template)
}

// UpdateTemplate updates an existing template
func (s *Service) UpdateTemplate(template *models.Template) error {
	existing, err := s.GetTemplate(template.ID)
	if err != nil {
		return fmt.Errorf("cannot update non-existent template: %w", err)
	}

	newVersion, err := s.incrementVersion(existing.Version)
	if err != nil {
		return fmt.Errorf("failed to increment version: %w", err)
	}
	template.Version = newVersion

	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now()
	if template.FilePath == "" {
		template.FilePath = existing.FilePath
	}

	return s.storage.SaveTemplate(template)
}

// DeleteTemplate deletes a template by ID
func (s *Service) DeleteTemplate(id string) error {
	template, err := s.GetTemplate(id)
	if err != nil {
		return err
	}
	return s.storage.DeleteTemplate(template)
}

// ImportTemplates walks a directory of .txt and .md files and saves each
// one as a template. Files whose derived ID collides with an existing
// template are skipped unless overwrite is set.
func (s *Service) ImportTemplates(opts importer.ImportOptions) (*importer.ImportResult, error) {
	imp := importer.NewTextDirImporter(s.storage.GetBaseDir())
	result, err := imp.Import(opts)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return result, nil
	}

	var saved []*models.Template
	for _, t := range result.Templates {
		if _, err := s.GetTemplate(t.ID); err == nil && !opts.OverwriteExisting {
			result.Skipped = append(result.Skipped, t.ID)
			continue
		}
		if err := s.storage.SaveTemplate(t); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to save template %s: %w", t.ID, err))
			continue
		}
		saved = append(saved, t)
	}
	result.Templates = saved

	log.Printf("imported %d templates, skipped %d", len(result.Templates), len(result.Skipped))
	return result, nil
}

// RenderTemplate renders a template's body with the supplied variable set.
// Unresolved {{name}} tokens come back as visible [name] gaps rather than
// errors, so the result is always renderable.
func (s *Service) RenderTemplate(id string, vars map[string]string) (string, error) {
	template, err := s.GetTemplate(id)
	if err != nil {
		return "", err
	}
	return renderer.NewRenderer(template).RenderText(vars), nil
}

// --- Documents ---

// ListDocuments returns all working documents
func (s *Service) ListDocuments() ([]*models.Document, error) {
	if len(s.documents) == 0 {
		if err := s.loadDocuments(); err != nil {
			return nil, err
		}
	}
	return s.documents, nil
}

func (s *Service) loadDocuments() error {
	docs, err := s.storage.ListDocuments()
	if err != nil {
		return err
	}
	s.documents = docs
	return nil
}

// GetDocument returns a document by ID with full content loaded
func (s *Service) GetDocument(id string) (*models.Document, error) {
	docs, err := s.ListDocuments()
	if err != nil {
		return nil, err
	}

	for _, d := range docs {
		if d.ID == id {
			// If content is empty (from cache), load it from storage
			if d.Content == "" && d.FilePath != "" {
				full, err := s.storage.LoadDocument(d.FilePath)
				if err != nil {
					return nil, fmt.Errorf("failed to load document content: %w", err)
				}
				return full, nil
			}
			return d, nil
		}
	}

	return nil, errors.NotFoundError(fmt.Sprintf("document '%s'", id))
}

// CreateDocument creates a working document from a template. Blank-space
// detection runs once here; the annotated markup becomes the document's
// content and the source of truth for fill state from then on.
func (s *Service) CreateDocument(templateID, name string) (*models.Document, error) {
	template, err := s.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}

	annotated, spaces := blankspace.Detect(template.Content)

	now := time.Now()
	doc := &models.Document{
		ID:          generateID(name),
		Version:     "1.0.0",
		Name:        name,
		DocType:     template.DocType,
		TemplateRef: template.ID,
		Tags:        template.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
		Content:     annotated,
	}
	doc.FilePath = filepath.Join("documents", fmt.Sprintf("%s.md", doc.ID))

	if err := s.storage.SaveDocument(doc); err != nil {
		return nil, err
	}
	log.Printf("created document %s from template %s with %d blank spaces",
		doc.ID, templateID, len(spaces))

	if err := s.loadDocuments(); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveDocument persists content changes to an existing document
func (s *Service) SaveDocument(doc *models.Document) error {
	doc.UpdatedAt = time.Now()
	if err := s.storage.SaveDocument(doc); err != nil {
		return err
	}
	return s.loadDocuments()
}

// ArchiveDocument moves a document out of the working set into archive/
func (s *Service) ArchiveDocument(id string) error {
	doc, err := s.GetDocument(id)
	if err != nil {
		return err
	}

	oldPath := doc.FilePath
	doc.FilePath = filepath.Join("archive", filepath.Base(oldPath))
	doc.UpdatedAt = time.Now()

	if err := s.storage.SaveDocument(doc); err != nil {
		return fmt.Errorf("failed to write archived document: %w", err)
	}
	if err := s.storage.DeleteDocument(&models.Document{FilePath: oldPath}); err != nil {
		return fmt.Errorf("failed to remove working copy: %w", err)
	}
	return s.loadDocuments()
}

// ListArchivedDocuments returns all archived documents
func (s *Service) ListArchivedDocuments() ([]*models.Document, error) {
	return s.storage.ListArchivedDocuments()
}

// DeleteDocument deletes a document by ID
func (s *Service) DeleteDocument(id string) error {
	doc, err := s.GetDocument(id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteDocument(doc); err != nil {
		return fmt.Errorf("failed to delete document file: %w", err)
	}
	return s.loadDocuments()
}

// --- Blank-space operations ---

// DetectBlankSpaces re-runs detection over a document's markup, annotating
// any spans not yet wrapped in markers, and returns the full entity list.
func (s *Service) DetectBlankSpaces(docID string) ([]models.BlankSpace, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}

	annotated, spaces := blankspace.Detect(doc.Content)
	if annotated != doc.Content {
		doc.Content = annotated
		if err := s.SaveDocument(doc); err != nil {
			return nil, err
		}
	}
	return spaces, nil
}

// ListBlankSpaces re-derives the entity list from the document's markup
func (s *Service) ListBlankSpaces(docID string) ([]models.BlankSpace, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}
	return blankspace.List(doc.Content), nil
}

// FillBlankSpace fills one blank by ID. An unknown ID is not an error: the
// document is left unchanged and changed reports false.
func (s *Service) FillBlankSpace(docID, blankID, content string) (bool, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return false, err
	}

	updated, changed := blankspace.Fill(doc.Content, blankID, content)
	if !changed {
		return false, nil
	}

	doc.Content = updated
	if err := s.SaveDocument(doc); err != nil {
		return false, err
	}
	return true, nil
}

// InsertBlankSpace places a new unfilled blank at a caller-supplied offset
func (s *Service) InsertBlankSpace(docID string, pos, length int) (models.BlankSpace, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return models.BlankSpace{}, err
	}

	updated, bs := blankspace.Insert(doc.Content, pos, length)
	doc.Content = updated
	if err := s.SaveDocument(doc); err != nil {
		return models.BlankSpace{}, err
	}
	return bs, nil
}

// AutoFill fills a document's blanks from a structured record using the
// document type's ordered field schedule.
func (s *Service) AutoFill(docID string, record *models.InstructionRecord) (autofill.Report, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return autofill.Report{}, err
	}

	schedule, ok := s.schedules.Get(doc.DocType)
	if !ok {
		return autofill.Report{}, errors.NotFoundError(
			fmt.Sprintf("field schedule for document type '%s'", doc.DocType))
	}

	values := autofill.Values(schedule.Fields, record)
	updated, report := autofill.Ordinal(doc.Content, values)
	if report.Unmatched > 0 {
		log.Printf("autofill %s: %d blank(s) beyond the %s schedule were left unfilled",
			docID, report.Unmatched, doc.DocType)
	}

	doc.Content = updated
	if err := s.SaveDocument(doc); err != nil {
		return autofill.Report{}, err
	}
	return report, nil
}

// Placeholders returns the preview-flow view of a document's blanks with
// derived labels and categories.
func (s *Service) Placeholders(docID string) ([]models.DetectedPlaceholder, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}
	return autofill.DescribePlaceholders(doc.Content), nil
}

// Completion reports how much of a document has been filled
func (s *Service) Completion(docID string) (autofill.Completion, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return autofill.Completion{}, err
	}
	return autofill.Progress(doc.Content), nil
}

// --- Output ---

// GenerateDocument converts a document's filled text into the requested
// output. When requireComplete is set the call is gated on every blank
// being filled; no partially-filled document is finalized through that
// path.
func (s *Service) GenerateDocument(docID string, mode docgen.OutputMode, requireComplete bool) ([]byte, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return nil, err
	}

	if requireComplete {
		progress := autofill.Progress(doc.Content)
		if !progress.Complete() {
			return nil, errors.IncompleteFillError(progress.Filled, progress.Total)
		}
	}

	text, _ := blankspace.Flatten(doc.Content)
	return docgen.Generate(text, mode)
}

// PreviewText returns the plain text a reader sees: markers flattened to
// their displayed content.
func (s *Service) PreviewText(docID string) (string, error) {
	doc, err := s.GetDocument(docID)
	if err != nil {
		return "", err
	}
	text, _ := blankspace.Flatten(doc.Content)
	return text, nil
}

// --- Helpers ---

// incrementVersion bumps the patch component of a semver-ish version string
func (s *Service) incrementVersion(version string) (string, error) {
	if version == "" {
		return "1.0.0", nil
	}

	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid version format: %s", version)
	}

	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid patch version: %s", parts[2])
	}

	return fmt.Sprintf("%s.%s.%d", parts[0], parts[1], patch+1), nil
}

// generateID creates a URL-safe ID from a name
func generateID(name string) string {
	if name == "" {
		return fmt.Sprintf("document-%d", time.Now().Unix())
	}

	id := strings.ToLower(name)
	var sb strings.Builder
	lastHyphen := true
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	out := strings.Trim(sb.String(), "-")
	if out == "" {
		return fmt.Sprintf("document-%d", time.Now().Unix())
	}
	if len(out) > 50 {
		out = strings.TrimSuffix(out[:50], "-")
	}
	return out
}
