package storage

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovemead/leasecraft/internal/models"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for templates and documents
type Storage struct {
	rootPath string
	cache    *MetadataCache
}

// NewStorage creates a new storage instance
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".leasecraft")
	}

	cache := NewMetadataCache(rootPath)
	if err := cache.Load(); err != nil {
		// Log error but don't fail - cache is optional
		fmt.Fprintf(os.Stderr, "Warning: failed to load metadata cache: %v\n", err)
	}

	return &Storage{
		rootPath: rootPath,
		cache:    cache,
	}, nil
}

// InitLibrary creates the directory structure for a document library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, "documents"),
		filepath.Join(s.rootPath, "archive"),
		filepath.Join(s.rootPath, ".leasecraft"),
		filepath.Join(s.rootPath, ".leasecraft", "cache"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

// LoadDocument loads a document from a markdown file with YAML frontmatter
func (s *Storage) LoadDocument(path string) (*models.Document, error) {
	fullPath := filepath.Join(s.rootPath, path)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}

	doc, err := parseDocumentFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	doc.FilePath = path
	doc.ContentHash = calculateHash(content)

	return doc, nil
}

// SaveDocument saves a document to a markdown file with YAML frontmatter
func (s *Storage) SaveDocument(doc *models.Document) error {
	fullPath := filepath.Join(s.rootPath, doc.FilePath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write document file: %w", err)
	}

	return nil
}

// DeleteDocument deletes a document file from the file system
func (s *Storage) DeleteDocument(doc *models.Document) error {
	fullPath := filepath.Join(s.rootPath, doc.FilePath)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return fmt.Errorf("document file does not exist: %s", fullPath)
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete document file: %w", err)
	}

	return nil
}

// ListDocuments returns all working documents in the library
func (s *Storage) ListDocuments() ([]*models.Document, error) {
	return s.listDocumentsFromDir("documents")
}

// ListArchivedDocuments returns all archived documents
func (s *Storage) ListArchivedDocuments() ([]*models.Document, error) {
	archiveDir := filepath.Join(s.rootPath, "archive")
	if _, err := os.Stat(archiveDir); os.IsNotExist(err) {
		return []*models.Document{}, nil
	}

	return s.listDocumentsFromDir("archive")
}

// listDocumentsFromDir returns documents from a specific directory with caching
func (s *Storage) listDocumentsFromDir(dir string) ([]*models.Document, error) {
	docsDir := filepath.Join(s.rootPath, dir)

	var docs []*models.Document
	existingFiles := make(map[string]bool)
	cacheModified := false

	err := filepath.Walk(docsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			relPath, _ := filepath.Rel(s.rootPath, path)
			existingFiles[relPath] = true

			// Try to get from cache first
			if cached, valid := s.cache.Get(relPath, info); valid {
				docs = append(docs, cached.ToDocument())
				return nil
			}

			// Cache miss - load and parse the document
			doc, err := s.LoadDocument(relPath)
			if err != nil {
				// Log error but continue walking
				fmt.Fprintf(os.Stderr, "Warning: failed to load document %s: %v\n", relPath, err)
				return nil
			}

			s.cache.Set(relPath, filepath.Join(s.rootPath, relPath), info, doc)
			cacheModified = true

			docs = append(docs, doc)
		}

		return nil
	})

	// Cleanup cache entries for deleted files
	s.cache.Cleanup(existingFiles)

	if cacheModified {
		if err := s.cache.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save metadata cache: %v\n", err)
		}
	}

	return docs, err
}

// SaveTemplate saves a template to the file system
func (s *Storage) SaveTemplate(template *models.Template) error {
	fullPath := filepath.Join(s.rootPath, template.FilePath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeTemplate(template)
	if err != nil {
		return fmt.Errorf("failed to serialize template: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}

	return nil
}

// DeleteTemplate deletes a template file
func (s *Storage) DeleteTemplate(template *models.Template) error {
	fullPath := filepath.Join(s.rootPath, template.FilePath)
	return os.Remove(fullPath)
}

// LoadTemplate loads a template from a markdown file
func (s *Storage) LoadTemplate(path string) (*models.Template, error) {
	fullPath := filepath.Join(s.rootPath, path)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	template, err := parseTemplateFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	template.FilePath = path
	return template, nil
}

// ListTemplates returns all templates in the library
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	templatesDir := filepath.Join(s.rootPath, "templates")

	var templates []*models.Template
	err := filepath.Walk(templatesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			relPath, _ := filepath.Rel(s.rootPath, path)
			template, err := s.LoadTemplate(relPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load template %s: %v\n", relPath, err)
				return nil
			}
			templates = append(templates, template)
		}

		return nil
	})

	return templates, err
}

// Helper functions

func parseDocumentFile(content []byte) (*models.Document, error) {
	frontmatter, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var doc models.Document
	if err := yaml.Unmarshal([]byte(frontmatter), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	doc.Content = body
	return &doc, nil
}

func parseTemplateFile(content []byte) (*models.Template, error) {
	frontmatter, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var template models.Template
	if err := yaml.Unmarshal([]byte(frontmatter), &template); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	template.Content = body
	return &template, nil
}

// splitFrontmatter separates the YAML frontmatter block from the body text.
func splitFrontmatter(content []byte) (string, string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Check for frontmatter delimiter
	if !scanner.Scan() || scanner.Text() != "---" {
		return "", "", fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}

	body := strings.Join(contentLines, "\n")
	// Trim only leading whitespace/newlines
	body = strings.TrimLeft(body, " \t\n")

	return strings.Join(frontmatterLines, "\n"), body, nil
}

func serializeDocument(doc *models.Document) ([]byte, error) {
	return serializeFrontmatter(doc, doc.Content)
}

// serializeTemplate converts a template to YAML frontmatter + body content
func serializeTemplate(template *models.Template) ([]byte, error) {
	return serializeFrontmatter(template, template.Content)
}

func serializeFrontmatter(meta interface{}, content string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")

	if content != "" {
		buf.WriteString("\n")
		buf.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

func calculateHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
