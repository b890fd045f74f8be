package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/grovemead/leasecraft/internal/clipboard"
	"github.com/grovemead/leasecraft/internal/docgen"
	"github.com/grovemead/leasecraft/internal/models"
	"github.com/grovemead/leasecraft/internal/service"
)

// createGlamourRenderer creates a glamour renderer tuned to the terminal's
// color profile and background.
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	if lipgloss.HasDarkBackground() {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("dark")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	} else {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("light")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// Messages for async operations
type loadCompleteMsg struct {
	templates []*models.Template
	documents []*models.Document
	err       error
}

type generateDoneMsg struct {
	filename string
	err      error
}

// loadLibraryCmd loads templates and documents (fast with the file cache)
func loadLibraryCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		templates, tplErr := svc.ListTemplates()
		if tplErr != nil {
			templates = []*models.Template{}
		}

		documents, docErr := svc.ListDocuments()
		if docErr != nil {
			documents = []*models.Document{}
		}

		var err error
		if tplErr != nil {
			err = tplErr
		} else if docErr != nil {
			err = docErr
		}

		return loadCompleteMsg{
			templates: templates,
			documents: documents,
			err:       err,
		}
	}
}

// generateCmd produces final output for a document and writes it next to
// the working directory.
func generateCmd(svc *service.Service, docID string) tea.Cmd {
	return func() tea.Msg {
		data, err := svc.GenerateDocument(docID, docgen.OutputDocx, true)
		if err != nil {
			return generateDoneMsg{err: err}
		}

		filename := docID + ".docx"
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return generateDoneMsg{err: err}
		}

		return generateDoneMsg{filename: filename}
	}
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewTemplates ViewMode = iota
	ViewDocuments
	ViewTemplateDetail
	ViewDocumentDetail
	ViewNameForm
	ViewFillForm
)

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	// UI components
	templateList list.Model
	documentList list.Model
	viewport     viewport.Model
	help         help.Model
	keys         KeyMap

	// Data
	templates        []*models.Template
	documents        []*models.Document
	loading          bool
	selectedTemplate *models.Template
	selectedDocument *models.Document

	// Forms
	fillForm *FillForm
	nameForm *NameForm

	// Rendered content
	renderedContent string
	glamourRenderer *glamour.TermRenderer

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusTimeout int

	deleteConfirm bool

	err error
}

// KeyMap defines all key bindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Search   key.Binding
	Switch   key.Binding
	New      key.Binding
	Fill     key.Binding
	Copy     key.Binding
	Generate key.Binding
	Archive  key.Binding
	Delete   key.Binding
	Detect   key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back},
		{k.Switch, k.Search, k.New, k.Fill},
		{k.Copy, k.Generate, k.Archive, k.Delete},
		{k.Detect, k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Switch: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "templates/documents"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new document"),
	),
	Fill: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fill blanks"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy text"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Archive: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "archive"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Detect: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-detect blanks"),
	),
}

// NewModel creates a new TUI model
func NewModel(svc *service.Service) (*Model, error) {
	initializeColors()

	newList := func() list.Model {
		l := list.New([]list.Item{}, list.NewDefaultDelegate(), 80, 20)
		l.Title = ""
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(true)
		l.SetShowHelp(false)

		keyMap := list.DefaultKeyMap()
		keyMap.Filter = key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		)
		l.KeyMap = keyMap
		return l
	}

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	renderer, err := createGlamourRenderer(60)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	return &Model{
		service:         svc,
		viewMode:        ViewDocuments,
		templateList:    newList(),
		documentList:    newList(),
		viewport:        vp,
		help:            help.New(),
		keys:            keys,
		templates:       []*models.Template{},
		documents:       []*models.Document{},
		loading:         true,
		glamourRenderer: renderer,
	}, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return loadLibraryCmd(m.service)
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) setStatus(text string, ticks int) tea.Cmd {
	m.statusMsg = text
	m.statusTimeout = ticks
	return clearStatusCmd()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}

	case loadCompleteMsg:
		m.loading = false
		m.templates = msg.templates
		m.documents = msg.documents

		tplItems := make([]list.Item, len(m.templates))
		for i, t := range m.templates {
			tplItems[i] = *t
		}
		m.templateList.SetItems(tplItems)

		docItems := make([]list.Item, len(m.documents))
		for i, d := range m.documents {
			docItems[i] = *d
		}
		m.documentList.SetItems(docItems)

		if msg.err != nil {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Warning: %v", msg.err), 5))
		}

	case generateDoneMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("Generate failed: %v", msg.err), 5)
		}
		return m, m.setStatus(fmt.Sprintf("Wrote %s", msg.filename), 5)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		const minReservedHeight = 8
		availableHeight := msg.Height - minReservedHeight
		if availableHeight < 5 {
			availableHeight = 5
		}

		m.templateList.SetSize(msg.Width, availableHeight)
		m.documentList.SetSize(msg.Width, availableHeight)

		viewportWidth := msg.Width - 20
		if viewportWidth < 40 {
			viewportWidth = 40
		}
		m.viewport.Width = viewportWidth
		m.viewport.Height = availableHeight

		if viewportWidth > 0 {
			if renderer, err := createGlamourRenderer(viewportWidth); err == nil {
				m.glamourRenderer = renderer
			}
		}

		if m.fillForm != nil {
			m.fillForm.Resize(msg.Width, availableHeight)
		}

		if m.viewMode == ViewDocumentDetail && m.selectedDocument != nil {
			m.renderDocumentPreview()
		}
		if m.viewMode == ViewTemplateDetail && m.selectedTemplate != nil {
			m.renderTemplatePreview()
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Forward non-key messages to the active component
	switch m.viewMode {
	case ViewTemplates:
		var cmd tea.Cmd
		m.templateList, cmd = m.templateList.Update(msg)
		cmds = append(cmds, cmd)
	case ViewDocuments:
		var cmd tea.Cmd
		m.documentList, cmd = m.documentList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyMsg routes key events by view
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit, unless a text input is consuming keys
	if key.Matches(msg, m.keys.Quit) &&
		m.viewMode != ViewFillForm && m.viewMode != ViewNameForm &&
		!m.listFiltering() {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewTemplates:
		return m.updateTemplatesView(msg)
	case ViewDocuments:
		return m.updateDocumentsView(msg)
	case ViewTemplateDetail:
		return m.updateTemplateDetailView(msg)
	case ViewDocumentDetail:
		return m.updateDocumentDetailView(msg)
	case ViewNameForm:
		return m.updateNameFormView(msg)
	case ViewFillForm:
		return m.updateFillFormView(msg)
	}
	return m, nil
}

func (m Model) listFiltering() bool {
	switch m.viewMode {
	case ViewTemplates:
		return m.templateList.FilterState() == list.Filtering
	case ViewDocuments:
		return m.documentList.FilterState() == list.Filtering
	}
	return false
}

func (m Model) updateTemplatesView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.templateList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Switch):
			m.viewMode = ViewDocuments
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			if t, ok := m.templateList.SelectedItem().(models.Template); ok {
				m.selectedTemplate = m.findTemplate(t.ID)
				m.viewMode = ViewTemplateDetail
				m.renderTemplatePreview()
			}
			return m, nil
		case key.Matches(msg, m.keys.New):
			if t, ok := m.templateList.SelectedItem().(models.Template); ok {
				m.selectedTemplate = m.findTemplate(t.ID)
				m.nameForm = NewNameForm(t.Name)
				m.viewMode = ViewNameForm
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.templateList, cmd = m.templateList.Update(msg)
	return m, cmd
}

func (m Model) updateDocumentsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.documentList.FilterState() != list.Filtering {
		doc := m.selectedFromDocList()

		// Delete needs a second keypress to confirm
		if m.deleteConfirm {
			m.deleteConfirm = false
			if key.Matches(msg, m.keys.Delete) && doc != nil {
				if err := m.service.DeleteDocument(doc.ID); err != nil {
					return m, m.setStatus(fmt.Sprintf("Delete failed: %v", err), 5)
				}
				return m, tea.Batch(
					m.setStatus(fmt.Sprintf("Deleted %s", doc.ID), 3),
					loadLibraryCmd(m.service),
				)
			}
			return m, m.setStatus("Delete cancelled", 2)
		}

		switch {
		case key.Matches(msg, m.keys.Switch):
			m.viewMode = ViewTemplates
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			if doc != nil {
				m.selectedDocument = doc
				m.viewMode = ViewDocumentDetail
				m.renderDocumentPreview()
			}
			return m, nil
		case key.Matches(msg, m.keys.Fill):
			if doc != nil {
				return m.openFillForm(doc)
			}
			return m, nil
		case key.Matches(msg, m.keys.Generate):
			if doc != nil {
				return m, generateCmd(m.service, doc.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.Archive):
			if doc != nil {
				if err := m.service.ArchiveDocument(doc.ID); err != nil {
					return m, m.setStatus(fmt.Sprintf("Archive failed: %v", err), 5)
				}
				return m, tea.Batch(
					m.setStatus(fmt.Sprintf("Archived %s", doc.ID), 3),
					loadLibraryCmd(m.service),
				)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if doc != nil {
				m.deleteConfirm = true
				return m, m.setStatus(fmt.Sprintf("Press d again to delete %s", doc.ID), 5)
			}
			return m, nil
		case key.Matches(msg, m.keys.Detect):
			if doc != nil {
				spaces, err := m.service.DetectBlankSpaces(doc.ID)
				if err != nil {
					return m, m.setStatus(fmt.Sprintf("Detect failed: %v", err), 5)
				}
				return m, m.setStatus(fmt.Sprintf("%d blank spaces", len(spaces)), 3)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.documentList, cmd = m.documentList.Update(msg)
	return m, cmd
}

func (m Model) updateTemplateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewTemplates
		return m, nil
	case key.Matches(msg, m.keys.New):
		if m.selectedTemplate != nil {
			m.nameForm = NewNameForm(m.selectedTemplate.Name)
			m.viewMode = ViewNameForm
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if m.selectedTemplate != nil {
			if err := clipboard.Copy(m.selectedTemplate.Content); err != nil {
				return m, m.setStatus(fmt.Sprintf("Copy failed: %v", err), 5)
			}
			return m, m.setStatus("Copied template to clipboard", 3)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateDocumentDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewDocuments
		return m, nil
	case key.Matches(msg, m.keys.Fill):
		if m.selectedDocument != nil {
			return m.openFillForm(m.selectedDocument)
		}
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		if m.selectedDocument != nil {
			text, err := m.service.PreviewText(m.selectedDocument.ID)
			if err != nil {
				return m, m.setStatus(fmt.Sprintf("Copy failed: %v", err), 5)
			}
			if err := clipboard.Copy(text); err != nil {
				return m, m.setStatus(fmt.Sprintf("Copy failed: %v", err), 5)
			}
			return m, m.setStatus("Copied document to clipboard", 3)
		}
		return m, nil
	case key.Matches(msg, m.keys.Generate):
		if m.selectedDocument != nil {
			return m, generateCmd(m.service, m.selectedDocument.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateNameFormView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.nameForm = nil
		m.viewMode = ViewTemplates
		return m, nil
	}

	cmd := m.nameForm.Update(msg)
	if m.nameForm.IsSubmitted() {
		name := m.nameForm.Name()
		if name == "" {
			name = m.selectedTemplate.Name
		}
		doc, err := m.service.CreateDocument(m.selectedTemplate.ID, name)
		m.nameForm = nil
		if err != nil {
			m.viewMode = ViewTemplates
			return m, m.setStatus(fmt.Sprintf("Create failed: %v", err), 5)
		}
		m.viewMode = ViewDocuments
		return m, tea.Batch(
			m.setStatus(fmt.Sprintf("Created %s", doc.ID), 3),
			loadLibraryCmd(m.service),
		)
	}
	return m, cmd
}

func (m Model) updateFillFormView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.fillForm = nil
		m.viewMode = ViewDocuments
		return m, loadLibraryCmd(m.service)
	}

	if msg.String() == "g" && m.fillForm.Done() && m.selectedDocument != nil {
		docID := m.selectedDocument.ID
		m.fillForm = nil
		m.viewMode = ViewDocuments
		return m, tea.Batch(generateCmd(m.service, docID), loadLibraryCmd(m.service))
	}

	cmd := m.fillForm.Update(msg)

	if blankID, value, ok := m.fillForm.TakeFill(); ok {
		changed, err := m.service.FillBlankSpace(m.selectedDocument.ID, blankID, value)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Fill failed: %v", err), 5)
		}
		if !changed {
			return m, m.setStatus("Blank not found; document unchanged", 3)
		}

		spaces, err := m.service.ListBlankSpaces(m.selectedDocument.ID)
		if err != nil {
			return m, m.setStatus(fmt.Sprintf("Reload failed: %v", err), 5)
		}
		m.fillForm.SetSpaces(spaces)
	}

	return m, cmd
}

// openFillForm loads the document's blanks and switches to the fill view
func (m Model) openFillForm(doc *models.Document) (tea.Model, tea.Cmd) {
	spaces, err := m.service.ListBlankSpaces(doc.ID)
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Failed to load blanks: %v", err), 5)
	}

	placeholders, err := m.service.Placeholders(doc.ID)
	if err != nil {
		return m, m.setStatus(fmt.Sprintf("Failed to load placeholders: %v", err), 5)
	}

	m.selectedDocument = doc
	m.fillForm = NewFillForm(spaces, placeholders)
	m.fillForm.Resize(m.width, m.height)
	m.viewMode = ViewFillForm
	return m, nil
}

func (m *Model) findTemplate(id string) *models.Template {
	for _, t := range m.templates {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (m Model) selectedFromDocList() *models.Document {
	d, ok := m.documentList.SelectedItem().(models.Document)
	if !ok {
		return nil
	}
	for _, doc := range m.documents {
		if doc.ID == d.ID {
			return doc
		}
	}
	return nil
}

// renderTemplatePreview renders the template body into the viewport
func (m *Model) renderTemplatePreview() {
	if m.selectedTemplate == nil {
		return
	}

	rendered, err := m.glamourRenderer.Render(m.selectedTemplate.Content)
	if err != nil {
		rendered = m.selectedTemplate.Content
	}
	m.renderedContent = rendered
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// renderDocumentPreview renders the flattened document text into the viewport
func (m *Model) renderDocumentPreview() {
	if m.selectedDocument == nil {
		return
	}

	text, err := m.service.PreviewText(m.selectedDocument.ID)
	if err != nil {
		m.renderedContent = fmt.Sprintf("Failed to load document: %v", err)
		m.viewport.SetContent(m.renderedContent)
		return
	}

	rendered, err := m.glamourRenderer.Render(text)
	if err != nil {
		rendered = text
	}
	m.renderedContent = rendered
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
}

// View renders the TUI
func (m Model) View() string {
	if m.loading {
		return AddMainPadding("\n" + StyleTextMuted.Render("Loading library..."))
	}

	var content string

	switch m.viewMode {
	case ViewTemplates:
		header := CreateMainHeader("Templates")
		content = header + "\n" + m.templateList.View() + "\n" +
			CreateHelp("Enter view • n new document • Tab documents • / filter • q quit")

	case ViewDocuments:
		header := CreateMainHeader("Documents")
		content = header + "\n" + m.documentList.View() + "\n" +
			CreateHelp("Enter view • f fill • g generate • a archive • d delete • Tab templates • q quit")

	case ViewTemplateDetail:
		title := "Template"
		if m.selectedTemplate != nil {
			title = m.selectedTemplate.Name
		}
		content = CreateSubPageHeader(title) + "\n" +
			m.viewport.View() + "\n" +
			CreateHelp("n new document • c copy • Esc back")

	case ViewDocumentDetail:
		title := "Document"
		var meta string
		if m.selectedDocument != nil {
			title = m.selectedDocument.Name
			if progress, err := m.service.Completion(m.selectedDocument.ID); err == nil {
				meta = CreateProgressBar(progress.Filled, progress.Total, m.width-6)
			}
		}
		content = CreateSubPageHeader(title) + "\n"
		if meta != "" {
			content += AddMainPadding(meta) + "\n"
		}
		content += m.viewport.View() + "\n" +
			CreateHelp("f fill • c copy • g generate • Esc back")

	case ViewNameForm:
		content = CreateSubPageHeader("New Document") + "\n\n" + m.nameForm.View()

	case ViewFillForm:
		title := "Fill Blanks"
		if m.selectedDocument != nil {
			title = "Fill: " + m.selectedDocument.Name
		}
		content = CreateSubPageHeader(title) + "\n\n" + m.fillForm.View()
	}

	if m.statusMsg != "" {
		statusType := "info"
		if m.err != nil {
			statusType = "error"
		}
		content += "\n" + CreateStatus(m.statusMsg, statusType)
	}

	return content
}
