package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovemead/leasecraft/internal/blankspace"
	"github.com/grovemead/leasecraft/internal/models"
)

// FillForm walks a document's unfilled blanks one at a time. Navigation
// wraps: stepping past the last unfilled blank returns to the first. The
// entity list is supplied fresh after every fill so the form never holds
// stale positions.
type FillForm struct {
	spaces       []models.BlankSpace
	placeholders map[string]models.DetectedPlaceholder
	cursor       blankspace.Cursor
	input        textinput.Model

	pendingID    string
	pendingValue string
	hasPending   bool

	width int
}

// NewFillForm creates a fill form over the given blanks. Placeholder
// metadata supplies the label and category shown above the input.
func NewFillForm(spaces []models.BlankSpace, placeholders []models.DetectedPlaceholder) *FillForm {
	byID := make(map[string]models.DetectedPlaceholder, len(placeholders))
	for _, p := range placeholders {
		byID[p.ID] = p
	}

	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return &FillForm{
		spaces:       spaces,
		placeholders: byID,
		input:        ti,
		width:        80,
	}
}

// SetSpaces replaces the entity list after the document markup changed.
func (f *FillForm) SetSpaces(spaces []models.BlankSpace) {
	f.spaces = spaces
}

// Done reports whether no unfilled blanks remain.
func (f *FillForm) Done() bool {
	return len(blankspace.Unfilled(f.spaces)) == 0
}

// TakeFill returns and clears the pending fill submitted with Enter.
func (f *FillForm) TakeFill() (blankID, value string, ok bool) {
	if !f.hasPending {
		return "", "", false
	}
	f.hasPending = false
	return f.pendingID, f.pendingValue, true
}

// Resize updates the form layout for a new window size.
func (f *FillForm) Resize(width, height int) {
	f.width = width
	inputWidth := width - 10
	if inputWidth < 20 {
		inputWidth = 20
	}
	if inputWidth > 80 {
		inputWidth = 80
	}
	f.input.Width = inputWidth
}

// Update handles key events for the fill form
func (f *FillForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			f.cursor.Next(f.spaces)
			f.input.SetValue("")
			return nil
		case "shift+tab", "up":
			f.cursor.Prev(f.spaces)
			f.input.SetValue("")
			return nil
		case "enter":
			current, ok := f.cursor.Current(f.spaces)
			if !ok {
				return nil
			}
			value := strings.TrimSpace(f.input.Value())
			if value == "" {
				return nil
			}
			f.pendingID = current.ID
			f.pendingValue = value
			f.hasPending = true
			f.input.SetValue("")
			return nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the fill form
func (f *FillForm) View() string {
	var b strings.Builder

	filled := 0
	for _, bs := range f.spaces {
		if bs.Filled {
			filled++
		}
	}

	b.WriteString(CreateProgressBar(filled, len(f.spaces), f.width-6))
	b.WriteString("\n\n")

	current, ok := f.cursor.Current(f.spaces)
	if !ok {
		b.WriteString(StyleSuccess.Render("All blanks filled"))
		b.WriteString("\n\n")
		b.WriteString(CreateHelp("Esc to return • g to generate"))
		return AddFormPadding(b.String())
	}

	label := fmt.Sprintf("Blank %s", shortID(current.ID))
	category := ""
	if p, found := f.placeholders[current.ID]; found {
		label = fmt.Sprintf("%d. %s", p.Order, p.Description)
		category = string(p.Category)
	}

	b.WriteString(StyleFormLabel.Render(label))
	if category != "" {
		b.WriteString("  " + StyleTextDim.Render("("+category+")"))
	}
	b.WriteString("\n")
	b.WriteString(StyleFormHelp.Render(fmt.Sprintf("expected length ~%d characters", current.Length)))
	b.WriteString("\n\n")
	b.WriteString(f.input.View())
	b.WriteString("\n\n")
	b.WriteString(f.renderFilledList())
	b.WriteString("\n")
	b.WriteString(CreateHelp("Enter fill • Tab/Shift+Tab next/prev • Esc back"))

	return AddFormPadding(b.String())
}

// renderFilledList shows what has been filled so far, most recent context
// for the user while they work through the remainder.
func (f *FillForm) renderFilledList() string {
	var lines []string
	for _, bs := range f.spaces {
		if !bs.Filled {
			continue
		}
		label := shortID(bs.ID)
		if p, found := f.placeholders[bs.ID]; found {
			label = p.Description
		}
		lines = append(lines, fmt.Sprintf("  %s %s", StyleBlankFilled.Render("✓"), StyleTextMuted.Render(label+": "+bs.Content)))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// NameForm collects a single name when creating a document from a template.
type NameForm struct {
	input     textinput.Model
	submitted bool
}

// NewNameForm creates a name form pre-filled with a suggested default.
func NewNameForm(defaultName string) *NameForm {
	ti := textinput.New()
	ti.Placeholder = "Document name"
	ti.SetValue(defaultName)
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	return &NameForm{input: ti}
}

// Update handles key events for the name form
func (f *NameForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			f.submitted = true
			return nil
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// IsSubmitted reports whether Enter was pressed
func (f *NameForm) IsSubmitted() bool {
	return f.submitted
}

// Name returns the entered document name
func (f *NameForm) Name() string {
	return strings.TrimSpace(f.input.Value())
}

// View renders the name form
func (f *NameForm) View() string {
	var b strings.Builder
	b.WriteString(StyleFormLabel.Render("Document name"))
	b.WriteString("\n\n")
	b.WriteString(f.input.View())
	b.WriteString("\n\n")
	b.WriteString(CreateHelp("Enter create • Esc cancel"))
	return AddFormPadding(b.String())
}
