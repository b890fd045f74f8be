package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive palette, chosen after the terminal background is known
var (
	ColorPrimary   lipgloss.Color
	ColorSecondary lipgloss.Color
	ColorAccent    lipgloss.Color

	ColorSuccess lipgloss.Color
	ColorWarning lipgloss.Color
	ColorError   lipgloss.Color
	ColorInfo    lipgloss.Color

	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorTextDim   lipgloss.Color
	ColorBorder    lipgloss.Color
	ColorSurface   lipgloss.Color
)

// initializeColors sets up adaptive colors based on terminal background
func initializeColors() {
	if os.Getenv("GLAMOUR_STYLE") == "light" {
		setLightThemeColors()
		return
	}
	if os.Getenv("GLAMOUR_STYLE") == "dark" {
		setDarkThemeColors()
		return
	}

	if lipgloss.HasDarkBackground() {
		setDarkThemeColors()
	} else {
		setLightThemeColors()
	}
}

func setDarkThemeColors() {
	ColorPrimary = lipgloss.Color("205")
	ColorSecondary = lipgloss.Color("33")
	ColorAccent = lipgloss.Color("214")

	ColorSuccess = lipgloss.Color("10")
	ColorWarning = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorInfo = lipgloss.Color("12")

	ColorText = lipgloss.Color("252")
	ColorTextMuted = lipgloss.Color("244")
	ColorTextDim = lipgloss.Color("240")
	ColorBorder = lipgloss.Color("238")
	ColorSurface = lipgloss.Color("236")
}

func setLightThemeColors() {
	ColorPrimary = lipgloss.Color("125")
	ColorSecondary = lipgloss.Color("24")
	ColorAccent = lipgloss.Color("130")

	ColorSuccess = lipgloss.Color("22")
	ColorWarning = lipgloss.Color("136")
	ColorError = lipgloss.Color("160")
	ColorInfo = lipgloss.Color("24")

	ColorText = lipgloss.Color("232")
	ColorTextMuted = lipgloss.Color("240")
	ColorTextDim = lipgloss.Color("244")
	ColorBorder = lipgloss.Color("248")
	ColorSurface = lipgloss.Color("254")
}

// Component styles
var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleText = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StyleTextDim = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	StyleFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(ColorSecondary).
			Bold(true).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true).
			Padding(0, 1)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true).
			Padding(0, 1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true).
			Padding(0, 1)

	StyleContentContainer = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				Background(ColorSurface).
				MarginTop(1).
				MarginBottom(1)

	StyleFormLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	StyleFormHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true).
			Padding(0, 3)

	StyleMetadata = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Padding(0, 1)

	StyleBlankUnfilled = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StyleBlankFilled = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)

// CreateMainHeader renders the main page title
func CreateMainHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

// CreateSubPageHeader renders a subpage title (back handled via keybind)
func CreateSubPageHeader(titleText string) string {
	return StyleTitle.Render(titleText)
}

func CreateMetadata(text string) string {
	return StyleMetadata.Render(text)
}

func CreateHelp(text string) string {
	return StyleTextDim.Render(text)
}

func CreateStatus(text string, statusType string) string {
	switch statusType {
	case "success":
		return StyleSuccess.Render(text)
	case "warning":
		return StyleWarning.Render(text)
	case "error":
		return StyleError.Render(text)
	default:
		return StyleText.Render(text)
	}
}

// CreateProgressBar renders fill progress as a fixed-width bar with counts
func CreateProgressBar(filled, total, width int) string {
	if width < 10 {
		width = 10
	}
	barWidth := width - 12
	if barWidth < 4 {
		barWidth = 4
	}

	done := 0
	if total > 0 {
		done = filled * barWidth / total
	} else {
		done = barWidth
	}

	bar := StyleBlankFilled.Render(strings.Repeat("█", done)) +
		StyleTextDim.Render(strings.Repeat("░", barWidth-done))
	return fmt.Sprintf("%s %s", bar, StyleTextMuted.Render(fmt.Sprintf("%d/%d filled", filled, total)))
}

// CenterModal places modal content in the middle of the screen
func CenterModal(content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// AddMainPadding applies the standard left padding for main content
func AddMainPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

// AddFormPadding applies the deeper left padding used by form views
func AddFormPadding(content string) string {
	return lipgloss.NewStyle().PaddingLeft(3).Render(content)
}
