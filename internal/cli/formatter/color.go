package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mecrobet/marga/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StepStyle returns the style used for a step's title in the given state.
func StepStyle(state domain.StepState) lipgloss.Style {
	switch state {
	case domain.StepCompleted:
		return StyleGreen
	case domain.StepUnlocked:
		return StyleYellow
	default:
		return StyleDim
	}
}

// StepBadge returns a short colored marker such as "✔ done".
func StepBadge(state domain.StepState) string {
	switch state {
	case domain.StepCompleted:
		return StyleGreen.Render("✔ done")
	case domain.StepUnlocked:
		return StyleYellow.Render("● open")
	default:
		return StyleDim.Render("🔒 locked")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders a notice line in yellow.
func Warning(text string) string {
	return StyleYellow.Render("! " + text)
}

// Success renders a confirmation line in green.
func Success(text string) string {
	return StyleGreen.Render("✔ " + text)
}
