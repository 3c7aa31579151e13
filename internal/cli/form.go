package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/domain"
)

// margaHuhTheme returns a huh theme matching the formatter palette.
func margaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// roadmapFormValues are the string-typed bindings of the roadmap form.
type roadmapFormValues struct {
	topic  string
	amount string
	unit   domain.DurationUnit
	level  domain.Level
	images string
}

func newRoadmapFormValues(f *roadmapFlags) *roadmapFormValues {
	topic := f.topic
	if topic == "" {
		topic = domain.DefaultTopic
	}
	return &roadmapFormValues{
		topic:  topic,
		amount: strconv.Itoa(f.amount),
		unit:   domain.DurationUnit(f.unit),
		level:  domain.Level(f.level),
		images: strings.Join(f.images, ", "),
	}
}

// apply copies validated form values back into the flags.
func (v *roadmapFormValues) apply(f *roadmapFlags) {
	f.topic = strings.TrimSpace(v.topic)
	f.amount = parsePositiveInt(v.amount, domain.DefaultDurationAmount)
	f.unit = unitValue(v.unit)
	f.level = levelValue(v.level)
	f.images = nil
	for _, p := range strings.Split(v.images, ",") {
		if p = strings.TrimSpace(p); p != "" {
			f.images = append(f.images, p)
		}
	}
}

// roadmapForm asks for the same inputs as the generate flags.
func roadmapForm(v *roadmapFormValues) *huh.Form {
	levels := make([]huh.Option[domain.Level], 0, len(domain.Levels))
	for _, l := range domain.Levels {
		levels = append(levels, huh.NewOption(string(l), l))
	}
	units := make([]huh.Option[domain.DurationUnit], 0, len(domain.DurationUnits))
	for _, u := range domain.DurationUnits {
		units = append(units, huh.NewOption(string(u), u))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to learn?").
				Placeholder(domain.DefaultTopic).
				Value(&v.topic).
				Validate(validateTopic),
			huh.NewSelect[domain.Level]().
				Title("Skill level").
				Options(levels...).
				Value(&v.level),
			huh.NewInput().
				Title("How long?").
				Placeholder(strconv.Itoa(domain.DefaultDurationAmount)).
				Value(&v.amount).
				Validate(validatePositiveInt),
			huh.NewSelect[domain.DurationUnit]().
				Title("Unit").
				Options(units...).
				Value(&v.unit),
			huh.NewInput().
				Title("Reference images (optional)").
				Description("Comma separated file paths").
				Value(&v.images),
		),
	).WithTheme(margaHuhTheme()).WithShowHelp(false)
}

func validateTopic(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter a topic")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

// parsePositiveInt parses s, falling back for empty or invalid input.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
