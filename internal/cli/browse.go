package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/service"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Walk through the roadmap step by step",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}
			if len(sess.Steps) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSteps(sess))
				return nil
			}
			p := tea.NewProgram(newBrowserModel(ctx, app.Study, sess), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
}

type browserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Complete, k.Help, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Complete, k.Help, k.Quit},
	}
}

func defaultBrowserKeys() browserKeyMap {
	return browserKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Complete: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "mark complete")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// stepCompletedMsg carries the result of a CompleteStep call.
type stepCompletedMsg struct {
	order   int
	session *domain.StudySession
	err     error
}

// browserModel lists the roadmap steps and shows the selected step's
// content below. Locked steps show a placeholder instead of content.
type browserModel struct {
	ctx     context.Context
	svc     service.StudyService
	session *domain.StudySession

	cursor   int
	busy     bool
	status   string
	quitting bool

	keys    browserKeyMap
	help    help.Model
	detail  viewport.Model
	spinner spinner.Model
	width   int
	height  int
}

func newBrowserModel(ctx context.Context, svc service.StudyService, sess *domain.StudySession) *browserModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := &browserModel{
		ctx:     ctx,
		svc:     svc,
		session: sess,
		keys:    defaultBrowserKeys(),
		help:    help.New(),
		detail:  viewport.New(80, 10),
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.cursor = m.firstOpenStep()
	m.refreshDetail()
	return m
}

// firstOpenStep returns the unlocked step, or the last step when all are done.
func (m *browserModel) firstOpenStep() int {
	for i := range m.session.Steps {
		if m.session.StepState(i) == domain.StepUnlocked {
			return i
		}
	}
	if n := len(m.session.Steps); n > 0 {
		return n - 1
	}
	return 0
}

func (m *browserModel) Init() tea.Cmd { return nil }

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepCompletedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = completionError(msg.err)
			return m, nil
		}
		m.session = msg.session
		m.status = formatter.Success(fmt.Sprintf("Completed step %d", msg.order+1))
		if m.done() {
			m.status = formatter.Success(formatter.AllDoneBanner)
		} else if msg.order+1 < len(m.session.Steps) {
			m.cursor = msg.order + 1
		}
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *browserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.status = ""
			m.refreshDetail()
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.session.Steps)-1 {
			m.cursor++
			m.status = ""
			m.refreshDetail()
		}
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.detail.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.detail.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.Complete):
		if m.busy || len(m.session.Steps) == 0 {
			return m, nil
		}
		if m.session.StepState(m.cursor) == domain.StepCompleted {
			m.status = formatter.Dim("Step already completed.")
			return m, nil
		}
		m.busy = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.completeCmd(m.cursor))
	}
	return m, nil
}

func (m *browserModel) completeCmd(order int) tea.Cmd {
	ctx, svc, id := m.ctx, m.svc, m.session.ID
	return func() tea.Msg {
		sess, err := svc.CompleteStep(ctx, id, order)
		return stepCompletedMsg{order: order, session: sess, err: err}
	}
}

func completionError(err error) string {
	if errors.Is(err, domain.ErrStepLocked) {
		return formatter.Warning("Complete the previous step first.")
	}
	return formatter.StyleRed.Render("Error: " + err.Error())
}

func (m *browserModel) done() bool {
	completed, total := formatter.StepProgress(m.session)
	return total > 0 && completed == total
}

// layout gives the detail viewport whatever height the list leaves free.
func (m *browserModel) layout() {
	reserved := 4 + len(m.session.Steps) + 3 + lipgloss.Height(m.help.View(m.keys))
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	m.detail.Width = m.width
	m.detail.Height = h
}

func (m *browserModel) refreshDetail() {
	if len(m.session.Steps) == 0 {
		m.detail.SetContent("")
		return
	}
	step := m.session.Steps[m.cursor]
	state := m.session.StepState(m.cursor)
	body := formatter.FormatStepBody(step, state)
	m.detail.SetContent(lipgloss.NewStyle().Width(max(m.width-2, 20)).Render(body))
	m.detail.GotoTop()
}

func (m *browserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.SessionHeader(m.session))
	b.WriteString("\n")
	completed, total := formatter.StepProgress(m.session)
	b.WriteString(formatter.ProgressLine(completed, total))
	b.WriteString("\n\n")

	for i, step := range m.session.Steps {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString(cursor + formatter.FormatStepLine(step, m.session.StepState(i)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.StyleDim.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " " + formatter.Dim("Saving..."))
	case m.status != "":
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
