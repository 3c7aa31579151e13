package teatest

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg struct{ n int }

// counterModel counts key presses and loads an initial value through a Cmd.
type counterModel struct {
	n      int
	width  int
	ticked bool
}

func (m counterModel) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{n: 10} }
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case loadedMsg:
		m.n = msg.n
	case tea.KeyMsg:
		switch msg.String() {
		case "+", "up":
			m.n++
		case "t":
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg { return "tick" })
		case "b":
			return m, tea.Batch(
				func() tea.Msg { return loadedMsg{n: 1} },
				func() tea.Msg { return loadedMsg{n: 2} },
			)
		case "q":
			return m, tea.Quit
		}
	case string:
		m.ticked = true
	}
	return m, nil
}

func (m counterModel) View() string { return fmt.Sprintf("count=%d width=%d", m.n, m.width) }

func TestDriver_InitAndKeys(t *testing.T) {
	d := New(t, counterModel{}, WithSize(42, 10))
	d.DrainInit()
	d.AssertViewContains("count=10", "width=42")

	d.PressKey('+')
	d.PressUp()
	d.AssertViewContains("count=12")
}

func TestDriver_DropsTimerCmds(t *testing.T) {
	d := New(t, counterModel{})
	d.PressKey('t')
	assert.False(t, d.Model.(counterModel).ticked)
}

func TestDriver_RunsBatchInOrder(t *testing.T) {
	d := New(t, counterModel{})
	d.PressKey('b')
	d.AssertViewContains("count=2")
}

func TestDriver_Quit(t *testing.T) {
	d := New(t, counterModel{})
	d.Type("+q+")
	assert.True(t, d.Quitting)
	d.AssertViewContains("count=1")
	d.AssertViewNotContains("count=2")
}
