// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd inline, so a
// test sees the model state after each key press without a tea.Program or
// goroutines of its own. Cmds that block on timers (spinner ticks, cursor
// blink) are abandoned after a short timeout.
package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds (service calls against an in-memory
// DB) from timer-driven ones, which are dropped.
const cmdTimeout = 20 * time.Millisecond

// Driver is a synchronous harness for a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been returned by the model.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// New returns a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and every Cmd it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send dispatches msg and drains the resulting Cmds. It does nothing once
// the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// PressKey sends a single rune key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a special key such as tea.KeyEnter or tea.KeyDown.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) PressEnter() { d.T.Helper(); d.Press(tea.KeyEnter) }
func (d *Driver) PressUp()    { d.T.Helper(); d.Press(tea.KeyUp) }
func (d *Driver) PressDown()  { d.T.Helper(); d.Press(tea.KeyDown) }
func (d *Driver) PressEsc()   { d.T.Helper(); d.Press(tea.KeyEsc) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// AssertViewContains fails the test unless the view contains every want.
func (d *Driver) AssertViewContains(want ...string) {
	d.T.Helper()
	view := d.View()
	for _, w := range want {
		if !strings.Contains(view, w) {
			d.T.Errorf("view does not contain %q:\n%s", w, view)
		}
	}
}

// AssertViewNotContains fails the test if the view contains any of unwanted.
func (d *Driver) AssertViewNotContains(unwanted ...string) {
	d.T.Helper()
	view := d.View()
	for _, u := range unwanted {
		if strings.Contains(view, u) {
			d.T.Errorf("view unexpectedly contains %q:\n%s", u, view)
		}
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	if msg == nil {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drain(next, depth+1)
}

// runWithTimeout returns the Cmd's message, or nil if it does not finish
// within cmdTimeout.
func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
