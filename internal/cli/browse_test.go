package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/service"
	"github.com/mecrobet/marga/internal/teatest"
)

// browserDriver wraps teatest.Driver with access to the browser model.
type browserDriver struct {
	*teatest.Driver
}

func newBrowserDriver(t *testing.T, app *App) browserDriver {
	t.Helper()
	ctx := context.Background()
	sess, err := app.Study.Active(ctx)
	require.NoError(t, err)
	_, err = app.Study.GenerateRoadmap(ctx, sess.ID, service.RoadmapInput{
		Topic:    "Linear Algebra",
		Level:    domain.LevelBeginner,
		Duration: domain.Duration{Amount: 3, Unit: domain.UnitDays},
	})
	require.NoError(t, err)
	sess, err = app.Study.Get(ctx, sess.ID)
	require.NoError(t, err)

	d := teatest.New(t, newBrowserModel(ctx, app.Study, sess), teatest.WithSize(100, 40))
	d.DrainInit()
	return browserDriver{Driver: d}
}

func (d browserDriver) model() *browserModel {
	return d.Model.(*browserModel)
}

func TestBrowser_InitialState(t *testing.T) {
	app, _ := testApp(t)
	d := newBrowserDriver(t, app)

	assert.Equal(t, 0, d.model().cursor)
	d.AssertViewContains("Linear Algebra", "0/3 steps", "Day 1: Vectors", "Day 2: Matrices", "What a vector is")
	d.AssertViewNotContains("Matrix multiplication")
}

func TestBrowser_LockedStepShowsPlaceholder(t *testing.T) {
	app, _ := testApp(t)
	d := newBrowserDriver(t, app)

	d.PressDown()
	assert.Equal(t, 1, d.model().cursor)
	d.AssertViewContains(formatter.LockedPlaceholder)
	d.AssertViewNotContains("Matrix multiplication")

	d.PressEnter()
	d.AssertViewContains("Complete the previous step first.")
	assert.Equal(t, domain.StepLocked, d.model().session.StepState(1))
}

func TestBrowser_CompleteInOrder(t *testing.T) {
	app, _ := testApp(t)
	d := newBrowserDriver(t, app)

	d.PressEnter()
	m := d.model()
	assert.False(t, m.busy)
	assert.Equal(t, domain.StepCompleted, m.session.StepState(0))
	assert.Equal(t, 1, m.cursor, "cursor moves to the newly unlocked step")
	d.AssertViewContains("Completed step 1", "1/3 steps", "Matrix multiplication")

	d.PressKey(' ')
	d.PressEnter()
	d.AssertViewContains("3/3 steps", formatter.AllDoneBanner)

	stored, err := app.Study.Get(context.Background(), m.session.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Progress.CompletedCount())
}

func TestBrowser_CompletedStepIsNoop(t *testing.T) {
	app, _ := testApp(t)
	d := newBrowserDriver(t, app)

	d.PressEnter()
	d.PressUp()
	d.PressEnter()
	d.AssertViewContains("Step already completed.")
	assert.Equal(t, 1, d.model().session.Progress.CompletedCount())
}

func TestBrowser_NavigationBounds(t *testing.T) {
	app, _ := testApp(t)
	d := newBrowserDriver(t, app)

	d.PressUp()
	assert.Equal(t, 0, d.model().cursor)
	d.PressKey('j')
	d.PressKey('j')
	d.PressKey('j')
	assert.Equal(t, 2, d.model().cursor)
	d.PressKey('k')
	assert.Equal(t, 1, d.model().cursor)
}

func TestBrowser_HelpAndQuit(t *testing.T) {
	app, _ := testApp(t)
	d := newBrowserDriver(t, app)

	d.AssertViewContains("mark complete")
	d.PressKey('?')
	d.AssertViewContains("scroll down")

	d.PressKey('q')
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestBrowser_ResumesAtOpenStep(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	d := newBrowserDriver(t, app)
	id := d.model().session.ID

	_, err := app.Study.CompleteStep(ctx, id, 0)
	require.NoError(t, err)
	sess, err := app.Study.Get(ctx, id)
	require.NoError(t, err)

	m := newBrowserModel(ctx, app.Study, sess)
	assert.Equal(t, 1, m.cursor)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Equal(t, 60, updated.(*browserModel).detail.Width)
}
