package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/logger"
	"github.com/mecrobet/marga/internal/service"
)

// App holds what the commands need: the study service plus the settings
// for exports and the HTTP server.
type App struct {
	Study       service.StudyService
	Log         *logger.Logger
	ExportDir   string
	Addr        string
	CORSOrigins []string

	// IsInteractive reports whether stdin is a terminal. The roadmap form
	// and spinners are only used when it returns true.
	IsInteractive func() bool

	sessionID string
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// currentSession returns the session named by --session, or the active one.
func (a *App) currentSession(ctx context.Context) (*domain.StudySession, error) {
	if a.sessionID != "" {
		id, err := resolveSessionID(ctx, a, a.sessionID)
		if err != nil {
			return nil, err
		}
		return a.Study.Get(ctx, id)
	}
	return a.Study.Active(ctx)
}

// NewRootCmd creates the top-level "marga" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Log == nil {
		app.Log = logger.NewNop()
	}
	if app.ExportDir == "" {
		app.ExportDir = "."
	}

	root := &cobra.Command{
		Use:           "marga",
		Short:         "Study roadmaps, assignments, and feedback from a single topic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.sessionID, "session", "", "Session ID (defaults to the active session)")

	root.AddCommand(
		newGenerateCmd(app),
		newStepsCmd(app),
		newCompleteCmd(app),
		newBrowseCmd(app),
		newAssignmentCmd(app),
		newGradeCmd(app),
		newFeedbackCmd(app),
		newExportCmd(app),
		newSessionCmd(app),
		newServeCmd(app),
	)

	return root
}
