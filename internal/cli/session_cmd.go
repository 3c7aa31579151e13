package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/cli/formatter"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage study sessions",
	}

	cmd.AddCommand(
		newSessionNewCmd(app),
		newSessionListCmd(app),
		newSessionUseCmd(app),
		newSessionShowCmd(app),
	)

	return cmd
}

func newSessionNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a fresh session and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.Study.NewSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Started session "+sess.ID))
			return nil
		},
	}
}

func newSessionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List study sessions, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sessions, err := app.Study.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}

			var activeID string
			if active, err := app.Study.Active(ctx); err == nil {
				activeID = active.ID
			}

			headers := []string{"", "ID", "TOPIC", "LEVEL", "DURATION", "PROGRESS", "UPDATED"}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				marker := ""
				if s.ID == activeID {
					marker = formatter.StyleGreen.Render("*")
				}
				topic := s.Topic
				if topic == "" {
					topic = formatter.Dim("(none)")
				}
				completed, total := formatter.StepProgress(s)
				rows = append(rows, []string{
					marker,
					formatter.TruncID(s.ID),
					topic,
					string(s.Level),
					s.Duration.String(),
					fmt.Sprintf("%d/%d", completed, total),
					formatter.HumanTimestamp(s.UpdatedAt),
				})
			}
			fmt.Fprint(out, formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newSessionUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use ID",
		Long:  "Make a session the active one. ID may be a unique prefix.",
		Short: "Make a session the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			sess, err := app.Study.Use(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Active session is now "+sess.ID))
			return nil
		},
	}
}

func newSessionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show what the current session holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess))
			return nil
		},
	}
}
