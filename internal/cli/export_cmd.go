package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var dir string
	var reload bool

	cmd := &cobra.Command{
		Use:       "export roadmap|feedback|assignment",
		Short:     "Save a generated document to disk",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"roadmap", "feedback", "assignment"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}

			var build func(context.Context, string) (export.Artifact, error)
			switch args[0] {
			case "roadmap":
				build = app.Study.ExportRoadmap
			case "assignment":
				build = app.Study.ExportAssignment
			case "feedback":
				origin := export.OriginGrade
				if reload {
					origin = export.OriginReload
				}
				build = func(ctx context.Context, id string) (export.Artifact, error) {
					return app.Study.ExportFeedback(ctx, id, origin)
				}
			}

			artifact, err := build(ctx, sess.ID)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = app.ExportDir
			}
			path, err := export.Save(dir, artifact)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Saved "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (defaults to MARGA_EXPORT_DIR)")
	cmd.Flags().BoolVar(&reload, "reload", false, "Label a feedback export as re-displayed rather than freshly graded")
	return cmd
}
