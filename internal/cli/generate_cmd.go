package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/domain"
	"github.com/mecrobet/marga/internal/llm"
	"github.com/mecrobet/marga/internal/media"
	"github.com/mecrobet/marga/internal/service"
)

func newGenerateCmd(app *App) *cobra.Command {
	flags := newRoadmapFlags()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study roadmap for a topic",
		Long: `Generate a study roadmap broken into Day or Week steps.

Only the first step is unlocked; complete steps in order with "marga complete"
or "marga browse". Generating a new roadmap resets progress.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if flags.topic == "" && app.interactive() {
				values := newRoadmapFormValues(flags)
				if err := roadmapForm(values).Run(); err != nil {
					return err
				}
				values.apply(flags)
			}

			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}

			uploads := openUploads(flags.images)
			defer closeUploads(uploads)

			stop := app.spinner(cmd, "Generating roadmap...")
			outcome, err := app.Study.GenerateRoadmap(ctx, sess.ID, service.RoadmapInput{
				Topic:    flags.topic,
				Level:    domain.Level(flags.level),
				Duration: flags.duration(),
				Images:   uploads,
			})
			stop()
			if err != nil {
				return err
			}

			printOutcome(out, outcome)
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func printOutcome(out io.Writer, o *service.RoadmapOutcome) {
	if o.Corrected {
		fmt.Fprintln(out, formatter.Warning("Topic corrected to: "+o.Topic))
	}
	for _, name := range o.SkippedFiles {
		fmt.Fprintln(out, formatter.Warning("Skipped unreadable file: "+name))
	}

	fmt.Fprintln(out, formatter.FormatSteps(o.Session))
	if len(o.Steps) == 0 {
		fmt.Fprintln(out, formatter.FormatDocument("Roadmap", o.Session.Roadmap))
	}

	switch {
	case o.InsightErr != nil:
		fmt.Fprintln(out, formatter.Warning("Study guide unavailable: "+llm.Describe(o.InsightErr)))
	case o.Session.Insight != "":
		fmt.Fprintln(out, formatter.FormatDocument("Study guide", o.Session.Insight))
	}
}

// openUploads opens each path. A file that cannot be opened is passed on
// without a reader so the encoder reports it as skipped.
func openUploads(paths []string) []media.Upload {
	uploads := make([]media.Upload, 0, len(paths))
	for _, p := range paths {
		u := media.Upload{Name: filepath.Base(p)}
		if f, err := os.Open(p); err == nil {
			u.Reader = f
		}
		uploads = append(uploads, u)
	}
	return uploads
}

func closeUploads(uploads []media.Upload) {
	for _, u := range uploads {
		if c, ok := u.Reader.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// spinner starts a spinner on stderr when running in a terminal. The
// returned function stops it.
func (a *App) spinner(cmd *cobra.Command, msg string) func() {
	if !a.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), msg)
}
