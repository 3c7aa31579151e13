package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mecrobet/marga/internal/cli/formatter"
	"github.com/mecrobet/marga/internal/domain"
)

func newStepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "Show the roadmap steps and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.currentSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSteps(sess))
			return nil
		},
	}
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete N",
		Short: "Mark step N (1-based) as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid step number %q: use the number shown by \"marga steps\"", args[0])
			}

			ctx := cmd.Context()
			sess, err := app.currentSession(ctx)
			if err != nil {
				return err
			}
			sess, err = app.Study.CompleteStep(ctx, sess.ID, n-1)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			step := sess.Steps[n-1]
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Completed step %d: %s", n, step.Title)))

			completed, total := formatter.StepProgress(sess)
			fmt.Fprintln(out, formatter.ProgressLine(completed, total))
			if completed == total {
				fmt.Fprintln(out, formatter.Success(formatter.AllDoneBanner))
				return nil
			}
			if n < total && sess.StepState(n) == domain.StepUnlocked {
				fmt.Fprintln(out, "Next: "+formatter.FormatStepLine(sess.Steps[n], domain.StepUnlocked))
			}
			return nil
		},
	}
}
